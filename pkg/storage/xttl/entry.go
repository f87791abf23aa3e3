package xttl

import "time"

// NoExpiry 是 Remaining 对永不过期条目返回的剩余时间。
const NoExpiry time.Duration = -1

// Pair 是 AddMany 使用的键值对。
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// NewPair 创建键值对，便于类型推导。
func NewPair[K comparable, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

// entry 是缓存内部存储的条目。
// ttl 为写入时确定的有效 TTL，0 表示永不过期。
type entry[K comparable, V any] struct {
	key       K
	value     V
	createdAt time.Time
	ttl       time.Duration
}

// elapsed 返回自写入以来流逝的时间（取绝对值）。
func (e *entry[K, V]) elapsed(now time.Time) time.Duration {
	d := now.Sub(e.createdAt)
	if d < 0 {
		return -d
	}
	return d
}

// expired 判断条目在 now 时刻是否已过期。
func (e *entry[K, V]) expired(now time.Time) bool {
	if e.ttl == 0 {
		return false
	}
	return e.elapsed(now) >= e.ttl
}

// remaining 返回条目剩余有效时间。
// 永不过期返回 NoExpiry；已过期返回 0。
func (e *entry[K, V]) remaining(now time.Time) time.Duration {
	if e.ttl == 0 {
		return NoExpiry
	}
	left := e.ttl - e.elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}
