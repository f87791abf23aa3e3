package xttl

import (
	"iter"
	"sync"
	"time"
)

// SafeCache 以一把互斥锁保护 [Cache] 的全部操作，可在多个 goroutine 间共享。
//
// 设计决策: 使用 sync.Mutex 而非 RWMutex，因为 Fetch/Valid 会惰性删除过期条目，
// 读路径同样是写操作。
type SafeCache[K comparable, V any] struct {
	mu    sync.Mutex
	cache *Cache[K, V]
}

// NewSafe 创建并发安全的 TTL 缓存，参数语义与 [New] 相同。
func NewSafe[K comparable, V any](defaultTTL time.Duration, opts ...Option) (*SafeCache[K, V], error) {
	c, err := New[K, V](defaultTTL, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeCache[K, V]{cache: c}, nil
}

// Synchronized 用互斥锁包装已有缓存。
// 包装后不应再直接使用原 Cache。c 为 nil 时返回 nil。
func Synchronized[K comparable, V any](c *Cache[K, V]) *SafeCache[K, V] {
	if c == nil {
		return nil
	}
	return &SafeCache[K, V]{cache: c}
}

// DefaultTTL 返回构造时确定的默认 TTL。
func (s *SafeCache[K, V]) DefaultTTL() time.Duration {
	return s.cache.DefaultTTL()
}

// Valid 参见 [Cache.Valid]。
func (s *SafeCache[K, V]) Valid(key K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Valid(key)
}

// Add 参见 [Cache.Add]。
func (s *SafeCache[K, V]) Add(key K, value V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Add(key, value)
}

// AddWithTTL 参见 [Cache.AddWithTTL]。
func (s *SafeCache[K, V]) AddWithTTL(key K, value V, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.AddWithTTL(key, value, ttl)
}

// AddMany 参见 [Cache.AddMany]。整批写入在一次加锁内完成。
func (s *SafeCache[K, V]) AddMany(pairs ...Pair[K, V]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.AddMany(pairs...)
}

// Fetch 参见 [Cache.Fetch]。
func (s *SafeCache[K, V]) Fetch(key K) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Fetch(key)
}

// Remove 参见 [Cache.Remove]。
func (s *SafeCache[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(key)
}

// Sweep 参见 [Cache.Sweep]。
func (s *SafeCache[K, V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Sweep()
}

// ToList 参见 [Cache.ToList]。
func (s *SafeCache[K, V]) ToList() []V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.ToList()
}

// ToMap 参见 [Cache.ToMap]。
func (s *SafeCache[K, V]) ToMap() map[K]V {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.ToMap()
}

// Keys 参见 [Cache.Keys]。
func (s *SafeCache[K, V]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

// All 参见 [Cache.All]。快照在调用 All 时于锁内生成，迭代时不持锁。
func (s *SafeCache[K, V]) All() iter.Seq2[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.All()
}

// Len 参见 [Cache.Len]。
func (s *SafeCache[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Clear 参见 [Cache.Clear]。
func (s *SafeCache[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
}

// Remaining 参见 [Cache.Remaining]。
func (s *SafeCache[K, V]) Remaining(key K) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remaining(key)
}

// Stats 参见 [Cache.Stats]。
func (s *SafeCache[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}
