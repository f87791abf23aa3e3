package xttl

import (
	"container/list"
	"fmt"
	"iter"
	"reflect"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stats 缓存统计信息。
type Stats struct {
	// Hits Fetch 返回有效值的次数。
	Hits uint64

	// Misses Fetch 未返回值的次数（键不存在或已过期）。
	Misses uint64

	// Expired 因过期被删除的条目总数（惰性过期 + Sweep）。
	Expired uint64

	// Swept 其中由 Sweep 删除的条目数。
	Swept uint64
}

// Cache 是带 TTL 的键值缓存。
// 必须通过 [New] 创建，零值不可用。
// Cache 不是并发安全的，并发场景使用 [SafeCache]。
type Cache[K comparable, V any] struct {
	defaultTTL time.Duration
	clock      clockwork.Clock
	onExpired  func(key K, value V)

	// items 提供 O(1) 查找，order 维护插入顺序（Front 最旧）。
	items map[K]*list.Element
	order *list.List

	stats Stats
}

// New 创建 TTL 缓存。
// defaultTTL 为 0 表示未指定 TTL 的条目永不过期；负数返回 ErrInvalidArgument。
func New[K comparable, V any](defaultTTL time.Duration, opts ...Option) (*Cache[K, V], error) {
	if defaultTTL < 0 {
		return nil, fmt.Errorf("%w: default TTL %s is negative", ErrInvalidArgument, defaultTTL)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	c := &Cache[K, V]{
		defaultTTL: defaultTTL,
		clock:      o.clock,
		items:      make(map[K]*list.Element),
		order:      list.New(),
	}

	if o.onExpired != nil {
		fn, ok := o.onExpired.(func(K, V))
		if !ok {
			return nil, fmt.Errorf("%w: OnExpired callback %T does not match cache types", ErrInvalidArgument, o.onExpired)
		}
		c.onExpired = fn
	}

	return c, nil
}

// DefaultTTL 返回构造时确定的默认 TTL。
func (c *Cache[K, V]) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Valid 检查 key 对应的条目当前是否有效。
// 键不存在返回 false；条目已过期时会被删除并返回 false。
func (c *Cache[K, V]) Valid(key K) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	el, ok := c.items[key]
	if !ok {
		return false, nil
	}
	if c.entryOf(el).expired(c.clock.Now()) {
		c.expire(el)
		return false, nil
	}
	return true, nil
}

// Add 使用默认 TTL 写入条目，覆盖已有的同名条目。
func (c *Cache[K, V]) Add(key K, value V) error {
	return c.AddWithTTL(key, value, 0)
}

// AddWithTTL 使用指定 TTL 写入条目，覆盖已有的同名条目。
// ttl 为 0 时使用默认 TTL；ttl 为负数返回 ErrInvalidArgument。
//
// 覆盖写会重置写入时间和 TTL，但保留条目在迭代顺序中的位置。
func (c *Cache[K, V]) AddWithTTL(key K, value V, ttl time.Duration) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if isNil(value) {
		return fmt.Errorf("%w: value is nil", ErrInvalidArgument)
	}
	if ttl < 0 {
		return fmt.Errorf("%w: TTL %s is negative", ErrInvalidArgument, ttl)
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	now := c.clock.Now()
	if el, ok := c.items[key]; ok {
		e := c.entryOf(el)
		e.value = value
		e.createdAt = now
		e.ttl = ttl
		return nil
	}

	c.items[key] = c.order.PushBack(&entry[K, V]{
		key:       key,
		value:     value,
		createdAt: now,
		ttl:       ttl,
	})
	return nil
}

// AddMany 按顺序以默认 TTL 写入多个条目。
//
// 遇到第一个无效条目即返回错误（包装 ErrInvalidArgument 并标明下标），
// 之前已写入的条目不会回滚。
func (c *Cache[K, V]) AddMany(pairs ...Pair[K, V]) error {
	for i, p := range pairs {
		if err := c.Add(p.Key, p.Value); err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
	}
	return nil
}

// Fetch 获取有效条目的值。
// 键不存在或已过期时返回零值和 false，并确保该键被删除。
func (c *Cache[K, V]) Fetch(key K) (value V, ok bool, err error) {
	if err := checkKey(key); err != nil {
		return value, false, err
	}
	el, found := c.items[key]
	if !found {
		c.stats.Misses++
		return value, false, nil
	}
	e := c.entryOf(el)
	if e.expired(c.clock.Now()) {
		c.expire(el)
		c.stats.Misses++
		return value, false, nil
	}
	c.stats.Hits++
	return e.value, true, nil
}

// Remove 删除条目，返回键是否存在。重复删除是安全的。
func (c *Cache[K, V]) Remove(key K) bool {
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(el)
	return true
}

// Sweep 删除所有已过期条目，返回删除数量。
// 所有条目以同一个 now 判断是否过期。复杂度 O(n)。
func (c *Cache[K, V]) Sweep() int {
	now := c.clock.Now()
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.entryOf(el).expired(now) {
			c.expire(el)
			removed++
		}
		el = next
	}
	c.stats.Swept += uint64(removed)
	return removed
}

// ToList 按插入顺序返回所有值的快照，不过滤已过期条目。
func (c *Cache[K, V]) ToList() []V {
	out := make([]V, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, c.entryOf(el).value)
	}
	return out
}

// ToMap 返回键到值的快照，不过滤已过期条目。
// 需要确定顺序时配合 Keys 使用。
func (c *Cache[K, V]) ToMap() map[K]V {
	out := make(map[K]V, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := c.entryOf(el)
		out[e.key] = e.value
	}
	return out
}

// Keys 按插入顺序返回所有键的快照，不过滤已过期条目。
func (c *Cache[K, V]) Keys() []K {
	out := make([]K, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, c.entryOf(el).key)
	}
	return out
}

// All 按插入顺序迭代所有条目。
// 迭代基于调用时的快照，迭代过程中修改缓存是安全的。
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	keys := c.Keys()
	values := c.ToList()
	return func(yield func(K, V) bool) {
		for i, k := range keys {
			if !yield(k, values[i]) {
				return
			}
		}
	}
}

// Len 返回当前存储的条目数，包含已过期但尚未被回收的条目。
func (c *Cache[K, V]) Len() int {
	return c.order.Len()
}

// Clear 删除所有条目，不触发 OnExpired 回调。
func (c *Cache[K, V]) Clear() {
	clear(c.items)
	c.order.Init()
}

// Remaining 返回有效条目的剩余时间。
// 永不过期的条目返回 NoExpiry；键不存在或已过期返回 0 和 false。
// Remaining 是只读操作，不会删除过期条目。
func (c *Cache[K, V]) Remaining(key K) (time.Duration, bool) {
	el, ok := c.items[key]
	if !ok {
		return 0, false
	}
	e := c.entryOf(el)
	now := c.clock.Now()
	if e.expired(now) {
		return 0, false
	}
	return e.remaining(now), true
}

// Stats 返回统计信息快照。
func (c *Cache[K, V]) Stats() Stats {
	return c.stats
}

// =============================================================================
// 内部辅助函数
// =============================================================================

func (c *Cache[K, V]) entryOf(el *list.Element) *entry[K, V] {
	return el.Value.(*entry[K, V]) //nolint:errcheck,forcetypeassert // 链表只存放 *entry
}

// unlink 从 map 和链表中移除条目。
func (c *Cache[K, V]) unlink(el *list.Element) *entry[K, V] {
	e := c.entryOf(el)
	delete(c.items, e.key)
	c.order.Remove(el)
	return e
}

// expire 删除过期条目并触发回调。
func (c *Cache[K, V]) expire(el *list.Element) {
	e := c.unlink(el)
	c.stats.Expired++
	if c.onExpired != nil {
		c.onExpired(e.key, e.value)
	}
}

// checkKey 拒绝零值 key。
func checkKey[K comparable](key K) error {
	var zero K
	if key == zero {
		return fmt.Errorf("%w: key is empty", ErrInvalidArgument)
	}
	return nil
}

// isNil 判断 value 是否为 nil。
// 只有可为 nil 的类型才可能返回 true，零值的 int/string/struct 都是有效值。
func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
