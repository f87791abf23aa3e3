// Package xttl 提供单进程、同步的 TTL 键值缓存。
//
// 每个条目记录写入时间和有效时长（TTL），过期判断永远由
// 写入时间、TTL 与当前时间实时计算，不存储"已过期"标记。
//
// # 核心特性
//
//   - 泛型支持：任意 comparable 键类型和任意值类型
//   - 惰性过期：Fetch/Valid 发现条目过期时顺带删除
//   - 批量清理：Sweep 全量扫描，删除所有过期条目并返回删除数
//   - 插入有序：Keys/ToList/All 按插入顺序迭代，覆盖写不改变位置
//   - 可注入时钟：WithClock 接受 clockwork.Clock，测试中可使用 FakeClock
//
// # TTL 语义
//
// 有效 TTL 的确定规则：
//   - Add 使用缓存默认 TTL
//   - AddWithTTL 传入的 ttl > 0 时使用该值，ttl == 0 时回落到缓存默认 TTL
//   - 负数 TTL 一律返回 ErrInvalidArgument
//
// 有效 TTL 为 0 表示"永不过期"：Valid 恒为 true，Sweep 永不回收。
// 因此默认 TTL 为 0 的缓存，在未显式指定 TTL 时所有条目都不会过期。
//
// 条目有效当且仅当 |now - createdAt| < ttl。取绝对值使时钟回拨时
// 不会产生负的已流逝时间。
//
// # 并发
//
// Cache 不做任何内部同步，所有方法必须在同一 goroutine 中调用，
// 或由调用方提供互斥。需要并发访问时使用 [SafeCache]，
// 它以一把 sync.Mutex 保护全部操作（例如配合后台 Sweeper 使用）。
//
// # 设计决策
//
//   - 组合而非继承：内部持有 map + 双向链表，不暴露绕过 TTL 记账的原始写入
//   - 不提供链式调用：写入方法返回 error，由调用方顺序调用
//   - AddMany 非原子：遇到第一个无效条目即返回错误，之前已写入的条目保留
//   - 无后台 goroutine：过期只在 Fetch/Valid/Sweep 时被计算
//
// # 已知限制
//
//   - 无容量上限：内存只随 Remove/Fetch/Valid/Sweep 回收
//   - Len/ToList/ToMap/Keys 包含已过期但尚未被回收的条目
//   - OnExpired 回调同步执行；在 SafeCache 中回调运行于锁内，
//     严禁在回调中调用缓存自身方法（会死锁）
package xttl
