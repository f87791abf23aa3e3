// Package xsweep 按计划周期性回收 TTL 缓存中的过期条目。
//
// 缓存本身只做惰性过期：只有被访问的过期键才会被删除。
// 长期不被访问的键需要外部调用 Sweep 回收，Sweeper 即该外部调用者。
//
// # 使用示例
//
//	cache, _ := xttl.NewSafe[string, string](time.Minute)
//	sweeper, _ := xsweep.New(cache,
//		xsweep.WithSchedule("@every 30s"),
//		xsweep.WithLogger(logger),
//		xsweep.WithObserver(obs),
//	)
//	go sweeper.Run(ctx)
//
// Sweeper 实现 xrun.Service，可直接交给 xrun.RunServices 管理。
//
// # 已知限制
//
//   - 目标必须自身并发安全（如 *xttl.SafeCache），Sweeper 不加锁
//   - 调度粒度受 robfig/cron 限制，"@every" 最小间隔为 1 秒
package xsweep
