// Package xrun 提供基于 errgroup + context 的进程生命周期管理。
//
// # 概述
//
// 当任一服务返回错误或收到终止信号时，共享的 context 会被取消，
// 所有服务应监听 ctx.Done() 并优雅退出。
//
// # 快速开始
//
//	err := xrun.RunServices(ctx, sweeper, xrun.NamedService("config-watcher", xrun.ServiceFunc(watcher.Run)))
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 收到 SIGINT/SIGTERM 等信号，属于正常退出
//	}
//
// # 信号处理
//
// Run/RunServices 默认监听 [DefaultSignals]，收到信号后以 [*SignalError] 作为
// 取消原因，Wait 返回该错误。使用 WithoutSignalHandler 关闭信号处理。
//
// [errgroup]: https://pkg.go.dev/golang.org/x/sync/errgroup
package xrun
