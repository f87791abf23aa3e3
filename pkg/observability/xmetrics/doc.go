// Package xmetrics 为缓存的维护操作（回收、配置重载）提供观测接口。
//
// 组件只依赖 [Observer] / [Span]，默认实现 [OTelObserver] 基于 OpenTelemetry，
// 未配置时使用 [Noop]。
//
//	obs, err := xmetrics.NewOTel(xmetrics.WithMeterProvider(mp))
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.Operation{Component: "xttl", Name: "sweep"})
//	removed := cache.Sweep()
//	span.End(xmetrics.Outcome{Items: int64(removed)})
//
// # 指标
//
//   - xttl.operation.total：操作次数
//   - xttl.operation.duration：操作耗时（秒）
//   - xttl.operation.items：处理的条目数，来自 Outcome.Items
//
// 三项指标的维度均为 component / operation / status。
// Operation.Attrs 与 Outcome.Attrs 只写入跨度，避免指标基数膨胀。
package xmetrics
