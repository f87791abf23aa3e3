// Package xcron 提供进程内定时任务调度能力。
//
// # 概述
//
// xcron 基于 [robfig/cron/v3] 构建，为每个任务增加：
//
//   - panic 恢复：任务 panic 被记录为一次失败，不会终止调度器
//   - 执行超时：WithTimeout 为单次执行设置 context 超时
//   - 防重入：上一次执行未结束时跳过本次触发
//   - 执行统计：见 [Stats]
//
// # 快速开始
//
//	scheduler := xcron.New(xcron.WithLogger(logger))
//	scheduler.AddFunc("@every 1m", func(ctx context.Context) error {
//	    return doSomething(ctx)
//	}, xcron.WithName("sweep"))
//	scheduler.Start()
//	defer func() { <-scheduler.Stop().Done() }()
//
// # 任务实现要求
//
// 任务函数应响应 context 取消信号。Stop 会取消所有运行中任务的 context，
// 超时同样通过取消 context 通知任务。
//
// # 表达式
//
// 默认使用标准 5 字段表达式和 "@every 30s" 这类描述符，
// WithSeconds 切换为 6 字段（首字段为秒）。
//
// [robfig/cron/v3]: https://github.com/robfig/cron
package xcron
