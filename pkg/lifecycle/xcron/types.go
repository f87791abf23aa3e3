package xcron

import (
	"context"

	"github.com/robfig/cron/v3"
)

// JobID 任务 ID，即 cron.EntryID。
type JobID = cron.EntryID

// Job 定时任务接口。
type Job interface {
	// Run 执行任务。ctx 在调度器停止或执行超时时取消。
	Run(ctx context.Context) error
}

// JobFunc 函数适配器。
type JobFunc func(ctx context.Context) error

// Run 实现 Job 接口。
func (f JobFunc) Run(ctx context.Context) error {
	return f(ctx)
}
