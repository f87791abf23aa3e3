package xcron

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/xttl/pkg/observability/xlog"
)

// =============================================================================
// 调度器选项
// =============================================================================

type schedulerOptions struct {
	logger   xlog.Logger
	location *time.Location
	parser   cron.Parser
}

func defaultSchedulerOptions() *schedulerOptions {
	return &schedulerOptions{
		logger:   xlog.Discard(),
		location: time.Local,
		parser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// SchedulerOption 调度器配置选项。
type SchedulerOption func(*schedulerOptions)

// WithLogger 设置日志记录器，nil 忽略。
func WithLogger(logger xlog.Logger) SchedulerOption {
	return func(o *schedulerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLocation 设置时区，默认 time.Local。
func WithLocation(loc *time.Location) SchedulerOption {
	return func(o *schedulerOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithSeconds 启用秒级表达式（6 字段）。
func WithSeconds() SchedulerOption {
	return func(o *schedulerOptions) {
		o.parser = cron.NewParser(
			cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
		)
	}
}

// =============================================================================
// 任务选项
// =============================================================================

type jobOptions struct {
	name    string
	timeout time.Duration
}

// JobOption 任务配置选项。
type JobOption func(*jobOptions)

// WithName 设置任务名，用于日志和统计。
func WithName(name string) JobOption {
	return func(o *jobOptions) {
		o.name = name
	}
}

// WithTimeout 设置单次执行超时，非正数表示不限制。
func WithTimeout(timeout time.Duration) JobOption {
	return func(o *jobOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}
