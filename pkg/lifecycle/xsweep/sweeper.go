package xsweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"

	"github.com/omeyang/xttl/pkg/lifecycle/xcron"
	"github.com/omeyang/xttl/pkg/observability/xlog"
	"github.com/omeyang/xttl/pkg/observability/xmetrics"
)

//go:generate mockgen -source=sweeper.go -destination=mock_sweepable_test.go -package=xsweep

// DefaultSchedule 默认回收周期。
const DefaultSchedule = "@every 1m"

var (
	// ErrNilTarget 回收目标为 nil。
	ErrNilTarget = errors.New("xsweep: nil target")

	// ErrInvalidSchedule 回收周期表达式无效。
	ErrInvalidSchedule = errors.New("xsweep: invalid schedule")
)

// Sweepable 可被回收的缓存。*xttl.SafeCache 满足此接口。
type Sweepable interface {
	// Sweep 删除所有过期条目，返回删除数量。
	Sweep() int

	// Len 返回当前条目数。
	Len() int
}

// Sweeper 周期性回收器。
type Sweeper struct {
	target   Sweepable
	schedule string
	name     string
	logger   xlog.Logger
	observer xmetrics.Observer
}

// New 创建回收器，schedule 在此时校验。
func New(target Sweepable, opts ...Option) (*Sweeper, error) {
	if target == nil {
		return nil, ErrNilTarget
	}

	s := &Sweeper{
		target:   target,
		schedule: DefaultSchedule,
		name:     "xttl-sweeper",
		logger:   xlog.Discard(),
		observer: xmetrics.Noop,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, s.schedule, err)
	}
	return s, nil
}

// Schedule 返回回收周期表达式。
func (s *Sweeper) Schedule() string {
	return s.schedule
}

// Name 返回回收器名称。
func (s *Sweeper) Name() string {
	return s.name
}

// SweepOnce 执行一次回收并返回删除数量。
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	ctx, span := xmetrics.Start(ctx, s.observer, xmetrics.Operation{
		Component: "xttl",
		Name:      "sweep",
		Attrs:     []attribute.KeyValue{xmetrics.Sweeper(s.name)},
	})

	removed := s.target.Sweep()
	remaining := s.target.Len()

	span.End(xmetrics.Outcome{
		Items: int64(removed),
		Attrs: []attribute.KeyValue{xmetrics.Remaining(remaining)},
	})

	attrs := []slog.Attr{
		slog.String("sweeper", s.name),
		slog.Int("removed", removed),
		slog.Int("remaining", remaining),
	}
	if removed > 0 {
		s.logger.Info(ctx, "expired entries swept", attrs...)
	} else {
		s.logger.Debug(ctx, "sweep found nothing to remove", attrs...)
	}
	return removed
}

// Run 按计划执行回收，阻塞直到 ctx 取消，返回前等待进行中的回收结束。
func (s *Sweeper) Run(ctx context.Context) error {
	scheduler := xcron.New(xcron.WithLogger(s.logger))
	if _, err := scheduler.AddFunc(s.schedule, func(ctx context.Context) error {
		s.SweepOnce(ctx)
		return nil
	}, xcron.WithName(s.name)); err != nil {
		return err
	}

	s.logger.Info(ctx, "sweeper started",
		slog.String("sweeper", s.name),
		slog.String("schedule", s.schedule),
	)
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()

	st := scheduler.Stats()
	s.logger.Info(context.WithoutCancel(ctx), "sweeper stopped",
		slog.String("sweeper", s.name),
		slog.Int64("runs", st.Runs),
		slog.Int64("failures", st.Failures),
	)
	return nil
}

// =============================================================================
// 选项
// =============================================================================

// Option 回收器配置选项。
type Option func(*Sweeper)

// WithSchedule 设置回收周期（cron 5 字段表达式或 "@every 30s"），空白忽略。
func WithSchedule(spec string) Option {
	return func(s *Sweeper) {
		if spec = strings.TrimSpace(spec); spec != "" {
			s.schedule = spec
		}
	}
}

// WithName 设置回收器名称，用于日志、指标和调度统计。
func WithName(name string) Option {
	return func(s *Sweeper) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger 设置日志记录器，nil 忽略。
func WithLogger(logger xlog.Logger) Option {
	return func(s *Sweeper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver 设置观测器，nil 忽略。
func WithObserver(observer xmetrics.Observer) Option {
	return func(s *Sweeper) {
		if observer != nil {
			s.observer = observer
		}
	}
}
