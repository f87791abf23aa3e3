package xcron

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

var (
	// ErrNilJob 任务为 nil。
	ErrNilJob = errors.New("xcron: nil job")

	// ErrInvalidSpec 调度表达式无法解析。
	ErrInvalidSpec = errors.New("xcron: invalid spec")
)

// Scheduler 定时任务调度器。
type Scheduler interface {
	AddFunc(spec string, fn func(ctx context.Context) error, opts ...JobOption) (JobID, error)
	AddJob(spec string, job Job, opts ...JobOption) (JobID, error)

	// Remove 移除任务，不影响正在执行的实例。
	Remove(id JobID)

	// Start 异步启动调度，重复调用无副作用。
	Start()

	// Stop 停止调度并取消运行中任务的 context，
	// 返回的 context 在运行中任务全部结束后 Done。Stop 之后不能再 Start。
	Stop() context.Context

	Entries() []cron.Entry

	// Stats 返回执行统计快照。
	Stats() Stats
}

type scheduler struct {
	c      *cron.Cron
	o      *schedulerOptions
	stats  recorder
	base   context.Context
	cancel context.CancelFunc
}

// New 创建调度器。
// 同一任务上一次执行未结束时，本次触发被跳过。
func New(opts ...SchedulerOption) Scheduler {
	o := defaultSchedulerOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	logger := cronLogger{logger: o.logger}
	base, cancel := context.WithCancel(context.Background())
	return &scheduler{
		c: cron.New(
			cron.WithLocation(o.location),
			cron.WithParser(o.parser),
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		o:      o,
		base:   base,
		cancel: cancel,
	}
}

func (s *scheduler) AddFunc(spec string, fn func(ctx context.Context) error, opts ...JobOption) (JobID, error) {
	if fn == nil {
		return 0, ErrNilJob
	}
	return s.AddJob(spec, JobFunc(fn), opts...)
}

func (s *scheduler) AddJob(spec string, job Job, opts ...JobOption) (JobID, error) {
	if job == nil {
		return 0, ErrNilJob
	}
	jo := &jobOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(jo)
		}
	}

	id, err := s.c.AddJob(spec, &jobWrapper{
		job:     job,
		name:    jo.name,
		timeout: jo.timeout,
		logger:  s.o.logger,
		stats:   &s.stats,
		base:    s.base,
	})
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidSpec, spec, err)
	}
	return id, nil
}

func (s *scheduler) Remove(id JobID) { s.c.Remove(id) }

func (s *scheduler) Start() { s.c.Start() }

func (s *scheduler) Stop() context.Context {
	done := s.c.Stop()
	s.cancel()
	return done
}

func (s *scheduler) Entries() []cron.Entry { return s.c.Entries() }

func (s *scheduler) Stats() Stats { return s.stats.snapshot() }
