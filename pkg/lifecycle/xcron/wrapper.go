package xcron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/omeyang/xttl/pkg/observability/xlog"
)

// ErrJobPanic 任务执行期间 panic。
var ErrJobPanic = errors.New("xcron: job panicked")

// jobWrapper 把 Job 适配为 cron.Job：超时、panic 恢复、统计、日志。
type jobWrapper struct {
	job     Job
	name    string
	timeout time.Duration
	logger  xlog.Logger
	stats   *recorder

	// base 由调度器持有，Stop 时取消。
	base context.Context
}

func (w *jobWrapper) Run() {
	ctx := w.base
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	start := time.Now()
	err := w.call(ctx)
	end := time.Now()
	w.stats.record(w.name, end, end.Sub(start), err)

	attrs := []slog.Attr{slog.String("job", w.name), xlog.Duration(end.Sub(start))}
	if err != nil {
		w.logger.Error(ctx, "job failed", append(attrs, xlog.Err(err))...)
		return
	}
	w.logger.Debug(ctx, "job completed", attrs...)
}

// call 把 panic 转换为 ErrJobPanic。
func (w *jobWrapper) call(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrJobPanic, r)
			w.logger.Error(ctx, "job panic recovered",
				slog.String("job", w.name),
				slog.String("stack", string(debug.Stack())))
		}
	}()
	return w.job.Run(ctx)
}
