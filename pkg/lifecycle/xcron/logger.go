package xcron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/xttl/pkg/observability/xlog"
)

// cronLogger 把 robfig/cron 内部日志转发到 xlog。
// cron 的 Info 日志（调度、唤醒）较为频繁，降级为 Debug。
type cronLogger struct {
	logger xlog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(context.Background(), msg, kvToAttrs(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	attrs := append([]slog.Attr{xlog.Err(err)}, kvToAttrs(keysAndValues)...)
	l.logger.Error(context.Background(), msg, attrs...)
}

func kvToAttrs(kv []any) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(kv)/2+1)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			attrs = append(attrs, slog.String("!BADKEY", key))
			break
		}
		attrs = append(attrs, slog.Any(key, kv[i+1]))
	}
	return attrs
}
