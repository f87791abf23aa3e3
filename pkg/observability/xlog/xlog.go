package xlog

import (
	"context"
	"log/slog"
)

// Logger 结构化日志接口。
// context 总是第一个参数，属性只接受 slog.Attr。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 派生带固定属性的 Logger。派生实例与父级共享级别，SetLevel 对两者同时生效。
	With(attrs ...slog.Attr) Logger
}

// Leveler 运行时级别控制，配置热更新时使用。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel 是 [Builder.Build] 和 [Discard] 的返回类型。
type LoggerWithLevel interface {
	Logger
	Leveler

	// Dropped 返回因输出写入失败而丢失的日志条数，派生 Logger 共享计数。
	Dropped() uint64
}
