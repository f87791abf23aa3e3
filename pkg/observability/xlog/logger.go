package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

var _ LoggerWithLevel = (*logger)(nil)

type logger struct {
	h       slog.Handler
	level   *slog.LevelVar
	source  bool
	dropped *atomic.Uint64
}

func newLogger(h slog.Handler, level *slog.LevelVar, source bool) *logger {
	return &logger{h: h, level: level, source: source, dropped: new(atomic.Uint64)}
}

// Discard 返回丢弃所有输出的 Logger，作为各组件未配置 logger 时的默认值。
func Discard() LoggerWithLevel {
	return newLogger(slog.DiscardHandler, new(slog.LevelVar), false)
}

// emit 必须由 Debug/Info/Warn/Error 直接调用，source 的调用栈深度依赖于此。
//
//go:noinline
func (l *logger) emit(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.h.Enabled(ctx, level) {
		return
	}

	var pc uintptr
	if l.source {
		var pcs [1]uintptr
		runtime.Callers(3, pcs[:]) // Callers, emit, Info
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)
	if err := l.h.Handle(ctx, r); err != nil {
		l.dropped.Add(1)
	}
}

func (l *logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelDebug, msg, attrs)
}

func (l *logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelInfo, msg, attrs)
}

func (l *logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelWarn, msg, attrs)
}

func (l *logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, slog.LevelError, msg, attrs)
}

func (l *logger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	child := *l
	child.h = l.h.WithAttrs(attrs)
	return &child
}

func (l *logger) SetLevel(level Level) { l.level.Set(level.Level()) }

func (l *logger) GetLevel() Level { return Level(l.level.Level()) }

func (l *logger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.h.Enabled(ctx, level.Level())
}

func (l *logger) Dropped() uint64 { return l.dropped.Load() }
