package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/omeyang/xttl/pkg/config/xconf"
	"github.com/omeyang/xttl/pkg/lifecycle/xrun"
	"github.com/omeyang/xttl/pkg/lifecycle/xsweep"
	"github.com/omeyang/xttl/pkg/observability/xlog"
	"github.com/omeyang/xttl/pkg/observability/xmetrics"
	"github.com/omeyang/xttl/pkg/storage/xttl"
)

// serve 按配置运行缓存、定期回收和配置监视，直到 ctx 取消或收到终止信号。
func serve(ctx context.Context, path string, stderr io.Writer) error {
	cfg, err := xconf.Load(path)
	if err != nil {
		return &usageError{err: err}
	}

	logger, cleanup, err := buildLogger(cfg.Log, stderr)
	if err != nil {
		return &usageError{err: err}
	}
	defer func() { _ = cleanup() }()

	cache, err := newCache(ctx, cfg.Cache, logger)
	if err != nil {
		return &usageError{err: err}
	}

	tel, err := newTelemetry()
	if err != nil {
		return err
	}
	defer func() { _ = tel.shutdown(context.WithoutCancel(ctx), logger) }()
	obs := tel.obs

	var services []xrun.Service
	if cfg.Sweeper.Enabled {
		sweeper, err := xsweep.New(cache,
			xsweep.WithSchedule(cfg.Sweeper.Schedule),
			xsweep.WithLogger(logger),
			xsweep.WithObserver(obs),
		)
		if err != nil {
			return &usageError{err: err}
		}
		services = append(services, sweeper)
	}

	watcher, err := xconf.Watch(path, func(next *xconf.Config, err error) {
		applyReload(ctx, logger, obs, path, next, err)
	})
	if err != nil {
		return err
	}
	services = append(services, xrun.NamedService("config-watcher", xrun.ServiceFunc(watcher.Run)))

	logger.Info(ctx, "xttl serving",
		slog.String("config", path),
		xlog.TTL(cfg.Cache.DefaultTTL),
		xlog.Count(int64(cache.Len())),
	)

	err = xrun.RunServicesWithOptions(ctx,
		[]xrun.Option{xrun.WithLogger(logger), xrun.WithName("xttlctl")},
		services...,
	)
	if errors.Is(err, xrun.ErrSignal) {
		return nil
	}
	return err
}

func buildLogger(cfg xconf.LogConfig, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format).
		SetAttrs(xlog.Component("xttlctl"))
	if cfg.File != "" {
		b = b.SetFile(cfg.File)
	}
	return b.Build()
}

// newCache 创建并发安全缓存并写入预置条目。
func newCache(ctx context.Context, cfg xconf.CacheConfig, logger xlog.Logger) (*xttl.SafeCache[string, string], error) {
	cache, err := xttl.NewSafe[string, string](cfg.DefaultTTL,
		xttl.WithOnExpired(func(key, _ string) {
			logger.Debug(ctx, "entry expired", xlog.Key(key))
		}),
	)
	if err != nil {
		return nil, err
	}

	for _, s := range cfg.Seed {
		if err := cache.AddWithTTL(s.Key, s.Value, s.TTL); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

// applyReload 处理配置变更：目前只有日志级别可以热更新。
func applyReload(ctx context.Context, logger xlog.LoggerWithLevel, obs xmetrics.Observer, path string, next *xconf.Config, err error) {
	ctx, span := xmetrics.Start(ctx, obs, xmetrics.Operation{
		Component: "xconf",
		Name:      "reload",
		Attrs:     []attribute.KeyValue{xmetrics.ConfigPath(path)},
	})
	if err != nil {
		span.End(xmetrics.Outcome{Err: err})
		logger.Warn(ctx, "config reload failed, keeping previous settings", xlog.Err(err))
		return
	}

	level, err := xlog.ParseLevel(next.Log.Level)
	if err != nil {
		span.End(xmetrics.Outcome{Err: err})
		logger.Warn(ctx, "config reload rejected, keeping previous level", xlog.Err(err))
		return
	}
	prev := logger.GetLevel()
	logger.SetLevel(level)
	span.End(xmetrics.Outcome{})

	logger.Info(ctx, "config reloaded",
		slog.String("level_from", prev.String()),
		slog.String("level_to", level.String()),
	)
}
