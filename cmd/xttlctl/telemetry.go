package main

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xttl/pkg/observability/xlog"
	"github.com/omeyang/xttl/pkg/observability/xmetrics"
)

// telemetry 为 serve 提供进程内的 MeterProvider。
// 指标由 ManualReader 汇总，退出时写入日志；链路追踪沿用全局 TracerProvider。
type telemetry struct {
	reader *sdkmetric.ManualReader
	mp     *sdkmetric.MeterProvider
	obs    *xmetrics.OTelObserver
}

func newTelemetry() (*telemetry, error) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	obs, err := xmetrics.NewOTel(
		xmetrics.WithScope("xttlctl"),
		xmetrics.WithMeterProvider(mp),
	)
	if err != nil {
		_ = mp.Shutdown(context.Background())
		return nil, err
	}
	return &telemetry{reader: reader, mp: mp, obs: obs}, nil
}

// totals 按 "<component>.<operation>.<status>" 汇总调用次数，
// 处理条目数记在同名键加 ".items" 后缀下。
func (t *telemetry) totals(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}

	out := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			var suffix string
			switch m.Name {
			case xmetrics.MetricOperationTotal:
			case xmetrics.MetricOperationItems:
				suffix = ".items"
			default:
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				out[operationKey(dp.Attributes)+suffix] += dp.Value
			}
		}
	}
	return out, nil
}

func operationKey(set attribute.Set) string {
	get := func(k string) string {
		v, _ := set.Value(attribute.Key(k))
		return v.AsString()
	}
	return get(xmetrics.KeyComponent) + "." + get(xmetrics.KeyOperation) + "." + get(xmetrics.KeyStatus)
}

// shutdown 记录指标汇总后关闭 MeterProvider。
func (t *telemetry) shutdown(ctx context.Context, logger xlog.Logger) error {
	totals, err := t.totals(ctx)
	if err != nil {
		logger.Warn(ctx, "telemetry collect failed", xlog.Err(err))
	} else {
		attrs := make([]slog.Attr, 0, len(totals))
		for _, k := range slices.Sorted(maps.Keys(totals)) {
			attrs = append(attrs, slog.Int64(k, totals[k]))
		}
		logger.Info(ctx, "telemetry summary", attrs...)
	}
	return t.mp.Shutdown(ctx)
}
