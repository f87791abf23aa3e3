package xmetrics

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// 指标名。
const (
	MetricOperationTotal    = "xttl.operation.total"
	MetricOperationItems    = "xttl.operation.items"
	MetricOperationDuration = "xttl.operation.duration"
)

const (
	defaultScope = "github.com/omeyang/xttl/pkg/observability/xmetrics"
	unnamed      = "unknown"
)

// 回收通常在微秒到毫秒级完成，默认桶对这类操作过粗。
var durationBuckets = []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

type otelOptions struct {
	scope string
	tp    trace.TracerProvider
	mp    metric.MeterProvider
}

// OTelOption 配置 [NewOTel]。
type OTelOption func(*otelOptions)

// WithScope 设置 instrumentation scope 名称。
func WithScope(name string) OTelOption {
	return func(o *otelOptions) {
		if name != "" {
			o.scope = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider，默认取 otel 全局值。
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(o *otelOptions) {
		if tp != nil {
			o.tp = tp
		}
	}
}

// WithMeterProvider 设置 MeterProvider，默认取 otel 全局值。
func WithMeterProvider(mp metric.MeterProvider) OTelOption {
	return func(o *otelOptions) {
		if mp != nil {
			o.mp = mp
		}
	}
}

// OTelObserver 把每次操作记录为一个内部跨度和三项指标。
type OTelObserver struct {
	tracer   trace.Tracer
	total    metric.Int64Counter
	items    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewOTel 创建基于 OpenTelemetry 的 Observer。
func NewOTel(opts ...OTelOption) (*OTelObserver, error) {
	o := &otelOptions{
		scope: defaultScope,
		tp:    otel.GetTracerProvider(),
		mp:    otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	meter := o.mp.Meter(o.scope)
	obs := &OTelObserver{tracer: o.tp.Tracer(o.scope)}

	var err error
	if obs.total, err = meter.Int64Counter(MetricOperationTotal,
		metric.WithDescription("Cache maintenance operations by outcome."),
		metric.WithUnit("{operation}"),
	); err != nil {
		return nil, instrumentErr(MetricOperationTotal, err)
	}
	if obs.items, err = meter.Int64Counter(MetricOperationItems,
		metric.WithDescription("Entries processed by cache maintenance operations."),
		metric.WithUnit("{entry}"),
	); err != nil {
		return nil, instrumentErr(MetricOperationItems, err)
	}
	if obs.duration, err = meter.Float64Histogram(MetricOperationDuration,
		metric.WithDescription("Duration of cache maintenance operations."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, instrumentErr(MetricOperationDuration, err)
	}
	return obs, nil
}

func instrumentErr(name string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrInstrument, name, err)
}

// Start 开始一个名为 "<component>.<name>" 的跨度。
func (o *OTelObserver) Start(ctx context.Context, op Operation) (context.Context, Span) {
	component, name := orUnnamed(op.Component), orUnnamed(op.Name)

	attrs := make([]attribute.KeyValue, 0, 2+len(op.Attrs))
	attrs = append(attrs,
		attribute.String(KeyComponent, component),
		attribute.String(KeyOperation, name),
	)
	attrs = append(attrs, op.Attrs...)

	ctx, span := o.tracer.Start(orBackground(ctx), component+"."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, &otelSpan{
		obs:       o,
		span:      span,
		ctx:       ctx,
		component: component,
		name:      name,
		start:     time.Now(),
	}
}

type otelSpan struct {
	obs       *OTelObserver
	span      trace.Span
	ctx       context.Context
	component string
	name      string
	start     time.Time
	ended     atomic.Bool
}

func (s *otelSpan) End(out Outcome) {
	if !s.ended.CompareAndSwap(false, true) {
		return
	}
	elapsed := time.Since(s.start)
	status := out.Status()

	if out.Err != nil {
		s.span.RecordError(out.Err)
		s.span.SetStatus(codes.Error, out.Err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.SetAttributes(attribute.Int64(KeyItems, out.Items))
	s.span.SetAttributes(out.Attrs...)
	s.span.End()

	// 调用方 ctx 可能已取消，指标照常记录。
	ctx := context.WithoutCancel(s.ctx)
	dims := metric.WithAttributeSet(attribute.NewSet(
		attribute.String(KeyComponent, s.component),
		attribute.String(KeyOperation, s.name),
		attribute.String(KeyStatus, status),
	))
	s.obs.total.Add(ctx, 1, dims)
	s.obs.duration.Record(ctx, elapsed.Seconds(), dims)
	if out.Items > 0 {
		s.obs.items.Add(ctx, out.Items, dims)
	}
}

func orUnnamed(s string) string {
	if s == "" {
		return unnamed
	}
	return s
}
