package xmetrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// 结果状态，即指标属性 status 的取值。
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Operation 描述一次被观测的操作。
type Operation struct {
	// Component 发起操作的组件，如 "xttl"、"xconf"。
	Component string

	// Name 操作名，如 "sweep"、"reload"。
	Name string

	// Attrs 只写入追踪跨度，不作为指标维度。
	Attrs []attribute.KeyValue
}

// Outcome 操作结束时上报的结果。
type Outcome struct {
	Err error

	// Items 本次处理的条目数（如回收删除的条目数），大于 0 时计入 xttl.operation.items。
	Items int64

	// Attrs 追加到追踪跨度的属性。
	Attrs []attribute.KeyValue
}

// Status 由 Err 推导结果状态。
func (o Outcome) Status() string {
	if o.Err != nil {
		return StatusError
	}
	return StatusOK
}

// Span 一次进行中的观测。
type Span interface {
	// End 上报结果。重复调用只有第一次生效。
	End(out Outcome)
}

// Observer 观测入口。
type Observer interface {
	Start(ctx context.Context, op Operation) (context.Context, Span)
}

// Noop 丢弃所有观测数据，作为各组件未配置 Observer 时的默认值。
var Noop Observer = noopObserver{}

type noopObserver struct{}

func (noopObserver) Start(ctx context.Context, _ Operation) (context.Context, Span) {
	return orBackground(ctx), noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(Outcome) {}

// Start 通过 obs 开始一次观测。
// obs 为 nil 时使用 Noop；返回的 context 与 Span 保证非 nil。
func Start(ctx context.Context, obs Observer, op Operation) (context.Context, Span) {
	ctx = orBackground(ctx)
	if obs == nil {
		return ctx, noopSpan{}
	}
	next, span := obs.Start(ctx, op)
	if next == nil {
		next = ctx
	}
	if span == nil {
		span = noopSpan{}
	}
	return next, span
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
