package xrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xttl/pkg/observability/xlog"
)

// Group 一组共享 context 的服务。
// 任一服务返回非 nil 错误，或调用 Cancel，其余服务的 context 随之取消。
type Group struct {
	eg  *errgroup.Group
	ctx context.Context

	// root 记录 Cancel 与信号给出的取消原因。
	root   context.Context
	cancel context.CancelCauseFunc
	o      *groupOptions
}

// NewGroup 创建 Group。返回的 context 即服务收到的 context，Wait 返回后一定已取消。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	root, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(root)
	return &Group{eg: eg, ctx: egCtx, root: root, cancel: cancel, o: o}, egCtx
}

// Go 启动一个匿名服务，不记录启停日志。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 启动具名服务：启停记 Debug，异常退出记 Warn。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return g.supervise(name, fn)
	})
}

func (g *Group) supervise(name string, fn func(ctx context.Context) error) error {
	attrs := []slog.Attr{slog.String("group", g.o.name), slog.String("service", name)}
	g.o.logger.Debug(g.ctx, "service starting", attrs...)

	start := time.Now()
	err := fn(g.ctx)
	attrs = append(attrs, xlog.Duration(time.Since(start)))

	if err != nil && !errors.Is(err, context.Canceled) {
		g.o.logger.Warn(g.ctx, "service exited with error", append(attrs, xlog.Err(err))...)
		return err
	}
	g.o.logger.Debug(g.ctx, "service stopped", attrs...)
	return err
}

// Wait 等待所有服务退出。
//
// 服务错误优先于取消原因返回；因 Cancel(cause) 或信号退出时返回该原因；
// 父 context 取消或所有服务正常结束时返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	g.o.logger.Debug(context.Background(), "all services stopped", slog.String("group", g.o.name))

	switch {
	case err == nil:
		return g.cause()
	case errors.Is(err, context.Canceled) && g.root.Err() != nil:
		return g.cause()
	default:
		return err
	}
}

// cause 返回显式给出的取消原因，普通取消视为 nil。
func (g *Group) cause() error {
	if g.root.Err() == nil {
		return nil
	}
	c := context.Cause(g.root)
	if errors.Is(c, context.Canceled) {
		return nil
	}
	return c
}

// Cancel 以 cause 取消所有服务。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回服务使用的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// =============================================================================
// 服务
// =============================================================================

// Service 长期运行的服务，Run 应阻塞到 ctx 取消。
type Service interface {
	Run(ctx context.Context) error
}

// ServiceFunc 函数适配器。
type ServiceFunc func(ctx context.Context) error

// Run 实现 Service。
func (f ServiceFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Named 由需要在日志中显示名称的 Service 实现。
type Named interface {
	Name() string
}

type namedService struct {
	Service
	name string
}

func (s namedService) Name() string { return s.name }

// NamedService 为 svc 附加名称。name 为空时原样返回 svc。
func NamedService(name string, svc Service) Service {
	if svc == nil || name == "" {
		return svc
	}
	return namedService{Service: svc, name: name}
}

func serviceName(svc Service) string {
	if n, ok := svc.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", svc)
}

// =============================================================================
// 运行入口
// =============================================================================

// Run 运行服务函数并处理系统信号，阻塞直到全部退出。
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, services...)
}

// RunWithOptions 同 Run，可指定选项。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	return runGroup(ctx, opts, func(g *Group) {
		for _, fn := range services {
			g.Go(fn)
		}
	})
}

// RunServices 运行 Service 并处理系统信号。
// 每个服务以其名称（见 [Named]）记录启停日志；nil Service 使 RunServices 返回 ErrNilService。
func RunServices(ctx context.Context, services ...Service) error {
	return RunServicesWithOptions(ctx, nil, services...)
}

// RunServicesWithOptions 同 RunServices，可指定选项。
func RunServicesWithOptions(ctx context.Context, opts []Option, services ...Service) error {
	return runGroup(ctx, opts, func(g *Group) {
		for _, svc := range services {
			if svc == nil {
				g.Go(func(context.Context) error { return ErrNilService })
				continue
			}
			g.GoWithName(serviceName(svc), svc.Run)
		}
	})
}

func runGroup(ctx context.Context, opts []Option, setup func(g *Group)) error {
	g, _ := NewGroup(ctx, opts...)
	if !g.o.noSignalHandler {
		signals := g.o.signals
		if len(signals) == 0 {
			signals = DefaultSignals()
		}
		g.Go(func(ctx context.Context) error { return g.waitSignal(ctx, signals) })
	}
	setup(g)
	return g.Wait()
}

// waitSignal 收到信号后以 *SignalError 取消 Group。
func (g *Group) waitSignal(ctx context.Context, signals []os.Signal) error {
	notify := make(chan os.Signal, 1)
	signal.Notify(notify, signals...)
	defer signal.Stop(notify)

	var sig os.Signal
	select {
	case sig = <-notify:
	case sig = <-injectedSignals(ctx):
	case <-ctx.Done():
		return ctx.Err()
	}

	g.o.logger.Info(ctx, "received signal",
		slog.String("group", g.o.name),
		slog.String("signal", sig.String()),
	)
	g.cancel(&SignalError{Signal: sig})
	return nil
}

// signalsKey 测试经由 context 注入信号，不向进程发送真实信号。
type signalsKey struct{}

func injectedSignals(ctx context.Context) <-chan os.Signal {
	c, _ := ctx.Value(signalsKey{}).(<-chan os.Signal)
	return c
}
