package xsweep

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xttl/pkg/observability/xlog"
	"github.com/omeyang/xttl/pkg/observability/xmetrics"
	"github.com/omeyang/xttl/pkg/storage/xttl"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(t *testing.T) (xlog.Logger, *lockedBuffer) {
	t.Helper()
	buf := &lockedBuffer{}
	logger, cleanup, err := xlog.New().SetOutput(buf).SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return logger, buf
}

// =============================================================================
// New
// =============================================================================

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := NewMockSweepable(ctrl)

	s, err := New(target)
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, s.Schedule())
	assert.Equal(t, "xttl-sweeper", s.Name())

	s, err = New(target, WithSchedule(" @every 30s "), WithName("orders"), WithName(""),
		WithLogger(nil), WithObserver(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "@every 30s", s.Schedule())
	assert.Equal(t, "orders", s.Name())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilTarget)

	ctrl := gomock.NewController(t)
	_, err = New(NewMockSweepable(ctrl), WithSchedule("every so often"))
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

// =============================================================================
// SweepOnce
// =============================================================================

func TestSweepOnce_Mock(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := NewMockSweepable(ctrl)
	logger, buf := newTestLogger(t)

	gomock.InOrder(
		target.EXPECT().Sweep().Return(2),
		target.EXPECT().Len().Return(5),
		target.EXPECT().Sweep().Return(0),
		target.EXPECT().Len().Return(5),
	)

	s, err := New(target, WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, 2, s.SweepOnce(context.Background()))
	assert.Equal(t, 0, s.SweepOnce(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"expired entries swept\"")
	assert.Contains(t, out, "removed=2 remaining=5")
	assert.Contains(t, out, "level=DEBUG msg=\"sweep found nothing to remove\"")
}

func TestSweepOnce_Observed(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})
	obs, err := xmetrics.NewOTel(xmetrics.WithTracerProvider(tp), xmetrics.WithMeterProvider(mp))
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	cache, err := xttl.NewSafe[string, string](4*time.Second, xttl.WithClock(clock))
	require.NoError(t, err)
	require.NoError(t, cache.Add("key", "value"))
	require.NoError(t, cache.AddWithTTL("key 2", "value 2", 10*time.Second))
	clock.Advance(5 * time.Second)

	s, err := New(cache, WithObserver(obs))
	require.NoError(t, err)
	assert.Equal(t, 1, s.SweepOnce(context.Background()))
	assert.Equal(t, []string{"value 2"}, cache.ToList())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "xttl.sweep", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.Int64(xmetrics.KeyItems, 1))
	assert.Contains(t, spans[0].Attributes, attribute.Int(xmetrics.KeyRemaining, 1))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var items int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != xmetrics.MetricOperationItems {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				items += dp.Value
			}
		}
	}
	assert.Equal(t, int64(1), items)
}

// =============================================================================
// Run
// =============================================================================

func TestRun_SweepsOnSchedule(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := NewMockSweepable(ctrl)
	logger, buf := newTestLogger(t)

	swept := make(chan struct{}, 1)
	target.EXPECT().Sweep().DoAndReturn(func() int {
		select {
		case swept <- struct{}{}:
		default:
		}
		return 1
	}).MinTimes(1)
	target.EXPECT().Len().Return(0).MinTimes(1)

	s, err := New(target, WithSchedule("@every 1s"), WithLogger(logger))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-swept:
	case <-time.After(3 * time.Second):
		t.Fatal("sweeper did not run")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	out := buf.String()
	assert.Contains(t, out, "sweeper started")
	assert.Contains(t, out, "sweeper stopped")
	assert.Contains(t, out, "failures=0")
	assert.NotContains(t, out, "runs=0")
}
