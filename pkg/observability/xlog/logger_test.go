package xlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xttl/pkg/observability/xlog"
)

// newBufferLogger 构建写入内存的 JSON logger
func newBufferLogger(t *testing.T, level xlog.Level) (xlog.LoggerWithLevel, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetFormat("json").
		SetLevel(level).
		Build()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })
	return logger, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

// =============================================================================
// Logger
// =============================================================================

func TestLogger_Levels(t *testing.T) {
	logger, buf := newBufferLogger(t, xlog.LevelInfo)
	ctx := context.Background()

	logger.Debug(ctx, "hidden")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message", xlog.Err(errors.New("boom")))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "info message", lines[0]["msg"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, "boom", lines[2][xlog.KeyError])
}

func TestLogger_NilContext(t *testing.T) {
	logger, buf := newBufferLogger(t, xlog.LevelInfo)

	//nolint:staticcheck // 验证 nil ctx 不会 panic
	logger.Info(nil, "no ctx")
	assert.Contains(t, buf.String(), "no ctx")
}

func TestLogger_DynamicLevel(t *testing.T) {
	logger, buf := newBufferLogger(t, xlog.LevelInfo)
	ctx := context.Background()
	child := logger.With(xlog.Component("xttl"))

	assert.False(t, logger.Enabled(ctx, xlog.LevelDebug))
	child.Debug(ctx, "before")

	logger.SetLevel(xlog.LevelDebug)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())
	child.Debug(ctx, "after")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "after", lines[0]["msg"])
	assert.Equal(t, "xttl", lines[0][xlog.KeyComponent])
}

func TestLogger_WithNoAttrsReturnsSelf(t *testing.T) {
	logger, _ := newBufferLogger(t, xlog.LevelInfo)
	assert.Same(t, logger, logger.With())
}

func TestDiscard(t *testing.T) {
	logger := xlog.Discard()
	ctx := context.Background()
	logger.Error(ctx, "dropped")
	assert.False(t, logger.Enabled(ctx, xlog.LevelError))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLogger_Dropped(t *testing.T) {
	logger, cleanup, err := xlog.New().SetOutput(failingWriter{}).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	ctx := context.Background()
	child := logger.With(xlog.Component("xttl"))
	logger.Info(ctx, "first")
	child.Warn(ctx, "second")
	logger.Debug(ctx, "filtered")

	assert.Equal(t, uint64(2), logger.Dropped())
}

func TestLogger_AddSource(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetFormat("json").SetAddSource(true).Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Info(context.Background(), "where")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	src, ok := lines[0][slog.SourceKey].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, src["file"], "logger_test.go")
}

// =============================================================================
// Builder
// =============================================================================

func TestBuilder_FirstErrorWins(t *testing.T) {
	_, _, err := xlog.New().
		SetLevelString("loud").
		SetFormat("xml").
		Build()
	require.ErrorIs(t, err, xlog.ErrUnknownLevel)
}

func TestBuilder_InvalidFormat(t *testing.T) {
	_, _, err := xlog.New().SetFormat("xml").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestBuilder_EmptyFormatIsText(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().SetOutput(&buf).SetFormat("  ").Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Info(context.Background(), "plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestBuilder_NilOutput(t *testing.T) {
	_, _, err := xlog.New().SetOutput(nil).Build()
	assert.Error(t, err)
}

func TestBuilder_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := xlog.New().
		SetOutput(&buf).
		SetFormat("json").
		SetAttrs(slog.String("service", "xttlctl")).
		Build()
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	logger.Info(context.Background(), "hello")
	assert.Contains(t, buf.String(), `"service":"xttlctl"`)
}

func TestBuilder_SetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "xttl.log")

	logger, cleanup, err := xlog.New().
		SetFile(path, xlog.WithMaxSize(1), xlog.WithMaxBackups(1), xlog.WithMaxAge(1), xlog.WithCompress(false)).
		SetFormat("json").
		Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "to file", xlog.Count(3))
	require.NoError(t, cleanup())
	// 重复调用安全
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Contains(t, string(data), `"count":3`)
}

func TestBuilder_SetFileEmpty(t *testing.T) {
	_, _, err := xlog.New().SetFile(" ").Build()
	assert.ErrorIs(t, err, xlog.ErrEmptyFilename)
}

// =============================================================================
// 属性
// =============================================================================

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.Attr{}, xlog.Err(nil))
	assert.Equal(t, "1.5s", xlog.Duration(1500*time.Millisecond).Value.String())
	assert.Equal(t, xlog.KeyOperation, xlog.Operation("sweep").Key)

	assert.Equal(t, "key", xlog.Key("key").Value.String())
	assert.Equal(t, "42", xlog.Key(42).Value.String())
	assert.Equal(t, "10s", xlog.Key(10*time.Second).Value.String())

	assert.Equal(t, "none", xlog.TTL(0).Value.String())
	assert.Equal(t, "4s", xlog.TTL(4*time.Second).Value.String())
}
