package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("os/signal.signal_recv"),
	)
}

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

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xttl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"xttlctl"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// =============================================================================
// demo
// =============================================================================

func TestDemo_Fast(t *testing.T) {
	code, out, _ := runCLI(t, "demo", "--fast")
	require.Equal(t, 0, code)

	want := `t=0s   add "key" (ttl 4s), "key 2" (ttl 10s)
t=5s   fetch "key" -> expired
t=5s   fetch "key 2" -> "value 2"
t=11s  fetch "key 2" -> expired
entries=0 hits=1 misses=2 expired=2
`
	assert.Equal(t, want, out)
}

func TestDemo_RealClockCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runDemo(ctx, &out, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, out.String(), "t=0s")
}

// =============================================================================
// config check
// =============================================================================

func TestConfigCheck(t *testing.T) {
	path := writeConfig(t, `
cache:
  default_ttl: 4s
  seed:
    - {key: a, value: x}
sweeper:
  schedule: "@every 30s"
`)
	code, out, _ := runCLI(t, "config", "check", "--config", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "cache.default_ttl  4s")
	assert.Contains(t, out, "cache.seed         1 entries")
	assert.Contains(t, out, "sweeper.schedule   @every 30s")
	assert.Contains(t, out, "log.file           -")
	assert.Contains(t, out, "config OK")
}

func TestExitCodes(t *testing.T) {
	invalid := writeConfig(t, "cache:\n  default_ttl: -1s\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"invalid config", []string{"config", "check", "-c", invalid}, 2},
		{"missing config flag", []string{"config", "check"}, 2},
		{"missing file", []string{"serve", "-c", filepath.Join(t.TempDir(), "none.yaml")}, 2},
		{"unknown flag", []string{"demo", "--bogus"}, 2},
		{"version", []string{"--version"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestIsCLIUsageError(t *testing.T) {
	assert.True(t, isCLIUsageError(errors.New("flag provided but not defined: -bogus")))
	assert.True(t, isCLIUsageError(errors.New(`Required flag "config" not set`)))
	assert.False(t, isCLIUsageError(assert.AnError))
}

func TestUsageError_Unwrap(t *testing.T) {
	err := &usageError{err: assert.AnError}
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, assert.AnError.Error(), err.Error())
}

// =============================================================================
// serve
// =============================================================================

func TestServe_SweepsAndReloads(t *testing.T) {
	path := writeConfig(t, `
cache:
  default_ttl: 1s
  seed:
    - {key: short, value: x}
    - {key: long, value: y, ttl: 1h}
sweeper:
  enabled: true
  schedule: "@every 1s"
log:
  level: info
`)
	stderr := &lockedBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, path, stderr) }()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(stderr.String()), []byte("expired entries swept"))
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(stderr.String()), []byte("level_to=DEBUG"))
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}

	out := stderr.String()
	assert.Contains(t, out, "xttl serving")
	assert.Contains(t, out, "component=xttlctl")
	assert.Contains(t, out, "sweeper stopped")
	assert.Contains(t, out, "telemetry summary")
	assert.Contains(t, out, "xttl.sweep.ok.items=1")
	assert.Contains(t, out, "xconf.reload.ok=")
}
