package logging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromCore(core), logs
}

func TestNew_Defaults(t *testing.T) {
	l, err := New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNew_ConsoleFormat(t *testing.T) {
	l, err := New(Config{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNew_BadOutputPath(t *testing.T) {
	_, err := New(Config{OutputPaths: []string{"/nonexistent-dir-xyz/out.log"}})
	assert.Error(t, err)
}

func TestLogger_FieldsReachEntries(t *testing.T) {
	l, logs := newObservedLogger()

	l.Info("where request",
		String("vibe", "stargazing"),
		Int("month", 7),
		Float64("radius_km", 100),
		Bool("cached", false),
		Duration("elapsed", 120*time.Millisecond),
		Err(errors.New("boom")),
	)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "where request", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "stargazing", fields["vibe"])
	assert.Equal(t, int64(7), fields["month"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	l, logs := newObservedLogger()

	child := l.With(String("feature", "when"))
	child.Info("child entry")
	l.Info("parent entry")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].ContextMap(), "feature")
	assert.NotContains(t, entries[1].ContextMap(), "feature")
}

func TestLogger_Named(t *testing.T) {
	l, logs := newObservedLogger()
	l.Named("gateway").Info("hi")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "gateway", entries[0].LoggerName)
}

func TestNopLogger_NoPanics(t *testing.T) {
	l := NewNopLogger()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("x"))
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestSetLevel_ChangesEmissionAtRuntime(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "vibes.log")

	l, err := New(Config{Level: "info", OutputPaths: []string{out}})
	require.NoError(t, err)

	setter, ok := l.(LevelSetter)
	require.True(t, ok, "file-backed logger must support runtime level changes")

	l.Debug("before reload")
	setter.SetLevel("debug")
	l.Debug("after reload")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "before reload")
	assert.Contains(t, string(data), "after reload")
}

func TestSetLevel_AppliesToNamedChildren(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "vibes.log")

	l, err := New(Config{Level: "warn", OutputPaths: []string{out}})
	require.NoError(t, err)
	child := l.Named("gateway")

	l.(LevelSetter).SetLevel("debug")
	child.Debug("child entry")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "child entry")
}
