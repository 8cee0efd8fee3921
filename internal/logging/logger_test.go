package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel, format string) (*S2LLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(&LoggerConfig{Level: level, Format: format, Output: buf}), buf
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, "text")
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, nil, "warn message")
	logger.Error(ctx, errors.New("boom"), "error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
	assert.Contains(t, out, "error=boom")
}

func TestLoggerDebugEnabled(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, "text")

	logger.Debug(context.Background(), "visible", "file", "a.svg")

	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "file=a.svg")
}

func TestLoggerJSONFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "json")

	logger.WithComponent("convert").
		With("batch", 7).
		Info(context.Background(), "converted", "file", "a.svg", 42, "dropped", "dangling")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "converted", entry["msg"])
	assert.Equal(t, "convert", entry["component"])
	assert.Equal(t, float64(7), entry["batch"])
	assert.Equal(t, "a.svg", entry["file"])
	assert.NotContains(t, entry, "dangling")
}

func TestLoggerWithDoesNotLeak(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "text")

	child := logger.With("scope", "child")
	logger.Info(context.Background(), "parent")
	child.Info(context.Background(), "child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "scope=child")
	assert.Contains(t, lines[1], "scope=child")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()

	assert.NotPanics(t, func() {
		logger.Debug(context.Background(), "x")
		logger.Info(context.Background(), "x")
		logger.Warn(context.Background(), nil, "x")
		logger.Error(context.Background(), errors.New("x"), "x")
		logger.With("a", 1).WithComponent("c").Info(context.Background(), "x")
	})
}

func TestPerfLogger(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, "text")

	perf := StartOperation(logger, "convert_batch")
	time.Sleep(time.Millisecond)
	d := perf.End(context.Background(), "files", 3)

	assert.GreaterOrEqual(t, d, time.Millisecond)
	out := buf.String()
	assert.Contains(t, out, "operation=convert_batch")
	assert.Contains(t, out, "files=3")
	assert.Contains(t, out, "duration_ms=")

	buf.Reset()
	perf.EndWithError(context.Background(), errors.New("cancelled"))
	assert.Contains(t, buf.String(), "Operation failed")
	assert.Contains(t, buf.String(), "error=cancelled")
}
