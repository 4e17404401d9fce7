package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetup_LazyLoggerFollowsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	l := Logger("test/component")
	l.Debug("hello", "k", "v")

	require.NotZero(t, buf.Len())
	assert.Contains(t, buf.String(), `"component":"test/component"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(Options{Level: LevelWarn, Output: &buf})

	l := Logger("test")
	l.Info("dropped")
	assert.Zero(t, buf.Len())
	assert.False(t, l.Enabled(LevelInfo))

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}
