package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"trace", LevelTrace},
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupLoggerSplitsStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger("trace", "", &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Log(t.Context(), LevelTrace, "frame")
	logger.Info("index built", "letters", 20)
	logger.Error("build failed", "error", "boom")

	assert.Contains(t, stdout.String(), "level=TRACE msg=frame")
	assert.Contains(t, stdout.String(), "msg=\"index built\" letters=20")
	assert.NotContains(t, stdout.String(), "build failed")
	assert.Contains(t, stderr.String(), "msg=\"build failed\" error=boom")
	assert.NotContains(t, stderr.String(), "index built")
}

func TestSetupLoggerFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "kbdviz.log")
	logger, closers, err := setupLogger("warn", path, &stdout, &stderr)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Info("hidden")
	logger.Warn("layout changed", "path", "us.xkb")
	require.NoError(t, closers[0].Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layout changed")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, stderr.String(), "layout changed")
	assert.Empty(t, stdout.String())
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	raw := NewRaw(&buf)
	raw.Log(true, []byte("variants e\x00"))
	raw.Log(false, []byte("{}\n"))
	raw.Log(false, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `C->S frame: 11 bytes, "variants e\x00"`)
	assert.Contains(t, lines[1], `S->C frame: 3 bytes, "{}\n"`)

	NewRaw(nil).Log(true, []byte("ignored"))
}
