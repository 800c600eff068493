package logger

import (
	"bytes"
	"log/slog"
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
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("debug"))
	assert.NoError(t, Validate(""))
	assert.Error(t, Validate("verbose"))
}

func TestInit_WritesFieldsAsAttributes(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "debug", Format: "text", Output: &buf}))

	Debug("dbg", nil)
	Info("user registered", map[string]any{"user_id": "u1", "email": "a@x.com"})
	Warn("slow", map[string]any{"ms": 120})

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG",
		"msg=dbg",
		"msg=\"user registered\"",
		"user_id=u1",
		"email=a@x.com",
		"level=WARN",
		"ms=120",
	} {
		assert.Contains(t, out, want)
	}

	// keys are emitted in sorted order
	line := strings.Split(out, "\n")[1]
	assert.Less(t, strings.Index(line, "email="), strings.Index(line, "user_id="))
}

func TestInit_RejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init(Options{Level: "loud"}))
}

func TestInit_JSONIsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Output: &buf}))

	Error("boom", map[string]any{"error": "x"})
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"error":"x"`)
}
