package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/morsellabs/dashci/internal/adapters/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlerRecord(level slog.Level, msg string) slog.Record {
	return slog.NewRecord(time.Now(), level, msg, 0)
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := logger.NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_LevelIcons(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelInfo, "ready\n"},
		{slog.LevelWarn, "! ready\n"},
		{slog.LevelError, "✗ ready\n"},
	}

	for _, tt := range tests {
		buf := &bytes.Buffer{}
		h := logger.NewPrettyHandler(buf, nil)

		require.NoError(t, h.Handle(context.Background(), newHandlerRecord(tt.level, "ready")))
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil)

	r := newHandlerRecord(slog.LevelInfo, "installing")
	r.AddAttrs(slog.String("manifest", "requirements.txt"))

	require.NoError(t, h.Handle(context.Background(), r))
	assert.Equal(t, "installing manifest=requirements.txt\n", buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	base := logger.NewPrettyHandler(buf, nil)

	h := base.WithGroup("env").WithAttrs([]slog.Attr{slog.String("dir", ".venv")})

	require.NoError(t, h.Handle(context.Background(), newHandlerRecord(slog.LevelInfo, "created")))
	assert.Equal(t, "created env.dir=.venv\n", buf.String())
}
