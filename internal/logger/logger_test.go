package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		verbose   bool
		wantInfo  bool
		wantDebug bool
	}{
		{"default only warns", false, false, false, false},
		{"verbose enables info", false, true, true, false},
		{"debug enables everything", true, false, true, true},
		{"debug wins over verbose", true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.debug, tt.verbose)

			assert.Equal(t, tt.wantInfo, l.Enabled(context.Background(), slog.LevelInfo))
			assert.Equal(t, tt.wantDebug, l.Enabled(context.Background(), slog.LevelDebug))
			assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	t.Run("writes level, message and attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		l.Info("commits fetched", "repo", "owner/repo", "count", 2)

		out := buf.String()
		assert.Contains(t, out, "[INFO]")
		assert.Contains(t, out, "commits fetched")
		assert.Contains(t, out, "repo=owner/repo")
		assert.Contains(t, out, "count=2")
	})

	t.Run("prefixes grouped attributes", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		l.WithGroup("llm").Info("completion received", "model", "m1")

		assert.Contains(t, buf.String(), "llm.model=m1")
	})

	t.Run("keeps attributes added with With", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		l.With("file", "target.py").Warn("no diff")

		out := buf.String()
		assert.Contains(t, out, "[WARN]")
		assert.Contains(t, out, "file=target.py")
	})

	t.Run("drops records below the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := slog.New(NewPrettyHandler(&buf, nil))

		l.Info("hidden")

		assert.Empty(t, buf.String())
	})
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, false, true)

	ctx := WithLogger(context.Background(), base)
	ctx = With(ctx, "repo", "owner/repo")

	Info(ctx, "pipeline started")
	Error(ctx, "pipeline failed", assert.AnError)

	out := buf.String()
	assert.Contains(t, out, "pipeline started")
	assert.Contains(t, out, "repo=owner/repo")
	assert.Contains(t, out, "error="+assert.AnError.Error())
}

func TestFromContext_DefaultsToSlogDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
