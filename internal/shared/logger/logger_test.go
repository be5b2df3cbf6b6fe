package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConditionalSourceHandler(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		levels     []slog.Level
		wantSource bool
	}{
		{"info is quiet by default", slog.LevelInfo, []slog.Level{slog.LevelWarn, slog.LevelError}, false},
		{"warn carries source", slog.LevelWarn, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"error carries source", slog.LevelError, []slog.Level{slog.LevelWarn, slog.LevelError}, true},
		{"debug mode shows info source", slog.LevelInfo, []slog.Level{slog.LevelDebug, slog.LevelInfo}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			log := slog.New(NewConditionalSourceHandler(base, tt.levels...))

			log.Log(context.Background(), tt.level, "webhook processed", "event", "subscription_updated")

			out := buf.String()
			assert.Contains(t, out, "webhook processed")
			assert.Equal(t, tt.wantSource, bytes.Contains([]byte(out), []byte("source=")), out)
		})
	}
}

func TestConditionalSourceHandler_WithAttrsKeepsLevels(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, nil)
	log := slog.New(NewConditionalSourceHandler(base, slog.LevelError)).With("component", "billing")

	log.Error("provider call failed")

	assert.Contains(t, buf.String(), "component=billing")
	assert.Contains(t, buf.String(), "source=")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNopLogger_Discards(t *testing.T) {
	log := NewNopLogger().Named("test").With("k", "v")
	assert.NotPanics(t, func() {
		log.Infow("hello", "a", 1)
		log.Errorw("boom")
	})
}

func TestSlogLogger_NamedNests(t *testing.T) {
	var buf bytes.Buffer
	root := newSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), "")

	root.Named("billing").With("delivery_id", "whd_1").Named("webhook").Infow("webhook processed")

	out := buf.String()
	assert.Contains(t, out, "logger=billing.webhook")
	assert.Contains(t, out, "delivery_id=whd_1")
	assert.Equal(t, 1, strings.Count(out, "logger="), out)
}

func TestSlogLogger_NamedEmptyKeepsName(t *testing.T) {
	var buf bytes.Buffer
	root := newSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), "")

	root.Named("rpc").Named("").Warnw("slow call")

	assert.Contains(t, buf.String(), "logger=rpc")
	assert.NotContains(t, buf.String(), "logger=rpc.")
}
