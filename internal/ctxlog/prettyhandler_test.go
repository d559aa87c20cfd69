// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		attrs   []any
		options []Option
		want    []string
		notWant []string
	}{
		{name: "info", level: slog.LevelInfo, want: []string{"INFO:", "info"}, notWant: []string{"{"}},
		{
			name:  "debug with attributes",
			level: slog.LevelDebug,
			attrs: []any{"location", "/etc/app/config.toml", "number", 42},
			want:  []string{"DEBUG:", `"location": "/etc/app/config.toml"`, "42"},
		},
		{name: "warn", level: slog.LevelWarn, want: []string{"WARN:"}},
		{name: "error", level: slog.LevelError, want: []string{"ERROR:"}},
		{name: "critical", level: LevelCritical, want: []string{"CRITICAL:"}, notWant: []string{"ERROR+4"}},
		{name: "empty attrs", level: slog.LevelInfo, options: []Option{WithOutputEmptyAttrs()}, want: []string{"{}"}},
		{name: "no colour by default", level: slog.LevelInfo, notWant: []string{"\033["}},
		{name: "colour", level: slog.LevelInfo, options: []Option{WithColour()}, want: []string{"\033[36mINFO:\033[0m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			handler := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelDebug},
				append([]Option{WithDestinationWriter(&buf)}, tt.options...)...)

			record := slog.NewRecord(time.Now(), tt.level, tt.name, 0)
			record.Add(tt.attrs...)

			require.NoError(t, handler.Handle(context.Background(), record))

			out := buf.String()
			assert.True(t, strings.HasSuffix(out, "\n"))
			assert.Equal(t, 1, strings.Count(out, "\n"), "one line per record")

			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}

			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestPrettyHandler_ReplaceAttr(t *testing.T) {
	var buf bytes.Buffer

	handler := NewPrettyHandler(&slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case "secret":
				return slog.String("secret", "[REDACTED]")
			}

			return a
		},
	}, WithDestinationWriter(&buf))

	record := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	record.Add("secret", "password123", "public", "data")

	require.NoError(t, handler.Handle(context.Background(), record))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO:"), "time is removed")
	assert.Contains(t, out, "[REDACTED]")
	assert.NotContains(t, out, "password123")
	assert.Contains(t, out, "public")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	base := NewPrettyHandler(nil, WithDestinationWriter(&buf), WithColour())
	h := base.WithAttrs([]slog.Attr{slog.String("app", "demo")}).WithGroup("cfg")

	ph, ok := h.(*PrettyHandler)
	require.True(t, ok)
	assert.Same(t, base.b, ph.b)
	assert.Same(t, base.m, ph.m)
	assert.True(t, ph.colour)

	slog.New(h).Info("loaded", "format", "TOML")

	out := buf.String()
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "cfg")
	assert.Contains(t, out, "TOML")
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("boom") }
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return f }
func (f failingHandler) WithGroup(string) slog.Handler           { return f }

func TestPrettyHandler_InnerHandlerError(t *testing.T) {
	handler := &PrettyHandler{h: failingHandler{}, b: &bytes.Buffer{}, m: &sync.Mutex{}, writer: &bytes.Buffer{}}

	err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.ErrorContains(t, err, "boom")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrettyHandler_WriteError(t *testing.T) {
	handler := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))

	err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestSuppressDefaults(t *testing.T) {
	next := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == "transform" {
			return slog.String("transform", "transformed")
		}

		return a
	}

	for _, f := range []func([]string, slog.Attr) slog.Attr{suppressDefaults(nil), suppressDefaults(next)} {
		assert.True(t, f(nil, slog.Time(slog.TimeKey, time.Now())).Equal(slog.Attr{}))
		assert.True(t, f(nil, slog.Any(slog.LevelKey, slog.LevelInfo)).Equal(slog.Attr{}))
		assert.True(t, f(nil, slog.String(slog.MessageKey, "m")).Equal(slog.Attr{}))
		assert.True(t, f(nil, slog.String("custom", "v")).Equal(slog.String("custom", "v")))
	}

	assert.Equal(t, "transformed", suppressDefaults(next)(nil, slog.String("transform", "x")).Value.String())
}
