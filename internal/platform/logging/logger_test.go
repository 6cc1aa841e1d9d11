package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Level
		wantErr bool
	}{
		{raw: "debug", want: LevelDebug},
		{raw: " WARN ", want: LevelWarn},
		{raw: "warning", want: LevelWarn},
		{raw: "", want: LevelInfo},
		{raw: "error", want: LevelError},
		{raw: "loud", want: LevelInfo, wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseLevel(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%q: expected error=%v, got %v", tc.raw, tc.wantErr, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.raw, tc.want, got)
		}
	}
}

func TestLogger_KeyValueFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "fetch")

	logger.Warn("request failed", "endpoint", "/stats/", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "fetch" {
		t.Fatalf("expected component field, got %v", fields)
	}
	if fields["endpoint"] != "/stats/" {
		t.Fatalf("expected endpoint field, got %v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept, got %v", fields)
	}
}

func TestLogger_FieldPassthroughAndDurations(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.Info("stat files loaded", zap.Int("games", 3), "took", 1500*time.Millisecond)

	fields := logs.All()[0].ContextMap()
	if fields["games"] != int64(3) {
		t.Fatalf("expected games=3, got %v", fields["games"])
	}
	if fields["took"] != 1500*time.Millisecond {
		t.Fatalf("expected took=1.5s, got %v", fields["took"])
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "loaded")
	logger.DebugContext(ctx, "filtered out")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["trace_id"]; got != traceID.String() {
		t.Fatalf("expected trace id %s, got %v", traceID, got)
	}
}

func TestNewConsole_WritesToWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf)
	logger.Info("skipped file", "path", "a.json")
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "skipped file") || !strings.Contains(out, "a.json") {
		t.Fatalf("expected message and field in output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug line to be filtered, got %q", out)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	if OrDefault(nil) == nil {
		t.Fatalf("expected default logger")
	}
}
