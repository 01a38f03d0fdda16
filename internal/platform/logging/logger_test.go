package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_ContextFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	ctx = ContextWithRequestID(ctx, "req-1")

	logger.WarnContext(ctx, "lookup failed", "token", "abc", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" {
		t.Fatalf("unexpected request_id: %v", fields["request_id"])
	}
	if fields["trace_id"] != traceID.String() || fields["span_id"] != spanID.String() {
		t.Fatalf("unexpected trace fields: %v", fields)
	}
	if fields["token"] != "abc" || fields["error"] != "boom" {
		t.Fatalf("unexpected kv fields: %v", fields)
	}
}

func TestLogger_OddArgsAndNonStringKeys(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	logger.Info("odd", 42, "value", "dangling")
	logger.Debug("filtered")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected debug to be filtered, got %d entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["arg"] != "value" {
		t.Fatalf("expected non-string key to become arg, got %v", fields)
	}
	if v, ok := fields["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with nil value, got %v", fields)
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := Default()
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(previous) })

	var logger *Logger
	logger.Info("from nil")

	if logs.Len() != 1 {
		t.Fatalf("expected default logger to receive entry, got %d", logs.Len())
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Fatalf("expected empty request id")
	}
}
