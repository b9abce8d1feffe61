package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved(t *testing.T) (*Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestLogger_KeyValuePairs(t *testing.T) {
	logger, logs := newObserved(t)

	logger.Info("report written", "path", "reports/qb_stats.csv", "rows", 12)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "reports/qb_stats.csv" {
		t.Fatalf("unexpected path field: %v", fields["path"])
	}
	if fields["rows"] != int64(12) {
		t.Fatalf("unexpected rows field: %v", fields["rows"])
	}
}

func TestLogger_ErrorValuesBecomeNamedFields(t *testing.T) {
	logger, logs := newObserved(t)

	logger.Warn("fetch failed", "error", errors.New("status 502"))

	fields := logs.All()[0].ContextMap()
	if fields["error"] != "status 502" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
}

func TestLogger_DanglingKeyStillLogs(t *testing.T) {
	logger, logs := newObserved(t)

	logger.Debug("partial pair", "season")

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["season"]; !ok {
		t.Fatal("expected dangling key to be recorded")
	}
}

func TestLogger_ContextWithoutSpanAddsNoTraceFields(t *testing.T) {
	logger, logs := newObserved(t)

	logger.InfoContext(context.Background(), "no span")

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["trace_id"]; ok {
		t.Fatal("trace_id should be absent without an active span")
	}
}

func TestLogger_NilReceiverUsesDefault(t *testing.T) {
	var logger *Logger
	logger.Info("should not panic")

	if err := logger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
}

func TestLogger_SyncIsIdempotent(t *testing.T) {
	logger, _ := newObserved(t)
	if err := logger.Sync(); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("second sync: %v", err)
	}
}
