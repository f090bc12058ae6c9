package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerDefaultsToNop(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() returned nil")
	}
	if Logger().Core().Enabled(zap.DebugLevel) {
		t.Error("default logger should not be enabled at any level")
	}
}

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Logger().Debug("mounted", zap.String("element", "x"))

	if got := logs.Len(); got != 1 {
		t.Fatalf("logged entries = %d, want 1", got)
	}
	if got := logs.All()[0].Message; got != "mounted" {
		t.Errorf("message = %q, want %q", got, "mounted")
	}
}

func TestNewUnknownLevel(t *testing.T) {
	l, err := New("chatty", false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Error("unknown level should fall back to info")
	}
	if !l.Core().Enabled(zap.InfoLevel) {
		t.Error("info should be enabled")
	}
}
