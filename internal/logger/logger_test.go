package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
		ok   bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"verbose", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFieldsReachCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Named(FromZap(zap.New(core)), "engine").With(String("user", "sam"))

	log.Warn("write failed", Int("revision", 3), Error(errors.New("boom")))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.LoggerName != "engine" {
		t.Errorf("logger name = %q, want engine", e.LoggerName)
	}
	fields := e.ContextMap()
	if fields["user"] != "sam" || fields["revision"] != int64(3) || fields["error"] != "boom" {
		t.Errorf("fields = %v", fields)
	}
}

func TestNopDiscards(t *testing.T) {
	log := Nop()
	log.Info("ignored")
	log.Errorf("ignored %d", 1)
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
