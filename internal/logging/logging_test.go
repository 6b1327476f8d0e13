package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		debugLogs bool
		warnLogs  bool
	}{
		{"production", false, false, false},
		{"debug", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(&bytes.Buffer{}, tt.debug)

			core := logger.Desugar().Core()
			if got := core.Enabled(zap.DebugLevel); got != tt.debugLogs {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugLogs)
			}
			if got := core.Enabled(zap.WarnLevel); got != tt.warnLogs {
				t.Errorf("warn enabled = %v, want %v", got, tt.warnLogs)
			}
			if !core.Enabled(zap.ErrorLevel) {
				t.Error("expected errors to be enabled")
			}
		})
	}
}

func TestNew_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)

	logger.Warnw("archive rejected", "path", "x.zip")
	if buf.Len() != 0 {
		t.Errorf("expected warnings to be suppressed, got %q", buf.String())
	}

	logger.Errorw("failed to remove extraction directory", "path", "/tmp/x")
	if !strings.Contains(buf.String(), "failed to remove extraction directory") {
		t.Errorf("expected error to reach the writer, got %q", buf.String())
	}
}
