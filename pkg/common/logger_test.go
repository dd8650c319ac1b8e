package common

import (
	"bytes"
	"strings"
	"testing"

	_ "github.com/rishi925-eng/Vital-Trace/pkg/testing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(120, 5, 100); got != 100 {
		t.Errorf("expected clamp to 100, got %v", got)
	}
	if got := Clamp(-3, 5, 100); got != 5 {
		t.Errorf("expected clamp to 5, got %v", got)
	}
	if got := Clamp(42, 5, 100); got != 42 {
		t.Errorf("expected passthrough 42, got %v", got)
	}
}
