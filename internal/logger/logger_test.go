package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	err := Init(Config{Dir: logDir})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestWarningsReachLogFile(t *testing.T) {
	logDir := t.TempDir()

	if err := Init(Config{Dir: logDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Info("should be filtered")
	Warn("autosave failed", "key", "routineData_v1")

	data, err := os.ReadFile(filepath.Join(logDir, "tinywins.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "autosave failed") {
		t.Errorf("log file missing warning, got %q", content)
	}
	if strings.Contains(content, "should be filtered") {
		t.Errorf("info message written at warn level: %q", content)
	}
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{Debug: true, Quiet: true, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
