package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tinywins/internal/logger"
)

var (
	// ErrInvalidFormat is returned when a date string is not a valid YYYY-MM-DD calendar date
	ErrInvalidFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	// ErrStorageRead is returned when the persisted state cannot be read or decoded
	ErrStorageRead = errors.New("failed to read stored state")
	// ErrStorageWrite is returned when the persisted state cannot be written
	ErrStorageWrite = errors.New("failed to write stored state")
	// ErrNotFound is returned when no entry exists for a date
	ErrNotFound = errors.New("entry not found")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
