package testdoubles

import (
	"sync"

	"github.com/AntonStoeckl/library-circulation-go/core"
)

// LoggerSpy is a Logger implementation that captures logging calls for testing.
type LoggerSpy struct {
	records []SpyLogRecord
	mu      sync.Mutex
}

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements the Logger interface for testing.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record("debug", msg, args)
}

// Info implements the Logger interface for testing.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record("info", msg, args)
}

// Warn implements the Logger interface for testing.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record("warn", msg, args)
}

// Error implements the Logger interface for testing.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *LoggerSpy) record(level string, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all log records with the given level.
func (s *LoggerSpy) Records(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]SpyLogRecord, 0)
	for _, record := range s.records {
		if record.Level == level {
			result = append(result, record)
		}
	}

	return result
}

// HasLog checks if a log with the given level and message exists.
func (s *LoggerSpy) HasLog(level string, message string) bool {
	for _, record := range s.Records(level) {
		if record.Message == message {
			return true
		}
	}

	return false
}

// Compile-time check to ensure LoggerSpy implements the Logger interface.
var _ core.Logger = (*LoggerSpy)(nil)
