// Package logging adapts github.com/baditaflorin/l to the small key/value
// logger used across the extractors and CLIs.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/baditaflorin/l"
)

// Logger is a leveled key/value logger
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name (debug, info, warn, error) into a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// Config configures a Logger
type Config struct {
	Output io.Writer // defaults to os.Stderr; stdout is reserved for JSON output
	Level  Level
	JSON   bool
}

// StdLogger adapts l.Logger to the Logger interface and drops
// records below its level
type StdLogger struct {
	logger l.Logger
	level  Level
	fields []interface{}
}

// New creates a logger writing through baditaflorin/l.
// Writes are synchronous so records are flushed before a CLI exits.
func New(cfg Config) (*StdLogger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      writerOnly{out},
		JsonFormat:  cfg.JSON,
		AsyncWrite:  false,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  1,
		AddSource:   false,
		Metrics:     false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &StdLogger{logger: logger, level: cfg.Level}, nil
}

// With returns a logger that adds keysAndValues to every record.
// The returned logger shares the underlying writer; closing either closes both.
func (s *StdLogger) With(keysAndValues ...interface{}) *StdLogger {
	fields := make([]interface{}, 0, len(s.fields)+len(keysAndValues))
	fields = append(fields, s.fields...)
	fields = append(fields, keysAndValues...)
	return &StdLogger{logger: s.logger, level: s.level, fields: fields}
}

func (s *StdLogger) merge(keysAndValues []interface{}) []interface{} {
	if len(s.fields) == 0 {
		return keysAndValues
	}
	merged := make([]interface{}, 0, len(s.fields)+len(keysAndValues))
	merged = append(merged, s.fields...)
	return append(merged, keysAndValues...)
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	if s.level <= LevelDebug {
		s.logger.Debug(msg, s.merge(keysAndValues)...)
	}
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	if s.level <= LevelInfo {
		s.logger.Info(msg, s.merge(keysAndValues)...)
	}
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	if s.level <= LevelWarn {
		s.logger.Warn(msg, s.merge(keysAndValues)...)
	}
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, s.merge(keysAndValues)...)
}

// Close closes the logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

// writerOnly hides Close so closing the logger never closes stderr
type writerOnly struct {
	io.Writer
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Close() error                 { return nil }

// Nop returns a logger that discards everything
func Nop() Logger {
	return nopLogger{}
}

// Recorder keeps log records in memory; tests use it to assert on logging
type Recorder struct {
	mu      sync.Mutex
	Records []Record
}

// Record is one captured log call
type Record struct {
	Level   Level
	Message string
	Fields  []interface{}
}

func (r *Recorder) add(level Level, msg string, kv []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, Record{Level: level, Message: msg, Fields: kv})
}

// Debug records a debug message
func (r *Recorder) Debug(msg string, kv ...interface{}) { r.add(LevelDebug, msg, kv) }

// Info records an info message
func (r *Recorder) Info(msg string, kv ...interface{}) { r.add(LevelInfo, msg, kv) }

// Warn records a warning message
func (r *Recorder) Warn(msg string, kv ...interface{}) { r.add(LevelWarn, msg, kv) }

// Error records an error message
func (r *Recorder) Error(msg string, kv ...interface{}) { r.add(LevelError, msg, kv) }

// Close is a no-op
func (r *Recorder) Close() error { return nil }

// Messages returns the recorded messages at or above level
func (r *Recorder) Messages(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var msgs []string
	for _, rec := range r.Records {
		if rec.Level >= level {
			msgs = append(msgs, rec.Message)
		}
	}
	return msgs
}
