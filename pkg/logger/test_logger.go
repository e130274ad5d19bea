package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// TestLogger is a logger implementation for testing that captures all log messages
type TestLogger struct {
	mu       sync.Mutex
	messages []LogMessage
	zerolog  *zerolog.Logger
	fields   map[string]interface{}
	root     *TestLogger
}

// LogMessage represents a captured log message
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// NewTestLogger creates a new test logger
func NewTestLogger() *TestLogger {
	nopLogger := zerolog.Nop()
	return &TestLogger{
		messages: make([]LogMessage, 0),
		zerolog:  &nopLogger,
		fields:   make(map[string]interface{}),
	}
}

var _ Logger = (*TestLogger)(nil)

func (l *TestLogger) sink() *TestLogger {
	if l.root != nil {
		return l.root
	}
	return l
}

func (l *TestLogger) log(level, msg string, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	sink := l.sink()
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.messages = append(sink.messages, LogMessage{Level: level, Message: msg, Fields: merged})
}

func (l *TestLogger) Debug(msg string) { l.log("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.log("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.log("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.log("ERROR", msg, nil) }
func (l *TestLogger) Fatal(msg string) { l.log("FATAL", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.log("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.log("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.log("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.log("ERROR", msg, fields)
}

// WithField returns a logger that attaches the field to every message
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a logger that attaches the fields to every message.
// Captured messages still land in the root TestLogger.
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	child := &TestLogger{
		zerolog: l.zerolog,
		fields:  make(map[string]interface{}, len(l.fields)+len(fields)),
		root:    l.sink(),
	}
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

// WithError attaches the error as a field
func (l *TestLogger) WithError(err error) Logger {
	if err == nil {
		return l
	}
	return l.WithField("error", err.Error())
}

// GetZerolog returns a no-op zerolog instance
func (l *TestLogger) GetZerolog() *zerolog.Logger {
	return l.zerolog
}

// Messages returns a copy of all captured log messages
func (l *TestLogger) Messages() []LogMessage {
	sink := l.sink()
	sink.mu.Lock()
	defer sink.mu.Unlock()

	out := make([]LogMessage, len(sink.messages))
	copy(out, sink.messages)
	return out
}

// HasMessage reports whether a message with the given level and text was logged
func (l *TestLogger) HasMessage(level, msg string) bool {
	for _, m := range l.Messages() {
		if m.Level == level && m.Message == msg {
			return true
		}
	}
	return false
}

// Reset clears all captured messages
func (l *TestLogger) Reset() {
	sink := l.sink()
	sink.mu.Lock()
	defer sink.mu.Unlock()
	sink.messages = sink.messages[:0]
}
