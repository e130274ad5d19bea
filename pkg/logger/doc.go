// Package logger provides structured logging for the backup tool built on
// zerolog. It exposes a Logger interface with leveled and field-based
// methods, a console writer with colored levels, and an optional per-day
// log file. A TestLogger implementation captures messages for assertions
// in tests.
package logger
