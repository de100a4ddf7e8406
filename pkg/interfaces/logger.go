// Package interfaces holds the contracts host applications implement to plug
// their own infrastructure into the lead form runtime.
package interfaces

import "context"

// Logger is the leveled logging contract used across the module. It matches
// github.com/goliatone/go-logger so that package plugs in without changes.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry persistent
// structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
