package exporter

import (
	"fmt"
	"io"
	"sync"
)

// Logger is an interface for logging.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// NewLogger returns a Logger writing level-prefixed lines to w.
// Debug lines are dropped unless verbose is set.
func NewLogger(w io.Writer, verbose bool) Logger {
	return &defaultLogger{w: w, verbose: verbose}
}

// defaultLogger is a simple line logger.
type defaultLogger struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.verbose {
		l.print("DEBUG", msg, args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	l.print("INFO", msg, args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	l.print("WARN", msg, args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	l.print("ERROR", msg, args...)
}

func (l *defaultLogger) print(level, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "["+level+"] "+msg+"\n", args...)
}
