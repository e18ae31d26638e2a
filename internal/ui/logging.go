package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes leveled lines to Out (stderr by default) so that command
// output on stdout stays machine readable.
type Logger struct {
	Debug bool
	Out   io.Writer

	mu sync.Mutex
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, Out: os.Stderr}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Out: io.Discard}
}

func (l *Logger) printf(prefix, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprintf(out, prefix+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.printf("[DEBUG] ", format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf("[INFO] ", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.printf("[WARN] ", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf("[ERROR] ", format, args...)
}
