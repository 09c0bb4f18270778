// Package log provides a small colored prefix logger used across the
// application's components. Each component gets its own prefix and color so
// interleaved output stays readable.
package log

import (
	"errors"
	"io"
	stdlog "log"

	"github.com/beka-birhanu/labyrinth-api/config"
)

// Logger writes leveled, prefixed lines to a writer.
type Logger struct {
	prefix string
	color  string
	out    *stdlog.Logger
}

// New creates a logger with the given prefix and ANSI color writing to w.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    stdlog.New(w, "", stdlog.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", msg)
}

func (l *Logger) write(level, msg string) {
	l.out.Printf("%s[%s] [%s]%s %s", l.color, l.prefix, level, config.ColorReset, msg)
}
