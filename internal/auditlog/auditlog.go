// Package auditlog writes the gateway's transaction and error trails.
// Each category maps to its own append-only stream; every entry is a
// single "{RFC-1123 timestamp} - {message}" line, so the files stay
// greppable by operators and safe to append from concurrent flows.
package auditlog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Category names with dedicated streams. Any other category gets its own
// stream named after it.
const (
	CategoryError       = "error"
	CategoryTransaction = "transaction"
)

// Logger appends timestamped lines to per-category log streams backed by
// rotating files. Safe for concurrent use.
type Logger struct {
	dir string

	mu      sync.Mutex
	streams map[string]io.Writer
	now     func() time.Time
}

// New creates a logger writing its streams under dir.
func New(dir string) *Logger {
	return &Logger{
		dir:     dir,
		streams: make(map[string]io.Writer),
		now:     time.Now,
	}
}

// Append writes one entry to the category's stream. Each write is a single
// atomic append; there is no read-modify-write on the files.
func (l *Logger) Append(category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	w := l.stream(category)
	fmt.Fprintf(w, "%s - %s\n", l.now().Format(time.RFC1123), message)
}

// Error appends to the error stream.
func (l *Logger) Error(message string) {
	l.Append(CategoryError, message)
}

// Transaction appends to the transaction stream.
func (l *Logger) Transaction(message string) {
	l.Append(CategoryTransaction, message)
}

func (l *Logger) stream(category string) io.Writer {
	if w, ok := l.streams[category]; ok {
		return w
	}

	var name string
	switch category {
	case CategoryError:
		name = "taler_error.log"
	case CategoryTransaction:
		name = "taler_transactions.log"
	default:
		name = "taler_" + category + ".log"
	}

	w := &lumberjack.Logger{
		Filename:   l.dir + "/" + name,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
	}
	l.streams[category] = w
	return w
}
