// Package log provides structured logging for Stint.
// It writes leveled, categorized key=value lines to a file and publishes
// each entry on a pub/sub broker so the UI can tail the log. Logging is
// enabled via the --debug flag or the STINT_DEBUG env var.
package log

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/stint/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	for l, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(l)
		}
	}
	return LevelInfo
}

// Category groups related log messages.
type Category string

const (
	CatUndo    Category = "undo"    // Coordinator and history transitions
	CatEdit    Category = "edit"    // Producer command construction
	CatDB      Category = "db"      // Database operations and migrations
	CatConfig  Category = "config"  // Configuration loading/saving
	CatWatcher Category = "watcher" // Database file watcher events
	CatUI      Category = "ui"      // UI component updates
	CatMode    Category = "mode"    // Mode controller events
	CatCache   Category = "cache"   // Cache operations
	CatReport  Category = "report"  // Report aggregation
)

// Logger writes formatted entries to the log file and fans each entry
// out to broker subscribers.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger *Logger
	once          sync.Once
)

// Init initializes the global logger, appending to the file at path.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	var initErr error
	once.Do(func() {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G304: path is user-controlled debug log path
		if err != nil {
			initErr = err
			return
		}
		defaultLogger = &Logger{file: f, broker: pubsub.NewBroker[string]()}
	})
	if initErr != nil {
		return nil, initErr
	}
	if defaultLogger == nil {
		return nil, fmt.Errorf("logger initialization failed or already attempted")
	}
	return func() { _ = defaultLogger.file.Close() }, nil
}

// InitWithTeaLog uses tea.LogToFile for initialization, so entries from
// the standard log package land in the same file.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	defaultLogger = &Logger{file: f, broker: pubsub.NewBroker[string]()}
	return func() { _ = f.Close() }, nil
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields)
}

// ErrorErr logs an error with the error value appended as a field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	errText := "<nil>"
	if err != nil {
		errText = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", errText))
}

// write formats and emits one entry:
//
//	2026-08-23T10:45:00 [ERROR] [db] message key=value key2=value2
func write(level Level, cat Category, msg string, fields []any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.minLevel {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", time.Now().Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		// Orphan key with no value
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteString("\n")

	entry := b.String()
	_, _ = l.file.WriteString(entry)
	l.broker.Publish(entry)
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener creates a new log event listener.
// The listener is automatically cleaned up when the context is cancelled.
func NewListener(ctx context.Context) *LogListener {
	if defaultLogger == nil || defaultLogger.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, defaultLogger.broker)
}
