// Package debug provides debug logging functionality using log/slog.
// The planner logs at Debug level only — one line per top-level
// expansion, none per cascading-delete path — since it raises Go
// errors for real problems rather than logging them.
package debug

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

var (
	// logger is the global debug logger instance. Starts as a
	// discarding logger so Debug/Info/etc. are safe to call before
	// Init runs.
	logger atomic.Pointer[slog.Logger]
	// enabled mirrors the logger's effective level for the Enabled()
	// query, without needing to re-derive it from the handler.
	enabled atomic.Bool
	// mu serializes Init against itself; reads go through the atomics
	// above and never block on it.
	mu sync.Mutex
)

func init() {
	logger.Store(newLogger(false))
}

func newLogger(enable bool) *slog.Logger {
	level := slog.LevelDebug
	if !enable {
		level = slog.LevelError + 1 // above any real level: discards everything
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Init (re)configures the debug logger. If enable is true, debug logs
// are written to os.Stderr; if false, they are silently discarded.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	logger.Store(newLogger(enable))
	enabled.Store(enable)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled.Load()
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	logger.Load().Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	logger.Load().Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	logger.Load().Warn(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	logger.Load().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return logger.Load().With(args...)
}

// Logger returns the underlying slog.Logger instance.
func Logger() *slog.Logger {
	return logger.Load()
}

// Plan logs one line for a top-level planner expansion: the operation
// name, the path it was planned against, and the number of mutactions
// emitted — the planner's single Debug-level touchpoint per spec.md
// §5 (no other side effects to log; errors are returned, not logged).
func Plan(operation, path string, count int) {
	Debug("planner: expansion", "operation", operation, "path", path, "mutactions", count)
}
