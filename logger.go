package flstring

import (
	"log/slog"
	"os"

	"github.com/jaydenemmanuel/flstring/internal/blockpool"
)

// Logger wraps slog.Logger with flstring-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogRecyclerStats logs a snapshot of the block recycler counters.
func (l *Logger) LogRecyclerStats() {
	stats := blockpool.Snapshot()
	l.Info("block recycler stats",
		"hits", stats.Hits,
		"misses", stats.Misses,
		"pushes", stats.Pushes,
		"evictions", stats.Evictions,
		"hit_rate", stats.HitRate(),
	)
}

// LogTunerStats logs the current state of a find tuner.
func (l *Logger) LogTunerStats(t *FindTuner) {
	l.Info("find tuner stats",
		"small_cutoff", t.SmallCutoff(),
		"long_cutoff", t.LongCutoff(),
		"adaptations", t.Adaptations(),
	)
}
