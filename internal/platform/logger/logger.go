// Package logger provides the console's leveled diagnostic recorder.
//
// Emission rules: ERROR and WARN always print; INFO prints in development or
// when the verbose flag is on; DEBUG prints only when the verbose flag is on.
// The verbose flag persists across runs in the state directory, so a freshly
// constructed Logger picks it up again. In non-development runs every ERROR
// record is additionally forwarded to an optional external Sink.
package logger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Context carries arbitrary structured fields attached to a record.
type Context map[string]any

// Record is the normalized form handed to an external sink.
type Record struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
	Context Context   `json:"context,omitempty"`
}

// Sink receives ERROR records in non-development runs. Implementations must
// tolerate being called from any goroutine. No sink is wired by default.
type Sink interface {
	Emit(ctx context.Context, rec Record) error
}

// Options configures a Logger.
type Options struct {
	// Development relaxes the INFO gate and disables sink forwarding.
	Development bool
	// StateDir is where the verbose flag persists. Empty disables persistence.
	StateDir string
	// Out defaults to os.Stderr.
	Out io.Writer
	// Sink receives ERROR records outside development. May be nil.
	Sink Sink
}

// Logger is a leveled, context-aware recorder built over log/slog levels.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	dev      bool
	sink     Sink
	verbose  atomic.Bool
	settings *settingsFile
}

// New constructs a Logger, restoring the persisted verbose flag if StateDir
// is set.
func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{
		out:  out,
		dev:  opts.Development,
		sink: opts.Sink,
	}
	if opts.StateDir != "" {
		l.settings = newSettingsFile(opts.StateDir)
		l.verbose.Store(l.settings.verboseEnabled())
	}
	return l
}

// SetVerbose flips verbose mode at runtime and persists the choice.
func (l *Logger) SetVerbose(enabled bool) {
	l.verbose.Store(enabled)
	if l.settings != nil {
		l.settings.setVerbose(enabled)
	}
}

// Verbose reports whether verbose mode is on.
func (l *Logger) Verbose() bool {
	return l.verbose.Load()
}

func (l *Logger) Debug(msg string, ctx Context) { l.log(slog.LevelDebug, msg, ctx) }
func (l *Logger) Info(msg string, ctx Context)  { l.log(slog.LevelInfo, msg, ctx) }
func (l *Logger) Warn(msg string, ctx Context)  { l.log(slog.LevelWarn, msg, ctx) }
func (l *Logger) Error(msg string, ctx Context) { l.log(slog.LevelError, msg, ctx) }

func (l *Logger) enabled(level slog.Level) bool {
	switch {
	case level >= slog.LevelWarn:
		return true
	case level == slog.LevelInfo:
		return l.dev || l.verbose.Load()
	default:
		return l.verbose.Load()
	}
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func (l *Logger) log(level slog.Level, msg string, fields Context) {
	if l.enabled(level) {
		l.emit(level, msg, fields)
	}

	// Production errors always reach the sink, printed or not.
	if !l.dev && level >= slog.LevelError && l.sink != nil {
		rec := Record{
			Level:   levelName(level),
			Message: msg,
			Time:    time.Now().UTC(),
			Context: fields,
		}
		_ = l.sink.Emit(context.Background(), rec) //nolint:errcheck // sink failures must not recurse into logging
	}
}

func (l *Logger) emit(level slog.Level, msg string, fields Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name := levelName(level)
	if l.verbose.Load() {
		line := fmt.Sprintf("[%s] [%s] %s", time.Now().UTC().Format(time.RFC3339), name, msg)
		if len(fields) > 0 {
			if data, err := json.Marshal(fields); err == nil {
				line += " | context: " + string(data)
			}
		}
		fmt.Fprintln(l.out, line)
		return
	}

	fmt.Fprintf(l.out, "[%s] %s\n", name, msg)
	if level >= slog.LevelError && len(fields) > 0 {
		// Terse mode still surfaces the minimal triage subset for errors.
		subset := Context{}
		for _, key := range []string{"issue", "statusCode", "errorMessage"} {
			if v, ok := fields[key]; ok {
				subset[key] = v
			}
		}
		if len(subset) > 0 {
			if data, err := json.Marshal(subset); err == nil {
				fmt.Fprintln(l.out, string(data))
			}
		}
	}
}
