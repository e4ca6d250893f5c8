// Package logging provides a shared, structured logger for the listings
// application.
//
// Components log through the standard [log/slog] API; the records are
// formatted by a github.com/charmbracelet/log handler so terminal output
// matches the rest of the charm stack. All component loggers share one
// underlying handler, which can be replaced at startup with [Configure]
// once the config file and command-line flags have been read. Loggers
// created before Configure runs (package-level vars) pick up the new
// handler automatically.
//
// The initial level comes from the LISTINGS_LOG_LEVEL environment variable
// (debug, info, warn, error). If unset, the default level is INFO.
//
// Usage:
//
//	log := logging.New("store")        // tagged with component="store"
//	log.Info("loaded listings", "count", n)
//	log.Error("failed to save", "error", err)
//
// Output defaults to stderr so it does not interfere with the terminal UI
// rendered on stdout; a log file keeps the UI clean entirely.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable that sets the initial level.
const EnvLevel = "LISTINGS_LOG_LEVEL"

// current holds the charm logger every component handler delegates to.
var current atomic.Pointer[log.Logger]

func init() {
	current.Store(newLogger(os.Stderr, parseLevel(os.Getenv(EnvLevel))))
}

// newLogger creates a charm logger with short timestamps, writing to w and
// filtering at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// New returns a structured logger scoped to the given component name.
//
// The component name is added as a "component" attribute to every record.
// If component is empty, the logger carries no extra attributes.
func New(component string) *slog.Logger {
	h := &handler{}
	if component != "" {
		h = h.with(func(sh slog.Handler) slog.Handler {
			return sh.WithAttrs([]slog.Attr{slog.String("component", component)})
		})
	}
	return slog.New(h)
}

// Options configure the shared handler.
type Options struct {
	// Level is a level name; empty keeps LISTINGS_LOG_LEVEL or INFO.
	Level string
	// File, when set, receives log output instead of Output. Parent
	// directories are created as needed.
	File string
	// Output defaults to stderr.
	Output io.Writer
}

// Configure replaces the shared handler. The returned function closes the
// log file, if one was opened; it is always safe to call.
func Configure(opts Options) (func() error, error) {
	levelName := opts.Level
	if strings.TrimSpace(levelName) == "" {
		levelName = os.Getenv(EnvLevel)
	}
	level := parseLevel(levelName)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return closeFn, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return closeFn, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	current.Store(newLogger(out, level))
	return closeFn, nil
}

// parseLevel converts a human-readable level name to a charm log level.
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → log.DebugLevel
//   - "warn", "warning" → log.WarnLevel
//   - "error"           → log.ErrorLevel
//   - anything else     → log.InfoLevel (the default)
func parseLevel(value string) log.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "warning" {
		value = "warn"
	}
	level, err := log.ParseLevel(value)
	if err != nil || level == log.FatalLevel {
		return log.InfoLevel
	}
	return level
}

// handler forwards records to whatever charm logger is current, replaying
// the attributes and groups it was derived with.
type handler struct {
	ops []func(slog.Handler) slog.Handler
}

func (h *handler) with(op func(slog.Handler) slog.Handler) *handler {
	ops := make([]func(slog.Handler) slog.Handler, 0, len(h.ops)+1)
	ops = append(ops, h.ops...)
	return &handler{ops: append(ops, op)}
}

func (h *handler) resolve() slog.Handler {
	var sh slog.Handler = current.Load()
	for _, op := range h.ops {
		sh = op(sh)
	}
	return sh
}

func (h *handler) Enabled(ctx context.Context, level slog.Level) bool {
	return current.Load().Enabled(ctx, level)
}

func (h *handler) Handle(ctx context.Context, record slog.Record) error {
	return h.resolve().Handle(ctx, record)
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(func(sh slog.Handler) slog.Handler { return sh.WithAttrs(attrs) })
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(func(sh slog.Handler) slog.Handler { return sh.WithGroup(name) })
}
