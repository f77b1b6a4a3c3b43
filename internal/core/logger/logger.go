// Package logger provides the structured logging engine for hotkeys.
// Uses log/slog with a stderr or file sink and an append-only audit log of
// shortcut changes.
package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Logger
// ─────────────────────────────────────────────────────────────────────────────

// Logger wraps slog.Logger with hotkeys-specific utilities.
type Logger struct {
	*slog.Logger

	mu     sync.Mutex
	auditW io.Writer // append-only audit log writer (nil = disabled)
	closer []io.Closer
}

// Options controls where and how much the logger writes.
type Options struct {
	Level  string // debug | info | warn | error
	Format string // text | json
	// File, when set, receives log output instead of stderr. The TUI sets
	// this so log lines do not corrupt the alternate screen.
	File string
	// Home is the state directory; audit.log is written there when non-empty.
	Home  string
	Debug bool
}

// Init builds a Logger and installs it as the slog default.
func Init(opts Options) (*Logger, error) {
	var lvl slog.Level
	switch opts.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if opts.Debug {
		lvl = slog.LevelDebug
	}

	l := &Logger{}

	var out io.Writer = os.Stderr
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0750); err == nil {
			f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
			if err == nil {
				out = f
				l.closer = append(l.closer, f)
			}
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl, AddSource: opts.Debug}
	var handler slog.Handler
	if opts.Format == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	l.Logger = slog.New(handler)
	slog.SetDefault(l.Logger)

	if opts.Home != "" {
		auditPath := filepath.Join(opts.Home, "audit.log")
		if af, err := os.OpenFile(auditPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640); err == nil {
			l.auditW = af
			l.closer = append(l.closer, af)
		}
	}

	return l, nil
}

// New wraps an existing slog.Logger, with audit entries going to auditW (may be nil).
func New(base *slog.Logger, auditW io.Writer) *Logger {
	return &Logger{Logger: base, auditW: auditW}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// Close flushes and closes any files the logger opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var first error
	for _, c := range l.closer {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closer = nil
	l.auditW = nil
	return first
}

// ─────────────────────────────────────────────────────────────────────────────
// Audit logging
// ─────────────────────────────────────────────────────────────────────────────

// AuditEntry represents a single change to the user's shortcuts.
type AuditEntry struct {
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"` // set | reset | reset_all | prune
	Command   string    `json:"command,omitempty"`
	Binding   string    `json:"binding,omitempty"`
	Result    string    `json:"result"` // success | failure | elided
	Detail    string    `json:"detail,omitempty"`
}

// Audit writes an append-only audit log entry.
func (l *Logger) Audit(entry AuditEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	l.Debug("audit",
		"op", entry.Op,
		"command", entry.Command,
		"binding", entry.Binding,
		"result", entry.Result,
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.auditW == nil {
		return
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = l.auditW.Write(append(line, '\n'))
}
