package hotkeys

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/allocator"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/core/logger"
	"github.com/f9-o/hotkeys/internal/overrides"
	"github.com/f9-o/hotkeys/pkg/errs"
)

// Auditor records shortcut changes. *logger.Logger satisfies it.
type Auditor interface {
	Audit(entry logger.AuditEntry)
}

// Options carries dependencies into a Manager.
type Options struct {
	Store *overrides.Store
	IsMac bool
	Log   *slog.Logger
	Audit Auditor
}

// Manager is the single owner of shortcut state. The resolved table is
// rebuilt as a fresh map on every change and swapped under the lock, so
// readers never observe a half-applied update.
type Manager struct {
	mu sync.RWMutex

	store *overrides.Store
	isMac bool
	log   *slog.Logger
	audit Auditor

	commands  []v1.Command
	byID      map[string]v1.Command
	defaults  v1.BindingTable
	overrides map[string]v1.Binding
	resolved  v1.BindingTable
}

// NewManager creates an empty Manager. Call Start, then SetCommands.
func NewManager(opts Options) *Manager {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		store:     opts.Store,
		isMac:     opts.IsMac,
		log:       log,
		audit:     opts.Audit,
		byID:      map[string]v1.Command{},
		defaults:  v1.BindingTable{},
		overrides: map[string]v1.Binding{},
		resolved:  v1.BindingTable{},
	}
}

// Start loads the persisted overrides. It is meant to run once.
func (m *Manager) Start(ctx context.Context) {
	var loaded map[string]v1.Binding
	if m.store != nil {
		loaded = m.store.Read(ctx)
	}
	if loaded == nil {
		loaded = map[string]v1.Binding{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides = loaded
	m.resolveLocked()
	m.log.Debug("overrides loaded", "count", len(loaded))
}

// SetCommands replaces the command list: defaults are recomputed from
// scratch, overrides for vanished commands are pruned (and persisted only if
// something was removed), and the resolved table is rebuilt.
func (m *Manager) SetCommands(ctx context.Context, commands []v1.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = append([]v1.Command(nil), commands...)
	m.byID = make(map[string]v1.Command, len(commands))
	ids := make([]string, 0, len(commands))
	for _, c := range commands {
		if _, dup := m.byID[c.ID]; dup || c.ID == "" {
			continue
		}
		m.byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	m.allocateLocked()

	pruned := overrides.Prune(m.overrides, ids)
	if len(pruned) != len(m.overrides) {
		removed := len(m.overrides) - len(pruned)
		m.overrides = pruned
		m.persistLocked(ctx)
		m.record(logger.AuditEntry{Op: "prune", Result: "success", Detail: pluralCommands(removed)})
	}

	m.resolveLocked()
}

// SetPlatform switches between mac-like and other modifier conventions.
func (m *Manager) SetPlatform(isMac bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.isMac == isMac {
		return
	}
	m.isMac = isMac
	m.allocateLocked()
	m.resolveLocked()
}

// IsMac reports the current platform flag.
func (m *Manager) IsMac() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isMac
}

// ─────────────────────────────────────────────────────────────────────────────
// Reads
// ─────────────────────────────────────────────────────────────────────────────

// Commands returns the current command list in registry order.
func (m *Manager) Commands() []v1.Command {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]v1.Command(nil), m.commands...)
}

// Command returns the command with the given ID.
func (m *Manager) Command(id string) (v1.Command, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byID[id]
	return c, ok
}

// DisplayName returns the command's display name, or its ID if unknown.
func (m *Manager) DisplayName(id string) string {
	if c, ok := m.Command(id); ok && c.DisplayName != "" {
		return c.DisplayName
	}
	return id
}

// Resolved returns a copy of the resolved table.
func (m *Manager) Resolved() v1.BindingTable {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolved.Clone()
}

// Defaults returns a copy of the default table.
func (m *Manager) Defaults() v1.BindingTable {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaults.Clone()
}

// Overrides returns a copy of the override map.
func (m *Manager) Overrides() map[string]v1.Binding {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]v1.Binding, len(m.overrides))
	for id, b := range m.overrides {
		out[id] = b
	}
	return out
}

// Binding returns the resolved binding for id.
func (m *Manager) Binding(id string) (v1.Binding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.resolved[id]
	return b, ok
}

// IsCustom reports whether id currently has an override.
func (m *Manager) IsCustom(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.overrides[id]
	return ok
}

// Lookup returns the command bound to the keystroke in ev.
func (m *Manager) Lookup(ev *v1.KeyEvent) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for id, b := range m.resolved {
		if binding.Matches(b, ev) {
			return id, true
		}
	}
	return "", false
}

// ConflictFor returns the command other than id that currently resolves to b.
func (m *Manager) ConflictFor(id string, b v1.Binding) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.conflictLocked(id, b)
}

func (m *Manager) conflictLocked(id string, b v1.Binding) (string, bool) {
	for other, ob := range m.resolved {
		if other != id && binding.Equal(ob, b) {
			return other, true
		}
	}
	return "", false
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutations
// ─────────────────────────────────────────────────────────────────────────────

// SetBinding assigns b to command id. It fails with a validation error if b
// is not a usable global shortcut and with a conflict error naming the
// other command if b is already taken. A binding equal to the command's
// default clears the override instead of storing it.
func (m *Manager) SetBinding(ctx context.Context, id string, b v1.Binding) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return errs.Newf(errs.ErrUnknownCommand, "hotkeys.set", "no command with id %q", id).WithResource(id)
	}
	if err := binding.Validate(b); err != nil {
		return err
	}
	if other, ok := m.conflictLocked(id, b); ok {
		return ConflictError(other, m.displayNameLocked(other))
	}

	next := ApplyOverride(m.overrides, m.defaults, id, b)
	_, before := m.overrides[id]
	_, after := next[id]
	result := "success"
	if before == after && (!after || binding.Equal(m.overrides[id], next[id])) {
		// Nothing changed: same override, or still on the default.
		return nil
	}
	if !after {
		result = "elided"
	}

	m.overrides = next
	m.persistLocked(ctx)
	m.resolveLocked()
	m.record(logger.AuditEntry{Op: "set", Command: id, Binding: binding.Key(b), Result: result})
	return nil
}

// ResetOne drops the override for id. It reports whether anything changed;
// resetting a command without an override performs no write.
func (m *Manager) ResetOne(ctx context.Context, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.overrides[id]; !ok {
		return false
	}
	next := make(map[string]v1.Binding, len(m.overrides))
	for k, v := range m.overrides {
		if k != id {
			next[k] = v
		}
	}
	m.overrides = next
	m.persistLocked(ctx)
	m.resolveLocked()
	m.record(logger.AuditEntry{Op: "reset", Command: id, Result: "success"})
	return true
}

// ResetAll drops every override. It reports whether anything changed.
func (m *Manager) ResetAll(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.overrides) == 0 {
		return false
	}
	n := len(m.overrides)
	m.overrides = map[string]v1.Binding{}
	m.persistLocked(ctx)
	m.resolveLocked()
	m.record(logger.AuditEntry{Op: "reset_all", Result: "success", Detail: pluralCommands(n)})
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers (callers hold m.mu)
// ─────────────────────────────────────────────────────────────────────────────

func (m *Manager) allocateLocked() {
	table, report := allocator.AllocateWithReport(m.commands, m.isMac)
	m.defaults = table
	if len(report.ShiftFallback)+len(report.Synthetic)+len(report.Exhausted) > 0 {
		m.log.Debug("default allocation used fallbacks",
			"commands", len(m.commands),
			"shift", len(report.ShiftFallback),
			"synthetic", len(report.Synthetic),
			"exhausted", len(report.Exhausted),
		)
	}
}

func (m *Manager) resolveLocked() {
	m.resolved = Resolve(m.defaults, m.overrides)
}

// persistLocked writes the override map. Failures are logged and never
// roll back the in-memory state.
func (m *Manager) persistLocked(ctx context.Context) {
	if m.store == nil {
		return
	}
	if err := m.store.Write(ctx, m.overrides); err != nil {
		m.log.Warn("persist overrides failed", "err", err)
		m.record(logger.AuditEntry{Op: "persist", Result: "failure", Detail: err.Error()})
	}
}

func (m *Manager) displayNameLocked(id string) string {
	if c, ok := m.byID[id]; ok && c.DisplayName != "" {
		return c.DisplayName
	}
	return id
}

func (m *Manager) record(entry logger.AuditEntry) {
	if m.audit != nil {
		m.audit.Audit(entry)
	}
}

// ConflictError reports that a shortcut already belongs to another command.
func ConflictError(otherID, otherName string) error {
	return errs.Newf(errs.ErrConflict, "hotkeys.set", "shortcut already assigned to %s", otherName).
		WithResource(otherID).
		WithAdvice("pick another shortcut or change " + otherName + " first")
}

func pluralCommands(n int) string {
	if n == 1 {
		return "1 command"
	}
	return strconv.Itoa(n) + " commands"
}
