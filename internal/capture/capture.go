// Package capture records a new shortcut for one command from live key input.
//
// A Session is Idle until Start is called. While Capturing it pauses global
// dispatch, and each keydown is either rejected (the session stays
// Capturing and the error says why), cancelled with Escape, or committed
// through the Manager, which returns the session to Idle.
package capture

import (
	"context"
	"log/slog"
	"sync"

	v1 "github.com/f9-o/hotkeys/api/v1"
	"github.com/f9-o/hotkeys/internal/binding"
	"github.com/f9-o/hotkeys/internal/hotkeys"
	"github.com/f9-o/hotkeys/pkg/errs"
)

// Outcome tells the host what a keydown did to the session.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeCancelled
	OutcomeRejected
	OutcomeCommitted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeRejected:
		return "rejected"
	case OutcomeCommitted:
		return "committed"
	default:
		return "ignored"
	}
}

// Pauser suspends and resumes global shortcut dispatch.
type Pauser interface {
	Pause()
	Resume()
}

// Session is the Idle/Capturing state machine.
type Session struct {
	mu     sync.Mutex
	mgr    *hotkeys.Manager
	pauser Pauser
	log    *slog.Logger

	target string // command being edited; empty when Idle
}

// NewSession returns an Idle session. pauser may be nil.
func NewSession(mgr *hotkeys.Manager, pauser Pauser, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{mgr: mgr, pauser: pauser, log: log}
}

// Capturing reports whether a capture is in progress.
func (s *Session) Capturing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target != ""
}

// Target returns the command being edited, or "" when Idle.
func (s *Session) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

// Start begins capturing for id. Starting while already capturing switches
// to the new command without resuming dispatch in between.
func (s *Session) Start(id string) error {
	if _, ok := s.mgr.Command(id); !ok {
		return errs.Newf(errs.ErrUnknownCommand, "capture.start", "no command with id %q", id).WithResource(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	wasIdle := s.target == ""
	s.target = id
	if wasIdle && s.pauser != nil {
		s.pauser.Pause()
	}
	s.log.Debug("capture started", "command", id)
	return nil
}

// Stop cancels the capture, if any, without touching any binding.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idleLocked()
}

// HandleKey feeds one keydown into the session.
func (s *Session) HandleKey(ctx context.Context, ev *v1.KeyEvent) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.target == "" {
		return OutcomeIgnored, errs.Newf(errs.ErrNotCapturing, "capture.key", "no capture in progress")
	}
	if ev == nil || ev.Repeat {
		return OutcomeIgnored, nil
	}
	if ev.Code == "Escape" {
		s.log.Debug("capture cancelled", "command", s.target)
		s.idleLocked()
		return OutcomeCancelled, nil
	}

	b := binding.FromEvent(ev)
	if err := binding.Validate(b); err != nil {
		return OutcomeRejected, err
	}
	if other, taken := s.mgr.ConflictFor(s.target, b); taken {
		return OutcomeRejected, hotkeys.ConflictError(other, s.mgr.DisplayName(other))
	}
	if err := s.mgr.SetBinding(ctx, s.target, b); err != nil {
		return OutcomeRejected, err
	}

	ev.PreventDefault()
	ev.StopPropagation()
	s.log.Debug("capture committed", "command", s.target, "binding", binding.Key(b))
	s.idleLocked()
	return OutcomeCommitted, nil
}

func (s *Session) idleLocked() {
	if s.target == "" {
		return
	}
	s.target = ""
	if s.pauser != nil {
		s.pauser.Resume()
	}
}
