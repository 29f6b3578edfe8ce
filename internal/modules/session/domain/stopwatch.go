package domain

import (
	"time"

	apperrors "studytime/internal/platform/errors"
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Stopwatch is the open session, if any. It is persisted between CLI
// invocations, so every field is plain data. Transitions return a new value
// and leave the receiver untouched on error.
type Stopwatch struct {
	State       State         `json:"state"`
	SessionID   string        `json:"session_id,omitempty"`
	Subject     string        `json:"subject,omitempty"`
	StartedAt   time.Time     `json:"started_at,omitzero"`
	ResumedAt   time.Time     `json:"resumed_at,omitzero"`
	Accumulated time.Duration `json:"accumulated_ns"`
}

// Idle is the zero stopwatch.
func Idle() Stopwatch { return Stopwatch{State: StateIdle} }

func (w Stopwatch) IsIdle() bool { return w.State == "" || w.State == StateIdle }

func (w Stopwatch) Start(sessionID, subject string, now time.Time) (Stopwatch, error) {
	if !w.IsIdle() {
		return w, apperrors.ErrActiveSessionExists
	}
	if subject == "" {
		return w, apperrors.Validation("subject is required")
	}
	return Stopwatch{
		State:     StateRunning,
		SessionID: sessionID,
		Subject:   subject,
		StartedAt: now,
		ResumedAt: now,
	}, nil
}

func (w Stopwatch) Pause(now time.Time) (Stopwatch, error) {
	switch w.State {
	case StateRunning:
	case StatePaused:
		return w, apperrors.InvalidState("session is already paused")
	default:
		return w, apperrors.ErrNoActiveSession
	}
	next := w
	next.State = StatePaused
	next.Accumulated = w.Accumulated + leg(w.ResumedAt, now)
	next.ResumedAt = time.Time{}
	return next, nil
}

func (w Stopwatch) Resume(now time.Time) (Stopwatch, error) {
	switch w.State {
	case StatePaused:
	case StateRunning:
		return w, apperrors.InvalidState("session is not paused")
	default:
		return w, apperrors.ErrNoActiveSession
	}
	next := w
	next.State = StateRunning
	next.ResumedAt = now
	return next, nil
}

// Stop closes the open session and returns it. End never precedes Start and
// Duration never exceeds the span, even if the wall clock moved backwards.
func (w Stopwatch) Stop(now time.Time) (Stopwatch, Session, error) {
	if w.IsIdle() {
		return w, Session{}, apperrors.ErrNoActiveSession
	}
	end := now
	if end.Before(w.StartedAt) {
		end = w.StartedAt
	}
	total := min(w.Elapsed(now), end.Sub(w.StartedAt))
	return Idle(), Session{
		ID:       w.SessionID,
		Subject:  w.Subject,
		Start:    w.StartedAt,
		End:      end,
		Duration: total,
	}, nil
}

// Elapsed is the running time so far, excluding pauses.
func (w Stopwatch) Elapsed(now time.Time) time.Duration {
	switch w.State {
	case StateRunning:
		return w.Accumulated + leg(w.ResumedAt, now)
	case StatePaused:
		return w.Accumulated
	default:
		return 0
	}
}

func leg(from, to time.Time) time.Duration {
	if d := to.Sub(from); d > 0 {
		return d
	}
	return 0
}
