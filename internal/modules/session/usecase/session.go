package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"studytime/internal/modules/session/domain"
	sessiondto "studytime/internal/modules/session/dto"
	sessionin "studytime/internal/modules/session/port/in"
	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/modules/session/service"
	apperrors "studytime/internal/platform/errors"
)

type Interactor struct {
	// mu serialises every load, transition and save of the open session.
	mu sync.Mutex

	svc         *service.SessionService
	subjects    sessionout.SubjectLookup
	activeStore sessionout.ActiveSessionStore
	logger      *slog.Logger
}

func NewInteractor(svc *service.SessionService, subjects sessionout.SubjectLookup, activeStore sessionout.ActiveSessionStore, logger *slog.Logger) sessionin.Usecase {
	return &Interactor{svc: svc, subjects: subjects, activeStore: activeStore, logger: logger}
}

// ─── stopwatch ───────────────────────────────────────────────────────────────

func (i *Interactor) Start(ctx context.Context, subject string) (sessiondto.StopwatchOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	w, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	if !w.IsIdle() {
		return sessiondto.StopwatchOutput{}, apperrors.ErrActiveSessionExists
	}
	name, err := i.subjects.Resolve(ctx, subject)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	next, err := i.svc.Start(w, name)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, next); err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	i.logger.Info("session started", "session_id", next.SessionID, "subject", next.Subject)
	return i.output(next), nil
}

func (i *Interactor) Pause(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return i.transition(ctx, "session paused", i.svc.Pause)
}

func (i *Interactor) Resume(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return i.transition(ctx, "session resumed", i.svc.Resume)
}

func (i *Interactor) transition(ctx context.Context, event string, step func(domain.Stopwatch) (domain.Stopwatch, error)) (sessiondto.StopwatchOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	w, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	next, err := step(w)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, next); err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	i.logger.Info(event, "session_id", next.SessionID, "accumulated", next.Accumulated)
	return i.output(next), nil
}

func (i *Interactor) Stop(ctx context.Context) (sessiondto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	w, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	session, err := i.svc.Stop(ctx, w)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		i.logger.Error("recorded session left active", "session_id", session.ID, "err", err)
		return toOutput(session), fmt.Errorf("session %s recorded but still marked active: %w", session.ID, err)
	}
	i.logger.Info("session stopped", "session_id", session.ID, "subject", session.Subject, "duration", session.Duration)
	return toOutput(session), nil
}

func (i *Interactor) Discard(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	w, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	if w.IsIdle() {
		return sessiondto.StopwatchOutput{}, apperrors.ErrNoActiveSession
	}
	out := i.output(w)
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	i.logger.Info("session discarded", "session_id", w.SessionID, "elapsed", out.Elapsed)
	return out, nil
}

// Check reports the open session and fails with ErrNoActiveSession when
// the stopwatch is idle.
func (i *Interactor) Check(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	out, err := i.Status(ctx)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	if !out.Active() {
		return sessiondto.StopwatchOutput{}, apperrors.ErrNoActiveSession
	}
	return out, nil
}

// Status is Check that reports an idle stopwatch instead of failing.
func (i *Interactor) Status(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	w, err := i.loadActive(ctx)
	if err != nil {
		return sessiondto.StopwatchOutput{}, err
	}
	return i.output(w), nil
}

func (i *Interactor) loadActive(ctx context.Context) (domain.Stopwatch, error) {
	w, err := i.activeStore.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.Idle(), nil
	}
	if err != nil {
		return domain.Idle(), err
	}
	return w, nil
}

func (i *Interactor) output(w domain.Stopwatch) sessiondto.StopwatchOutput {
	if w.IsIdle() {
		return sessiondto.StopwatchOutput{State: string(domain.StateIdle)}
	}
	return sessiondto.StopwatchOutput{
		State:     string(w.State),
		SessionID: w.SessionID,
		Subject:   w.Subject,
		StartedAt: w.StartedAt,
		Elapsed:   w.Elapsed(i.svc.Now()),
	}
}

// ─── records ─────────────────────────────────────────────────────────────────

func (i *Interactor) Record(ctx context.Context, input sessiondto.RecordInput) (sessiondto.SessionOutput, error) {
	name, err := i.subjects.Resolve(ctx, input.Subject)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	session, err := i.svc.Record(ctx, name, input.Start, input.End)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	i.logger.Info("session recorded", "session_id", session.ID, "subject", session.Subject)
	return toOutput(session), nil
}

func (i *Interactor) Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	patch := domain.Patch{Start: input.Start, End: input.End, Duration: input.Duration}
	if input.Subject != nil {
		name, err := i.subjects.Resolve(ctx, *input.Subject)
		if err != nil {
			return sessiondto.SessionOutput{}, err
		}
		patch.Subject = &name
	}
	session, err := i.svc.Edit(ctx, input.ID, patch)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	i.logger.Info("session edited", "session_id", session.ID)
	return toOutput(session), nil
}

func (i *Interactor) Delete(ctx context.Context, id string) error {
	if err := i.svc.Delete(ctx, id); err != nil {
		return err
	}
	i.logger.Info("session deleted", "session_id", id)
	return nil
}

func (i *Interactor) Get(ctx context.Context, id string) (sessiondto.SessionOutput, error) {
	session, err := i.svc.Get(ctx, id)
	if err != nil {
		return sessiondto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

// List returns sessions oldest first. With a limit only the most recent
// ones are kept.
func (i *Interactor) List(ctx context.Context, input sessiondto.ListInput) ([]sessiondto.SessionOutput, error) {
	sessions, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(input.Subject)
	out := make([]sessiondto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		if subject != "" && !strings.EqualFold(session.Subject, subject) {
			continue
		}
		out = append(out, toOutput(session))
	}
	if input.Limit > 0 && len(out) > input.Limit {
		out = out[len(out)-input.Limit:]
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return 0, err
	}
	i.logger.Info("sessions reindexed", "count", n)
	return n, nil
}

func toOutput(s domain.Session) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:       s.ID,
		Subject:  s.Subject,
		Start:    s.Start,
		End:      s.End,
		Duration: s.Duration,
	}
}
