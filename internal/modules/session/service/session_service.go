package service

import (
	"context"
	"log/slog"
	"time"

	"studytime/internal/modules/session/domain"
	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/platform/clock"
	"studytime/internal/platform/id"
)

type SessionService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     sessionout.SessionStore
	projector sessionout.SessionIndexProjector
	logger    *slog.Logger
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore, projector sessionout.SessionIndexProjector, logger *slog.Logger) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store, projector: projector, logger: logger}
}

func (s *SessionService) Now() time.Time { return s.clock.Now() }

func (s *SessionService) Start(w domain.Stopwatch, subject string) (domain.Stopwatch, error) {
	return w.Start(s.idGen.New(), subject, s.clock.Now())
}

func (s *SessionService) Pause(w domain.Stopwatch) (domain.Stopwatch, error) {
	return w.Pause(s.clock.Now())
}

func (s *SessionService) Resume(w domain.Stopwatch) (domain.Stopwatch, error) {
	return w.Resume(s.clock.Now())
}

// Stop finalizes the open session and appends it to the store. The caller
// clears the active state only once this succeeds.
func (s *SessionService) Stop(ctx context.Context, w domain.Stopwatch) (domain.Session, error) {
	_, session, err := w.Stop(s.clock.Now())
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Append(ctx, session); err != nil {
		return domain.Session{}, err
	}
	s.project(ctx, session)
	return session, nil
}

// Record adds a finished session whose whole span counts as study time.
func (s *SessionService) Record(ctx context.Context, subject string, start, end time.Time) (domain.Session, error) {
	session := domain.Session{
		ID:       s.idGen.New(),
		Subject:  subject,
		Start:    start.UTC(),
		End:      end.UTC(),
		Duration: end.Sub(start),
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Append(ctx, session); err != nil {
		return domain.Session{}, err
	}
	s.project(ctx, session)
	return session, nil
}

func (s *SessionService) Edit(ctx context.Context, id string, patch domain.Patch) (domain.Session, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if patch.Empty() {
		return current, nil
	}
	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Update(ctx, updated); err != nil {
		return domain.Session{}, err
	}
	s.project(ctx, updated)
	return updated, nil
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if s.projector != nil {
		if err := s.projector.DeleteSession(ctx, id); err != nil {
			s.logger.Warn("session projection out of date", "session_id", id, "err", err)
		}
	}
	return nil
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.store.Get(ctx, id)
}

func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	return s.store.List(ctx)
}

// Reindex rebuilds the projection from the store.
func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, nil
	}
	sessions, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, session := range sessions {
		if err := s.projector.UpsertSession(ctx, session); err != nil {
			return 0, err
		}
	}
	return len(sessions), nil
}

// project keeps the SQLite index in step. The CSV file stays authoritative,
// so a failed projection is logged and left for reindex.
func (s *SessionService) project(ctx context.Context, session domain.Session) {
	if s.projector == nil {
		return
	}
	if err := s.projector.UpsertSession(ctx, session); err != nil {
		s.logger.Warn("session projection out of date", "session_id", session.ID, "err", err)
	}
}
