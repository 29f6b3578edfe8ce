package out

import (
	"context"
	"errors"
	"log/slog"

	sessiondomain "studytime/internal/modules/session/domain"
	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/modules/subject/domain"
	subjectout "studytime/internal/modules/subject/port/out"
	apperrors "studytime/internal/platform/errors"
)

// SessionStoreReferences answers registry questions from the session
// module's stores and keeps its projection in step with cascades.
type SessionStoreReferences struct {
	sessions  sessionout.SessionStore
	active    sessionout.ActiveSessionStore
	projector sessionout.SessionIndexProjector
	logger    *slog.Logger
}

func NewSessionStoreReferences(sessions sessionout.SessionStore, active sessionout.ActiveSessionStore, projector sessionout.SessionIndexProjector, logger *slog.Logger) subjectout.SessionReferences {
	return &SessionStoreReferences{sessions: sessions, active: active, projector: projector, logger: logger}
}

func (r *SessionStoreReferences) CountBySubject(ctx context.Context, name string) (int, error) {
	return r.sessions.CountBySubject(ctx, name)
}

func (r *SessionStoreReferences) RenameSubject(ctx context.Context, from, to string) (int, error) {
	n, err := r.sessions.RenameSubject(ctx, from, to)
	if err != nil || n == 0 || r.projector == nil {
		return n, err
	}
	r.reproject(ctx, func(s sessiondomain.Session) bool { return domain.SameName(s.Subject, to) }, r.projector.UpsertSession)
	return n, nil
}

func (r *SessionStoreReferences) DeleteBySubject(ctx context.Context, name string) (int, error) {
	var doomed []sessiondomain.Session
	if r.projector != nil {
		all, err := r.sessions.List(ctx)
		if err != nil {
			return 0, err
		}
		for _, s := range all {
			if domain.SameName(s.Subject, name) {
				doomed = append(doomed, s)
			}
		}
	}
	n, err := r.sessions.DeleteBySubject(ctx, name)
	if err != nil {
		return 0, err
	}
	for _, s := range doomed {
		if err := r.projector.DeleteSession(ctx, s.ID); err != nil {
			r.logger.Warn("session projection out of date", "session_id", s.ID, "err", err)
		}
	}
	return n, nil
}

func (r *SessionStoreReferences) ActiveSubject(ctx context.Context) (string, bool, error) {
	w, err := r.active.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return w.Subject, true, nil
}

func (r *SessionStoreReferences) RenameActiveSubject(ctx context.Context, from, to string) error {
	w, err := r.active.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if !domain.SameName(w.Subject, from) {
		return nil
	}
	w.Subject = to
	return r.active.SaveActive(ctx, w)
}

func (r *SessionStoreReferences) reproject(ctx context.Context, match func(sessiondomain.Session) bool, apply func(context.Context, sessiondomain.Session) error) {
	all, err := r.sessions.List(ctx)
	if err != nil {
		r.logger.Warn("session projection out of date", "err", err)
		return
	}
	for _, s := range all {
		if !match(s) {
			continue
		}
		if err := apply(ctx, s); err != nil {
			r.logger.Warn("session projection out of date", "session_id", s.ID, "err", err)
		}
	}
}
