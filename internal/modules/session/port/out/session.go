package out

import (
	"context"

	"studytime/internal/modules/session/domain"
)

// SessionStore is the durable record of finished sessions. List is
// chronological by start; sessions sharing a start keep insertion order.
type SessionStore interface {
	Append(ctx context.Context, session domain.Session) error
	List(ctx context.Context) ([]domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	Update(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id string) error

	CountBySubject(ctx context.Context, subject string) (int, error)
	RenameSubject(ctx context.Context, from, to string) (int, error)
	DeleteBySubject(ctx context.Context, subject string) (int, error)
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, stopwatch domain.Stopwatch) error
	LoadActive(ctx context.Context) (domain.Stopwatch, error)
	ClearActive(ctx context.Context) error
}

// SubjectLookup resolves a user-typed subject to its registered spelling.
type SubjectLookup interface {
	Resolve(ctx context.Context, name string) (string, error)
}

type SessionIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, session domain.Session) error
	DeleteSession(ctx context.Context, id string) error
}
