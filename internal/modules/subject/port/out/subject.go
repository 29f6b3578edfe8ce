package out

import (
	"context"

	"studytime/internal/modules/subject/domain"
)

// SubjectStore holds the registry in creation order. Save replaces it.
type SubjectStore interface {
	List(ctx context.Context) ([]domain.Subject, error)
	Save(ctx context.Context, subjects []domain.Subject) error
}

// SessionReferences is what the registry needs to know about recorded and
// open sessions when a subject is renamed or removed.
type SessionReferences interface {
	CountBySubject(ctx context.Context, name string) (int, error)
	RenameSubject(ctx context.Context, from, to string) (int, error)
	DeleteBySubject(ctx context.Context, name string) (int, error)
	ActiveSubject(ctx context.Context) (string, bool, error)
	RenameActiveSubject(ctx context.Context, from, to string) error
}

type SubjectIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertSubject(ctx context.Context, subject domain.Subject) error
	RenameSubject(ctx context.Context, from, to string) error
	DeleteSubject(ctx context.Context, name string) error
}
