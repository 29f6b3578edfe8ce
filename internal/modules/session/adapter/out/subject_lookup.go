package out

import (
	"context"
	"strings"

	sessionout "studytime/internal/modules/session/port/out"
	subjectdomain "studytime/internal/modules/subject/domain"
	subjectout "studytime/internal/modules/subject/port/out"
	apperrors "studytime/internal/platform/errors"
)

// RegistrySubjectLookup checks session subjects against the subject
// registry's store.
type RegistrySubjectLookup struct {
	store subjectout.SubjectStore
}

func NewRegistrySubjectLookup(store subjectout.SubjectStore) sessionout.SubjectLookup {
	return RegistrySubjectLookup{store: store}
}

func (l RegistrySubjectLookup) Resolve(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Validation("subject is required")
	}
	subjects, err := l.store.List(ctx)
	if err != nil {
		return "", err
	}
	if subject, ok := subjectdomain.Find(subjects, name); ok {
		return subject.Name, nil
	}
	return "", apperrors.NotFound("subject", name)
}
