package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"studytime/internal/modules/subject/domain"
	subjectout "studytime/internal/modules/subject/port/out"
	"studytime/internal/platform/clock"
	apperrors "studytime/internal/platform/errors"
)

type SubjectService struct {
	clock     clock.Clock
	store     subjectout.SubjectStore
	refs      subjectout.SessionReferences
	projector subjectout.SubjectIndexProjector
	logger    *slog.Logger
}

func NewSubjectService(clock clock.Clock, store subjectout.SubjectStore, refs subjectout.SessionReferences, projector subjectout.SubjectIndexProjector, logger *slog.Logger) *SubjectService {
	return &SubjectService{clock: clock, store: store, refs: refs, projector: projector, logger: logger}
}

func (s *SubjectService) Create(ctx context.Context, raw string) (domain.Subject, error) {
	name, err := domain.NormalizeName(raw)
	if err != nil {
		return domain.Subject{}, err
	}
	subjects, err := s.store.List(ctx)
	if err != nil {
		return domain.Subject{}, err
	}
	if existing, ok := domain.Find(subjects, name); ok {
		return domain.Subject{}, fmt.Errorf("subject %q: %w", existing.Name, apperrors.ErrDuplicateName)
	}
	subject := domain.Subject{Name: name, CreatedAt: s.clock.Now()}
	if err := s.store.Save(ctx, append(subjects, subject)); err != nil {
		return domain.Subject{}, err
	}
	s.project("upsert", subject.Name, func() error { return s.projector.UpsertSubject(ctx, subject) })
	return subject, nil
}

// Rename changes a subject's name everywhere it is used: the registry, the
// recorded sessions and the open session. A case-only rename is allowed.
func (s *SubjectService) Rename(ctx context.Context, from, to string) (domain.Subject, int, error) {
	newName, err := domain.NormalizeName(to)
	if err != nil {
		return domain.Subject{}, 0, err
	}
	subjects, err := s.store.List(ctx)
	if err != nil {
		return domain.Subject{}, 0, err
	}
	idx := domain.Index(subjects, from)
	if idx < 0 {
		return domain.Subject{}, 0, apperrors.NotFound("subject", from)
	}
	old := subjects[idx]
	if other := domain.Index(subjects, newName); other >= 0 && other != idx {
		return domain.Subject{}, 0, fmt.Errorf("subject %q: %w", subjects[other].Name, apperrors.ErrDuplicateName)
	}
	if old.Name == newName {
		return old, 0, nil
	}

	renamed := slices.Clone(subjects)
	renamed[idx].Name = newName
	if err := s.store.Save(ctx, renamed); err != nil {
		return domain.Subject{}, 0, err
	}
	n, err := s.refs.RenameSubject(ctx, old.Name, newName)
	if err != nil {
		s.rollback(ctx, subjects)
		return domain.Subject{}, 0, err
	}
	if err := s.refs.RenameActiveSubject(ctx, old.Name, newName); err != nil {
		if _, undoErr := s.refs.RenameSubject(ctx, newName, old.Name); undoErr != nil {
			s.logger.Error("rename rollback failed", "from", newName, "to", old.Name, "err", undoErr)
		}
		s.rollback(ctx, subjects)
		return domain.Subject{}, 0, err
	}
	s.project("rename", newName, func() error { return s.projector.RenameSubject(ctx, old.Name, newName) })
	return renamed[idx], n, nil
}

// Delete removes a subject. Subjects with recorded sessions are only removed
// together with those sessions when cascade is set; the subject of the open
// session cannot be removed.
func (s *SubjectService) Delete(ctx context.Context, name string, cascade bool) (domain.Subject, int, error) {
	subjects, err := s.store.List(ctx)
	if err != nil {
		return domain.Subject{}, 0, err
	}
	idx := domain.Index(subjects, name)
	if idx < 0 {
		return domain.Subject{}, 0, apperrors.NotFound("subject", name)
	}
	subject := subjects[idx]

	activeSubject, open, err := s.refs.ActiveSubject(ctx)
	if err != nil {
		return domain.Subject{}, 0, err
	}
	if open && domain.SameName(activeSubject, subject.Name) {
		return domain.Subject{}, 0, apperrors.InvalidState("subject %q has an open session", subject.Name)
	}

	count, err := s.refs.CountBySubject(ctx, subject.Name)
	if err != nil {
		return domain.Subject{}, 0, err
	}
	if count > 0 && !cascade {
		return domain.Subject{}, 0, fmt.Errorf("subject %q has %d sessions: %w", subject.Name, count, apperrors.ErrSubjectInUse)
	}

	// The registry goes first so a failed session purge can be undone.
	if err := s.store.Save(ctx, slices.Delete(slices.Clone(subjects), idx, idx+1)); err != nil {
		return domain.Subject{}, 0, err
	}
	removed := 0
	if count > 0 {
		if removed, err = s.refs.DeleteBySubject(ctx, subject.Name); err != nil {
			s.rollback(ctx, subjects)
			return domain.Subject{}, 0, err
		}
	}
	s.project("delete", subject.Name, func() error { return s.projector.DeleteSubject(ctx, subject.Name) })
	return subject, removed, nil
}

func (s *SubjectService) Get(ctx context.Context, name string) (domain.Subject, error) {
	subjects, err := s.store.List(ctx)
	if err != nil {
		return domain.Subject{}, err
	}
	subject, ok := domain.Find(subjects, name)
	if !ok {
		return domain.Subject{}, apperrors.NotFound("subject", name)
	}
	return subject, nil
}

func (s *SubjectService) List(ctx context.Context) ([]domain.Subject, error) {
	return s.store.List(ctx)
}

func (s *SubjectService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, nil
	}
	subjects, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, subject := range subjects {
		if err := s.projector.UpsertSubject(ctx, subject); err != nil {
			return 0, err
		}
	}
	return len(subjects), nil
}

func (s *SubjectService) rollback(ctx context.Context, subjects []domain.Subject) {
	if err := s.store.Save(ctx, subjects); err != nil {
		s.logger.Error("subject registry rollback failed", "err", err)
	}
}

func (s *SubjectService) project(op, name string, apply func() error) {
	if s.projector == nil {
		return
	}
	if err := apply(); err != nil {
		s.logger.Warn("subject projection out of date", "op", op, "subject", name, "err", err)
	}
}
