package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sessionout "studytime/internal/modules/session/adapter/out"
	sessiondomain "studytime/internal/modules/session/domain"
	subjectout "studytime/internal/modules/subject/adapter/out"
	subjectdomain "studytime/internal/modules/subject/domain"
	subjectdto "studytime/internal/modules/subject/dto"
	subjectin "studytime/internal/modules/subject/port/in"
	subjectport "studytime/internal/modules/subject/port/out"
	"studytime/internal/modules/subject/service"
	"studytime/internal/modules/subject/usecase"
	apperrors "studytime/internal/platform/errors"
	"studytime/internal/platform/logging"
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

var base = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc       subjectin.Usecase
	sessions *sessionout.CSVSessionStore
	active   interface {
		SaveActive(context.Context, sessiondomain.Stopwatch) error
		LoadActive(context.Context) (sessiondomain.Stopwatch, error)
	}
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	logger := logging.Discard()
	sessions := sessionout.NewCSVSessionStore(filepath.Join(dir, "sessions.csv"), logger)
	active := sessionout.NewFileActiveSessionStore(filepath.Join(dir, "active.json"))
	refs := subjectout.NewSessionStoreReferences(sessions, active, nil, logger)
	svc := service.NewSubjectService(&fakeClock{now: base}, subjectout.NewCSVSubjectStore(filepath.Join(dir, "subjects.csv"), logger), refs, nil, logger)
	return fixture{uc: usecase.NewInteractor(svc, logger), sessions: sessions, active: active}
}

func (f fixture) record(t *testing.T, id, subject string) {
	t.Helper()
	s := sessiondomain.Session{ID: id, Subject: subject, Start: base, End: base.Add(time.Hour), Duration: time.Hour}
	if err := f.sessions.Append(context.Background(), s); err != nil {
		t.Fatalf("append session: %v", err)
	}
}

func TestCreateListAndUniqueness(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Math", " Physics ", "Chemistry"} {
		if _, err := f.uc.Create(ctx, name); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}
	if _, err := f.uc.Create(ctx, "MATH"); !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Fatalf("case-insensitive duplicate: %v", err)
	}
	if _, err := f.uc.Create(ctx, "   "); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("empty name: %v", err)
	}
	list, err := f.uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Math" || list[1].Name != "Physics" || list[2].Name != "Chemistry" {
		t.Fatalf("expected creation order, got %+v", list)
	}
	got, err := f.uc.Get(ctx, "physics")
	if err != nil || got.Name != "Physics" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := f.uc.Get(ctx, "Biology"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("get unknown: %v", err)
	}
}

func TestRenameCascadesToSessionsAndOpenSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.uc.Create(ctx, "Math")
	_, _ = f.uc.Create(ctx, "Physics")
	f.record(t, "a", "Math")
	f.record(t, "b", "Physics")
	w, _ := sessiondomain.Idle().Start("open", "Math", base)
	if err := f.active.SaveActive(ctx, w); err != nil {
		t.Fatalf("save active: %v", err)
	}

	if _, err := f.uc.Rename(ctx, "math", "physics"); !errors.Is(err, apperrors.ErrDuplicateName) {
		t.Fatalf("rename onto existing: %v", err)
	}
	out, err := f.uc.Rename(ctx, "math", "Calculus")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if out.To != "Calculus" || out.SessionsUpdated != 1 {
		t.Fatalf("unexpected rename output %+v", out)
	}
	if n, _ := f.sessions.CountBySubject(ctx, "Calculus"); n != 1 {
		t.Fatalf("session subject not renamed, count=%d", n)
	}
	if n, _ := f.sessions.CountBySubject(ctx, "Math"); n != 0 {
		t.Fatalf("old name still referenced, count=%d", n)
	}
	open, err := f.active.LoadActive(ctx)
	if err != nil || open.Subject != "Calculus" {
		t.Fatalf("open session not renamed: %+v %v", open, err)
	}
	if _, err := f.uc.Rename(ctx, "calculus", "CALCULUS"); err != nil {
		t.Fatalf("case-only rename: %v", err)
	}
	if _, err := f.uc.Rename(ctx, "Biology", "Bio"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("rename unknown: %v", err)
	}
}

func TestDeleteBlocksCascadesAndProtectsOpenSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.uc.Create(ctx, "Math")
	_, _ = f.uc.Create(ctx, "Physics")
	_, _ = f.uc.Create(ctx, "Art")
	f.record(t, "a", "Math")
	f.record(t, "b", "Math")

	_, err := f.uc.Delete(ctx, subjectdto.DeleteInput{Name: "Math"})
	if !errors.Is(err, apperrors.ErrSubjectInUse) || !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected subject in use, got %v", err)
	}
	out, err := f.uc.Delete(ctx, subjectdto.DeleteInput{Name: "math", Cascade: true})
	if err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if out.SessionsRemoved != 2 {
		t.Fatalf("expected 2 sessions removed, got %d", out.SessionsRemoved)
	}
	if n, _ := f.sessions.CountBySubject(ctx, "Math"); n != 0 {
		t.Fatalf("sessions must be gone, count=%d", n)
	}

	w, _ := sessiondomain.Idle().Start("open", "Physics", base)
	_ = f.active.SaveActive(ctx, w)
	if _, err := f.uc.Delete(ctx, subjectdto.DeleteInput{Name: "Physics", Cascade: true}); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("deleting open subject: %v", err)
	}
	if _, err := f.uc.Delete(ctx, subjectdto.DeleteInput{Name: "Art"}); err != nil {
		t.Fatalf("delete unused: %v", err)
	}
	list, _ := f.uc.List(ctx)
	if len(list) != 1 || list[0].Name != "Physics" {
		t.Fatalf("expected only Physics left, got %+v", list)
	}
	if _, err := f.uc.Delete(ctx, subjectdto.DeleteInput{Name: "Art"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
}

var errDiskFull = errors.New("disk full")

// failingSaves lets the first `allow` saves through and fails the rest.
type failingSaves struct {
	subjectport.SubjectStore
	allow int
}

func (f *failingSaves) Save(ctx context.Context, subjects []subjectdomain.Subject) error {
	if f.allow <= 0 {
		return errDiskFull
	}
	f.allow--
	return f.SubjectStore.Save(ctx, subjects)
}

type failingPurge struct {
	subjectport.SessionReferences
}

func (failingPurge) DeleteBySubject(context.Context, string) (int, error) {
	return 0, errDiskFull
}

func TestCascadeDeleteLeavesStateUnchangedOnFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	logger := logging.Discard()
	sessions := sessionout.NewCSVSessionStore(filepath.Join(dir, "sessions.csv"), logger)
	active := sessionout.NewFileActiveSessionStore(filepath.Join(dir, "active.json"))
	refs := subjectout.NewSessionStoreReferences(sessions, active, nil, logger)
	registry := subjectout.NewCSVSubjectStore(filepath.Join(dir, "subjects.csv"), logger)
	f := fixture{sessions: sessions, active: active}

	// Registry write fails: sessions must survive.
	store := &failingSaves{SubjectStore: registry, allow: 1}
	uc := usecase.NewInteractor(service.NewSubjectService(&fakeClock{now: base}, store, refs, nil, logger), logger)
	if _, err := uc.Create(ctx, "Math"); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.record(t, "a", "Math")
	if _, err := uc.Delete(ctx, subjectdto.DeleteInput{Name: "Math", Cascade: true}); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected the save failure, got %v", err)
	}
	if n, _ := sessions.CountBySubject(ctx, "Math"); n != 1 {
		t.Fatalf("sessions must survive a failed delete, count=%d", n)
	}
	if list, _ := uc.List(ctx); len(list) != 1 {
		t.Fatalf("subject must stay registered, got %+v", list)
	}

	// Session purge fails: the registry is restored.
	uc = usecase.NewInteractor(service.NewSubjectService(&fakeClock{now: base}, registry, failingPurge{refs}, nil, logger), logger)
	if _, err := uc.Delete(ctx, subjectdto.DeleteInput{Name: "Math", Cascade: true}); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected the purge failure, got %v", err)
	}
	if list, _ := uc.List(ctx); len(list) != 1 || list[0].Name != "Math" {
		t.Fatalf("registry must be rolled back, got %+v", list)
	}
	if n, _ := sessions.CountBySubject(ctx, "Math"); n != 1 {
		t.Fatalf("sessions must be untouched, count=%d", n)
	}
}
