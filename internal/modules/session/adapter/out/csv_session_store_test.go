package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sessionout "studytime/internal/modules/session/adapter/out"
	"studytime/internal/modules/session/domain"
	apperrors "studytime/internal/platform/errors"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func session(id, subject string, startMin, endMin int, dur time.Duration) domain.Session {
	return domain.Session{
		ID:       id,
		Subject:  subject,
		Start:    t0.Add(time.Duration(startMin) * time.Minute),
		End:      t0.Add(time.Duration(endMin) * time.Minute),
		Duration: dur,
	}
}

func TestAppendAndListRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sessions.csv")
	store := sessionout.NewCSVSessionStore(path, nil)
	ctx := context.Background()

	in := []domain.Session{
		session("b", "Physics", 60, 90, 1234567*time.Millisecond),
		session("a", "Math", 0, 30, 25*time.Minute),
		session("c", "Math", 60, 61, time.Minute),
	}
	for _, s := range in {
		if err := store.Append(ctx, s); err != nil {
			t.Fatalf("append %s: %v", s.ID, err)
		}
	}
	got, err := sessionout.NewCSVSessionStore(path, nil).List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("expected a,b,c by start then insertion, got %+v", got)
	}
	if got[1].Duration != in[0].Duration || !got[1].Start.Equal(in[0].Start) {
		t.Fatalf("round trip lost precision: %+v vs %+v", got[1], in[0])
	}
}

func TestAppendRejectsInvalidWithoutWriting(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sessions.csv")
	store := sessionout.NewCSVSessionStore(path, nil)
	ctx := context.Background()
	if err := store.Append(ctx, session("a", "Math", 0, 30, 30*time.Minute)); err != nil {
		t.Fatalf("append: %v", err)
	}
	before, _ := os.ReadFile(path)

	if err := store.Append(ctx, session("b", "Math", 30, 0, 0)); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("end before start: %v", err)
	}
	if err := store.Append(ctx, session("a", "Math", 40, 50, 0)); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("duplicate id: %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("store must be unchanged after rejected appends")
	}
}

func TestMalformedRowsAreSkippedAndQuarantined(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.csv")
	seed := strings.Join([]string{
		"id,subject,start,end,duration_seconds",
		"a,Math,2026-03-01T08:00:00.000Z,2026-03-01T08:30:00.000Z,1800.000",
		"b,Math,not-a-time,2026-03-01T08:30:00.000Z,10",
		"c,Math,2026-03-01T09:00:00.000Z,2026-03-01T08:00:00.000Z,0",
		"d,Math,2026-03-01T09:00:00.000Z,2026-03-01T09:10:00.000Z,9999",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := sessionout.NewCSVSessionStore(path, nil)
	ctx := context.Background()
	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only the valid row, got %+v", got)
	}
	if err := store.Append(ctx, session("e", "Math", 120, 150, 30*time.Minute)); err != nil {
		t.Fatalf("append: %v", err)
	}
	q, err := os.ReadFile(filepath.Join(dir, "sessions.quarantine.csv"))
	if err != nil {
		t.Fatalf("read quarantine: %v", err)
	}
	for _, id := range []string{"b,", "c,", "d,"} {
		if !strings.Contains(string(q), id) {
			t.Fatalf("quarantine missing row %s: %s", id, q)
		}
	}
}

func TestSubjectCascadeOperations(t *testing.T) {
	t.Parallel()
	store := sessionout.NewCSVSessionStore(filepath.Join(t.TempDir(), "sessions.csv"), nil)
	ctx := context.Background()
	for _, s := range []domain.Session{
		session("a", "Math", 0, 30, time.Minute),
		session("b", "Physics", 30, 60, time.Minute),
		session("c", "math", 60, 90, time.Minute),
	} {
		if err := store.Append(ctx, s); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if n, _ := store.CountBySubject(ctx, "MATH"); n != 2 {
		t.Fatalf("expected 2 math sessions, got %d", n)
	}
	if n, err := store.RenameSubject(ctx, "Math", "Calculus"); err != nil || n != 2 {
		t.Fatalf("rename: n=%d err=%v", n, err)
	}
	if n, _ := store.CountBySubject(ctx, "Calculus"); n != 2 {
		t.Fatalf("expected renamed sessions, got %d", n)
	}
	if n, err := store.DeleteBySubject(ctx, "calculus"); err != nil || n != 2 {
		t.Fatalf("delete by subject: n=%d err=%v", n, err)
	}
	left, _ := store.List(ctx)
	if len(left) != 1 || left[0].ID != "b" {
		t.Fatalf("expected only Physics left, got %+v", left)
	}
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	t.Parallel()
	store := sessionout.NewCSVSessionStore(filepath.Join(t.TempDir(), "sessions.csv"), nil)
	ctx := context.Background()
	if err := store.Update(ctx, session("x", "Math", 0, 1, 0)); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("update unknown: %v", err)
	}
	if err := store.Delete(ctx, "x"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestActiveStoreRoundTripAndClear(t *testing.T) {
	t.Parallel()
	store := sessionout.NewFileActiveSessionStore(filepath.Join(t.TempDir(), "active.json"))
	ctx := context.Background()
	if _, err := store.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session, got %v", err)
	}
	w, _ := domain.Idle().Start("s1", "Math", t0)
	w, _ = w.Pause(t0.Add(7 * time.Minute))
	if err := store.SaveActive(ctx, w); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadActive(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.State != domain.StatePaused || got.Accumulated != 7*time.Minute || !got.StartedAt.Equal(t0) {
		t.Fatalf("unexpected stopwatch %+v", got)
	}
	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.ClearActive(ctx); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	if _, err := store.LoadActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected no active session after clear, got %v", err)
	}
}
