package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	subjectout "studytime/internal/modules/subject/adapter/out"
	"studytime/internal/modules/subject/domain"
)

func TestSubjectStoreRoundTripAndQuarantine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "subjects.csv")
	seed := "name,created_at\nMath,2026-01-01T10:00:00.000Z\nmath,2026-01-02T10:00:00.000Z\nPhysics,yesterday\n,2026-01-01T10:00:00.000Z\n"
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := subjectout.NewCSVSubjectStore(path, nil)
	ctx := context.Background()
	subjects, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subjects) != 1 || subjects[0].Name != "Math" {
		t.Fatalf("expected only Math, got %+v", subjects)
	}

	added := domain.Subject{Name: "Art", CreatedAt: time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC)}
	if err := store.Save(ctx, append(subjects, added)); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, _ := os.ReadFile(path)
	want := "name,created_at\nMath,2026-01-01T10:00:00.000Z\nArt,2026-01-03T09:00:00.000Z\n"
	if string(b) != want {
		t.Fatalf("unexpected file:\n%s", b)
	}
	q, err := os.ReadFile(filepath.Join(dir, "subjects.quarantine.csv"))
	if err != nil {
		t.Fatalf("quarantine file: %v", err)
	}
	if len(q) == 0 {
		t.Fatalf("expected quarantined rows")
	}
}
