package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"studytime/internal/modules/stats/domain"
	"studytime/internal/modules/stats/usecase"
	apperrors "studytime/internal/platform/errors"
	"studytime/internal/platform/logging"
)

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeSource struct {
	entries []domain.Entry
	err     error
}

func (f *fakeSource) Entries(context.Context) ([]domain.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

var now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func sample() []domain.Entry {
	return []domain.Entry{
		{Subject: "Math", Start: now.Add(-2 * time.Hour), Duration: 90 * time.Minute},
		{Subject: "Physics", Start: now.Add(-26 * time.Hour), Duration: 30 * time.Minute},
	}
}

func TestReportCombinesAllAggregations(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeSource{entries: sample()}, fakeClock{now: now}, time.UTC, logging.Discard())
	report, err := uc.Report(context.Background(), 7)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Stale || report.Sessions != 2 || report.Overall != 2*time.Hour {
		t.Fatalf("unexpected report header %+v", report)
	}
	if len(report.Subjects) != 2 || report.Subjects[0].Subject != "Math" || report.Subjects[0].Share != 75 {
		t.Fatalf("unexpected subject totals %+v", report.Subjects)
	}
	if len(report.Days) != 2 || report.Days[0].Day != "2026-03-09" {
		t.Fatalf("unexpected day totals %+v", report.Days)
	}
	if len(report.LastDays) != 7 || report.LastDays[6].Day != "2026-03-10" || report.LastDays[6].Total != 90*time.Minute {
		t.Fatalf("unexpected last days %+v", report.LastDays)
	}
}

func TestPersistenceFailureServesLastGoodData(t *testing.T) {
	t.Parallel()
	src := &fakeSource{entries: sample()}
	uc := usecase.NewInteractor(src, fakeClock{now: now}, time.UTC, logging.Discard())
	ctx := context.Background()

	fresh, err := uc.Overall(ctx)
	if err != nil || fresh.Stale {
		t.Fatalf("fresh overall: %+v %v", fresh, err)
	}
	src.err = apperrors.Persistence("load sessions", os.ErrPermission)
	stale, err := uc.Overall(ctx)
	if err != nil {
		t.Fatalf("stale overall must not fail: %v", err)
	}
	if !stale.Stale || stale.Total != fresh.Total {
		t.Fatalf("expected stale copy of %+v, got %+v", fresh, stale)
	}
	bySubject, err := uc.BySubject(ctx)
	if err != nil || !bySubject.Stale || len(bySubject.Items) != 2 {
		t.Fatalf("stale by-subject: %+v %v", bySubject, err)
	}
}

func TestPersistenceFailureBeforeAnyLoadIsEmpty(t *testing.T) {
	t.Parallel()
	src := &fakeSource{err: apperrors.Persistence("load sessions", os.ErrNotExist)}
	uc := usecase.NewInteractor(src, fakeClock{now: now}, time.UTC, logging.Discard())
	days, err := uc.LastDays(context.Background(), 3)
	if err != nil {
		t.Fatalf("last days: %v", err)
	}
	if !days.Stale || len(days.Items) != 3 {
		t.Fatalf("expected 3 stale zero days, got %+v", days)
	}
}

func TestOtherErrorsPropagate(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	uc := usecase.NewInteractor(&fakeSource{err: boom}, fakeClock{now: now}, time.UTC, logging.Discard())
	if _, err := uc.ByDay(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}
