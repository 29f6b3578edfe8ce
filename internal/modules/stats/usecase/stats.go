package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"studytime/internal/modules/stats/domain"
	statsdto "studytime/internal/modules/stats/dto"
	statsin "studytime/internal/modules/stats/port/in"
	statsout "studytime/internal/modules/stats/port/out"
	"studytime/internal/platform/clock"
	apperrors "studytime/internal/platform/errors"
)

// Interactor answers statistics queries. When the session store cannot be
// read it falls back to the last set it loaded and flags the answer stale.
type Interactor struct {
	source statsout.SessionSource
	clock  clock.Clock
	loc    *time.Location
	logger *slog.Logger

	mu       sync.Mutex
	lastGood []domain.Entry
}

func NewInteractor(source statsout.SessionSource, clock clock.Clock, loc *time.Location, logger *slog.Logger) statsin.Usecase {
	if loc == nil {
		loc = time.Local
	}
	return &Interactor{source: source, clock: clock, loc: loc, logger: logger}
}

func (i *Interactor) load(ctx context.Context) ([]domain.Entry, bool, error) {
	entries, err := i.source.Entries(ctx)
	i.mu.Lock()
	defer i.mu.Unlock()
	if err != nil {
		if !errors.Is(err, apperrors.ErrPersistence) {
			return nil, false, err
		}
		i.logger.Warn("serving stale statistics", "sessions", len(i.lastGood), "err", err)
		return i.lastGood, true, nil
	}
	i.lastGood = entries
	return entries, false, nil
}

func (i *Interactor) BySubject(ctx context.Context) (statsdto.SubjectTotalsOutput, error) {
	entries, stale, err := i.load(ctx)
	if err != nil {
		return statsdto.SubjectTotalsOutput{}, err
	}
	return statsdto.SubjectTotalsOutput{Items: subjectTotals(entries), Stale: stale}, nil
}

func (i *Interactor) ByDay(ctx context.Context) (statsdto.DayTotalsOutput, error) {
	entries, stale, err := i.load(ctx)
	if err != nil {
		return statsdto.DayTotalsOutput{}, err
	}
	return statsdto.DayTotalsOutput{Items: i.dayTotals(domain.TotalsByDay(entries, i.loc)), Stale: stale}, nil
}

func (i *Interactor) Overall(ctx context.Context) (statsdto.OverallOutput, error) {
	entries, stale, err := i.load(ctx)
	if err != nil {
		return statsdto.OverallOutput{}, err
	}
	return statsdto.OverallOutput{Total: domain.OverallTotal(entries), Sessions: len(entries), Stale: stale}, nil
}

func (i *Interactor) LastDays(ctx context.Context, n int) (statsdto.DayTotalsOutput, error) {
	entries, stale, err := i.load(ctx)
	if err != nil {
		return statsdto.DayTotalsOutput{}, err
	}
	return statsdto.DayTotalsOutput{Items: i.dayTotals(domain.LastNDays(entries, n, i.clock.Now(), i.loc)), Stale: stale}, nil
}

func (i *Interactor) Report(ctx context.Context, days int) (statsdto.ReportOutput, error) {
	entries, stale, err := i.load(ctx)
	if err != nil {
		return statsdto.ReportOutput{}, err
	}
	return statsdto.ReportOutput{
		Subjects: subjectTotals(entries),
		Days:     i.dayTotals(domain.TotalsByDay(entries, i.loc)),
		LastDays: i.dayTotals(domain.LastNDays(entries, days, i.clock.Now(), i.loc)),
		Overall:  domain.OverallTotal(entries),
		Sessions: len(entries),
		Stale:    stale,
	}, nil
}

func subjectTotals(entries []domain.Entry) []statsdto.SubjectTotalOutput {
	overall := domain.OverallTotal(entries)
	totals := domain.TotalsBySubject(entries)
	out := make([]statsdto.SubjectTotalOutput, 0, len(totals))
	for _, t := range totals {
		out = append(out, statsdto.SubjectTotalOutput{
			Subject:  t.Subject,
			Total:    t.Total,
			Sessions: t.Sessions,
			Share:    domain.Share(t.Total, overall),
		})
	}
	return out
}

func (i *Interactor) dayTotals(days []domain.DailyTotal) []statsdto.DayTotalOutput {
	out := make([]statsdto.DayTotalOutput, 0, len(days))
	for _, d := range days {
		out = append(out, statsdto.DayTotalOutput{Day: d.Day.String(), Date: d.Day.Time(i.loc), Total: d.Total})
	}
	return out
}
