package in

import (
	"context"

	"studytime/internal/modules/stats/dto"
)

type Usecase interface {
	BySubject(ctx context.Context) (dto.SubjectTotalsOutput, error)
	ByDay(ctx context.Context) (dto.DayTotalsOutput, error)
	Overall(ctx context.Context) (dto.OverallOutput, error)
	LastDays(ctx context.Context, n int) (dto.DayTotalsOutput, error)
	Report(ctx context.Context, days int) (dto.ReportOutput, error)
}
