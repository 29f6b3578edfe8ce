package in

import (
	"context"

	statsdto "studytime/internal/modules/stats/dto"
	statsin "studytime/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) BySubject(ctx context.Context) (statsdto.SubjectTotalsOutput, error) {
	return h.usecase.BySubject(ctx)
}

func (h CLIHandler) ByDay(ctx context.Context) (statsdto.DayTotalsOutput, error) {
	return h.usecase.ByDay(ctx)
}

func (h CLIHandler) Overall(ctx context.Context) (statsdto.OverallOutput, error) {
	return h.usecase.Overall(ctx)
}

func (h CLIHandler) LastDays(ctx context.Context, n int) (statsdto.DayTotalsOutput, error) {
	return h.usecase.LastDays(ctx, n)
}

func (h CLIHandler) Report(ctx context.Context, days int) (statsdto.ReportOutput, error) {
	return h.usecase.Report(ctx, days)
}
