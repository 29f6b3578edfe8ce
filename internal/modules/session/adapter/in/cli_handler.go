package in

import (
	"context"
	"time"

	sessiondto "studytime/internal/modules/session/dto"
	sessionin "studytime/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, subject string) (sessiondto.StopwatchOutput, error) {
	return h.usecase.Start(ctx, subject)
}

func (h CLIHandler) Pause(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (sessiondto.SessionOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Discard(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return h.usecase.Discard(ctx)
}

func (h CLIHandler) Check(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return h.usecase.Check(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StopwatchOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Record(ctx context.Context, subject string, start, end time.Time) (sessiondto.SessionOutput, error) {
	return h.usecase.Record(ctx, sessiondto.RecordInput{Subject: subject, Start: start, End: end})
}

func (h CLIHandler) Edit(ctx context.Context, input sessiondto.EditInput) (sessiondto.SessionOutput, error) {
	return h.usecase.Edit(ctx, input)
}

func (h CLIHandler) Delete(ctx context.Context, id string) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) Get(ctx context.Context, id string) (sessiondto.SessionOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) List(ctx context.Context, subject string, limit int) ([]sessiondto.SessionOutput, error) {
	return h.usecase.List(ctx, sessiondto.ListInput{Subject: subject, Limit: limit})
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}
