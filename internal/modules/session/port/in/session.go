package in

import (
	"context"

	"studytime/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, subject string) (dto.StopwatchOutput, error)
	Pause(ctx context.Context) (dto.StopwatchOutput, error)
	Resume(ctx context.Context) (dto.StopwatchOutput, error)
	Stop(ctx context.Context) (dto.SessionOutput, error)
	Discard(ctx context.Context) (dto.StopwatchOutput, error)
	Check(ctx context.Context) (dto.StopwatchOutput, error)
	Status(ctx context.Context) (dto.StopwatchOutput, error)

	Record(ctx context.Context, input dto.RecordInput) (dto.SessionOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.SessionOutput, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.SessionOutput, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.SessionOutput, error)
	Reindex(ctx context.Context) (int, error)
}
