package in

import (
	"context"

	"studytime/internal/modules/subject/dto"
)

type Usecase interface {
	Create(ctx context.Context, name string) (dto.SubjectOutput, error)
	Rename(ctx context.Context, from, to string) (dto.RenameOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) (dto.DeleteOutput, error)
	Get(ctx context.Context, name string) (dto.SubjectOutput, error)
	List(ctx context.Context) ([]dto.SubjectOutput, error)
	Reindex(ctx context.Context) (int, error)
}
