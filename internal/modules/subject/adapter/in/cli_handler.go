package in

import (
	"context"

	subjectdto "studytime/internal/modules/subject/dto"
	subjectin "studytime/internal/modules/subject/port/in"
)

type CLIHandler struct {
	usecase subjectin.Usecase
}

func NewCLIHandler(usecase subjectin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name string) (subjectdto.SubjectOutput, error) {
	return h.usecase.Create(ctx, name)
}

func (h CLIHandler) Rename(ctx context.Context, from, to string) (subjectdto.RenameOutput, error) {
	return h.usecase.Rename(ctx, from, to)
}

func (h CLIHandler) Delete(ctx context.Context, name string, cascade bool) (subjectdto.DeleteOutput, error) {
	return h.usecase.Delete(ctx, subjectdto.DeleteInput{Name: name, Cascade: cascade})
}

func (h CLIHandler) Get(ctx context.Context, name string) (subjectdto.SubjectOutput, error) {
	return h.usecase.Get(ctx, name)
}

func (h CLIHandler) List(ctx context.Context) ([]subjectdto.SubjectOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}
