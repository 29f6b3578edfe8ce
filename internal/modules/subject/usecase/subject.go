package usecase

import (
	"context"
	"log/slog"

	"studytime/internal/modules/subject/domain"
	subjectdto "studytime/internal/modules/subject/dto"
	subjectin "studytime/internal/modules/subject/port/in"
	"studytime/internal/modules/subject/service"
)

type Interactor struct {
	svc    *service.SubjectService
	logger *slog.Logger
}

func NewInteractor(svc *service.SubjectService, logger *slog.Logger) subjectin.Usecase {
	return &Interactor{svc: svc, logger: logger}
}

func (i *Interactor) Create(ctx context.Context, name string) (subjectdto.SubjectOutput, error) {
	subject, err := i.svc.Create(ctx, name)
	if err != nil {
		return subjectdto.SubjectOutput{}, err
	}
	i.logger.Info("subject created", "subject", subject.Name)
	return toOutput(subject), nil
}

func (i *Interactor) Rename(ctx context.Context, from, to string) (subjectdto.RenameOutput, error) {
	subject, n, err := i.svc.Rename(ctx, from, to)
	if err != nil {
		return subjectdto.RenameOutput{}, err
	}
	i.logger.Info("subject renamed", "from", from, "to", subject.Name, "sessions", n)
	return subjectdto.RenameOutput{From: from, To: subject.Name, SessionsUpdated: n}, nil
}

func (i *Interactor) Delete(ctx context.Context, input subjectdto.DeleteInput) (subjectdto.DeleteOutput, error) {
	subject, n, err := i.svc.Delete(ctx, input.Name, input.Cascade)
	if err != nil {
		return subjectdto.DeleteOutput{}, err
	}
	i.logger.Info("subject deleted", "subject", subject.Name, "sessions_removed", n)
	return subjectdto.DeleteOutput{Name: subject.Name, SessionsRemoved: n}, nil
}

func (i *Interactor) Get(ctx context.Context, name string) (subjectdto.SubjectOutput, error) {
	subject, err := i.svc.Get(ctx, name)
	if err != nil {
		return subjectdto.SubjectOutput{}, err
	}
	return toOutput(subject), nil
}

func (i *Interactor) List(ctx context.Context) ([]subjectdto.SubjectOutput, error) {
	subjects, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]subjectdto.SubjectOutput, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, toOutput(subject))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	n, err := i.svc.Reindex(ctx)
	if err != nil {
		return 0, err
	}
	i.logger.Info("subjects reindexed", "count", n)
	return n, nil
}

func toOutput(s domain.Subject) subjectdto.SubjectOutput {
	return subjectdto.SubjectOutput{Name: s.Name, CreatedAt: s.CreatedAt}
}
