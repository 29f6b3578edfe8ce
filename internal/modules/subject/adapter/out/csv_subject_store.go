package out

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"studytime/internal/modules/subject/domain"
	subjectout "studytime/internal/modules/subject/port/out"
	"studytime/internal/platform/csvfile"
	apperrors "studytime/internal/platform/errors"
)

var subjectHeader = []string{"name", "created_at"}

// CSVSubjectStore keeps the registry in a CSV file in creation order.
type CSVSubjectStore struct {
	mu    sync.Mutex
	table *csvfile.Table
}

func NewCSVSubjectStore(path string, logger *slog.Logger) *CSVSubjectStore {
	return &CSVSubjectStore{table: csvfile.NewTable(path, subjectHeader, logger)}
}

var _ subjectout.SubjectStore = (*CSVSubjectStore)(nil)

func (s *CSVSubjectStore) List(_ context.Context) ([]domain.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var subjects []domain.Subject
	err := s.table.Read(func(record []string) error {
		name, err := domain.NormalizeName(record[0])
		if err != nil {
			return err
		}
		if domain.Index(subjects, name) >= 0 {
			return fmt.Errorf("duplicate subject %q", name)
		}
		created, err := csvfile.ParseTime(record[1])
		if err != nil {
			return fmt.Errorf("created_at: %w", err)
		}
		subjects = append(subjects, domain.Subject{Name: name, CreatedAt: created})
		return nil
	})
	if err != nil {
		return nil, apperrors.Persistence("load subjects", err)
	}
	return subjects, nil
}

func (s *CSVSubjectStore) Save(_ context.Context, subjects []domain.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([][]string, 0, len(subjects))
	for _, subject := range subjects {
		rows = append(rows, []string{subject.Name, csvfile.FormatTime(subject.CreatedAt)})
	}
	return apperrors.Persistence("save subjects", s.table.Write(rows))
}
