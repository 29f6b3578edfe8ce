package out

import (
	"context"
	"database/sql"
	"fmt"

	"studytime/internal/modules/subject/domain"
	subjectout "studytime/internal/modules/subject/port/out"
	"studytime/internal/platform/csvfile"
)

// SQLiteSubjectProjector mirrors the registry into the dim_subject table.
type SQLiteSubjectProjector struct {
	db *sql.DB
}

func NewSQLiteSubjectProjector(ctx context.Context, db *sql.DB) (subjectout.SubjectIndexProjector, error) {
	projector := &SQLiteSubjectProjector{db: db}
	if err := projector.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteSubjectProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS dim_subject (
  subject_name TEXT PRIMARY KEY COLLATE NOCASE,
  added_time TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create dim_subject table: %w", err)
	}
	return nil
}

func (s *SQLiteSubjectProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dim_subject`); err != nil {
		return fmt.Errorf("reset dim_subject: %w", err)
	}
	return nil
}

func (s *SQLiteSubjectProjector) UpsertSubject(ctx context.Context, subject domain.Subject) error {
	const stmt = `
INSERT INTO dim_subject (subject_name, added_time)
VALUES (?, ?)
ON CONFLICT(subject_name) DO UPDATE SET
  subject_name=excluded.subject_name,
  added_time=excluded.added_time;
`
	if _, err := s.db.ExecContext(ctx, stmt, subject.Name, csvfile.FormatTime(subject.CreatedAt)); err != nil {
		return fmt.Errorf("upsert subject: %w", err)
	}
	return nil
}

func (s *SQLiteSubjectProjector) RenameSubject(ctx context.Context, from, to string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE dim_subject SET subject_name = ? WHERE subject_name = ?`, to, from); err != nil {
		return fmt.Errorf("rename subject: %w", err)
	}
	return nil
}

func (s *SQLiteSubjectProjector) DeleteSubject(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dim_subject WHERE subject_name = ?`, name); err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	return nil
}
