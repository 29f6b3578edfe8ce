package out

import (
	"context"
	"database/sql"
	"fmt"

	"studytime/internal/modules/session/domain"
	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/platform/csvfile"
)

// SQLiteSessionProjector mirrors sessions into the fact_session table.
type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(ctx context.Context, db *sql.DB) (sessionout.SessionIndexProjector, error) {
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS fact_session (
  session_id TEXT PRIMARY KEY,
  subject_name TEXT NOT NULL,
  start_time TEXT NOT NULL,
  end_time TEXT NOT NULL,
  duration_seconds REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS fact_session_subject ON fact_session (subject_name COLLATE NOCASE);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create fact_session table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fact_session`); err != nil {
		return fmt.Errorf("reset fact_session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) UpsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO fact_session (session_id, subject_name, start_time, end_time, duration_seconds)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
  subject_name=excluded.subject_name,
  start_time=excluded.start_time,
  end_time=excluded.end_time,
  duration_seconds=excluded.duration_seconds;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.Subject,
		csvfile.FormatTime(session.Start),
		csvfile.FormatTime(session.End),
		session.Duration.Seconds(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fact_session WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
