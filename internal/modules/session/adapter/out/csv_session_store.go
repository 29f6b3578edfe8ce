package out

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"studytime/internal/modules/session/domain"
	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/platform/csvfile"
	apperrors "studytime/internal/platform/errors"
)

var sessionHeader = []string{"id", "subject", "start", "end", "duration_seconds"}

// CSVSessionStore keeps sessions in one CSV file, rewritten atomically on
// every mutation. Rows keep insertion order on disk.
type CSVSessionStore struct {
	mu    sync.Mutex
	table *csvfile.Table
}

func NewCSVSessionStore(path string, logger *slog.Logger) *CSVSessionStore {
	return &CSVSessionStore{table: csvfile.NewTable(path, sessionHeader, logger)}
}

var _ sessionout.SessionStore = (*CSVSessionStore)(nil)

func (s *CSVSessionStore) Append(_ context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(sessions, session.ID) >= 0 {
		return apperrors.Validation("session id %q already recorded", session.ID)
	}
	return s.save(append(sessions, normalize(session)))
}

func (s *CSVSessionStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(sessions, func(a, b domain.Session) int {
		return a.Start.Compare(b.Start)
	})
	return sessions, nil
}

func (s *CSVSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return domain.Session{}, err
	}
	idx := indexOf(sessions, id)
	if idx < 0 {
		return domain.Session{}, apperrors.NotFound("session", id)
	}
	return sessions[idx], nil
}

func (s *CSVSessionStore) Update(_ context.Context, session domain.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(sessions, session.ID)
	if idx < 0 {
		return apperrors.NotFound("session", session.ID)
	}
	sessions[idx] = normalize(session)
	return s.save(sessions)
}

func (s *CSVSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return err
	}
	idx := indexOf(sessions, id)
	if idx < 0 {
		return apperrors.NotFound("session", id)
	}
	return s.save(slices.Delete(sessions, idx, idx+1))
}

func (s *CSVSessionStore) CountBySubject(_ context.Context, subject string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, session := range sessions {
		if strings.EqualFold(session.Subject, subject) {
			n++
		}
	}
	return n, nil
}

func (s *CSVSessionStore) RenameSubject(_ context.Context, from, to string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range sessions {
		if strings.EqualFold(sessions[i].Subject, from) {
			sessions[i].Subject = to
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.save(sessions)
}

func (s *CSVSessionStore) DeleteBySubject(_ context.Context, subject string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessions, err := s.load()
	if err != nil {
		return 0, err
	}
	kept := sessions[:0]
	for _, session := range sessions {
		if !strings.EqualFold(session.Subject, subject) {
			kept = append(kept, session)
		}
	}
	removed := len(sessions) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(kept)
}

func (s *CSVSessionStore) load() ([]domain.Session, error) {
	var sessions []domain.Session
	seen := map[string]bool{}
	err := s.table.Read(func(record []string) error {
		session, err := decodeSession(record)
		if err != nil {
			return err
		}
		if seen[session.ID] {
			return fmt.Errorf("duplicate session id %q", session.ID)
		}
		seen[session.ID] = true
		sessions = append(sessions, session)
		return nil
	})
	if err != nil {
		return nil, apperrors.Persistence("load sessions", err)
	}
	return sessions, nil
}

func (s *CSVSessionStore) save(sessions []domain.Session) error {
	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, encodeSession(session))
	}
	return apperrors.Persistence("save sessions", s.table.Write(rows))
}

func indexOf(sessions []domain.Session, id string) int {
	return slices.IndexFunc(sessions, func(s domain.Session) bool { return s.ID == id })
}

func normalize(s domain.Session) domain.Session {
	s.Start = s.Start.UTC().Truncate(time.Millisecond)
	s.End = s.End.UTC().Truncate(time.Millisecond)
	s.Duration = min(s.Duration.Truncate(time.Millisecond), s.End.Sub(s.Start))
	return s
}

func encodeSession(s domain.Session) []string {
	return []string{
		s.ID,
		s.Subject,
		csvfile.FormatTime(s.Start),
		csvfile.FormatTime(s.End),
		strconv.FormatFloat(s.Duration.Seconds(), 'f', 3, 64),
	}
}

func decodeSession(record []string) (domain.Session, error) {
	start, err := csvfile.ParseTime(record[2])
	if err != nil {
		return domain.Session{}, fmt.Errorf("start: %w", err)
	}
	end, err := csvfile.ParseTime(record[3])
	if err != nil {
		return domain.Session{}, fmt.Errorf("end: %w", err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return domain.Session{}, fmt.Errorf("duration %q is not a number", record[4])
	}
	session := domain.Session{
		ID:       strings.TrimSpace(record[0]),
		Subject:  strings.TrimSpace(record[1]),
		Start:    start,
		End:      end,
		Duration: time.Duration(math.Round(seconds*1000)) * time.Millisecond,
	}
	if err := session.Validate(); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}
