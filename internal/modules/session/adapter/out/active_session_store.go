package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"studytime/internal/modules/session/domain"
	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/platform/atomicfile"
	apperrors "studytime/internal/platform/errors"
)

// FileActiveSessionStore keeps the open stopwatch in a JSON file so it
// survives process exit and machine sleep.
type FileActiveSessionStore struct {
	path string
}

func NewFileActiveSessionStore(path string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{path: path}
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, stopwatch domain.Stopwatch) error {
	payload, err := json.MarshalIndent(stopwatch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, payload, 0o644); err != nil {
		return apperrors.Persistence("write active session", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context) (domain.Stopwatch, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Idle(), apperrors.ErrNoActiveSession
		}
		return domain.Idle(), apperrors.Persistence("read active session", err)
	}
	stopwatch := domain.Stopwatch{}
	if err := json.Unmarshal(payload, &stopwatch); err != nil {
		return domain.Idle(), apperrors.Persistence("decode active session", err)
	}
	if stopwatch.IsIdle() || stopwatch.SessionID == "" {
		return domain.Idle(), apperrors.ErrNoActiveSession
	}
	if stopwatch.State != domain.StateRunning && stopwatch.State != domain.StatePaused {
		return domain.Idle(), apperrors.Persistence("decode active session", fmt.Errorf("unknown state %q", stopwatch.State))
	}
	return stopwatch, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return apperrors.Persistence("clear active session", err)
	}
	return nil
}
