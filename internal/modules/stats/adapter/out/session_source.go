package out

import (
	"context"

	sessionout "studytime/internal/modules/session/port/out"
	"studytime/internal/modules/stats/domain"
	statsout "studytime/internal/modules/stats/port/out"
)

// StoreSessionSource reads entries from the session store.
type StoreSessionSource struct {
	store sessionout.SessionStore
}

func NewStoreSessionSource(store sessionout.SessionStore) statsout.SessionSource {
	return StoreSessionSource{store: store}
}

func (s StoreSessionSource) Entries(ctx context.Context) ([]domain.Entry, error) {
	sessions, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.Entry, 0, len(sessions))
	for _, session := range sessions {
		entries = append(entries, domain.Entry{Subject: session.Subject, Start: session.Start, Duration: session.Duration})
	}
	return entries, nil
}
