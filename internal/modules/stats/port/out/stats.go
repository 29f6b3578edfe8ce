package out

import (
	"context"

	"studytime/internal/modules/stats/domain"
)

// SessionSource supplies the recorded sessions to aggregate.
type SessionSource interface {
	Entries(ctx context.Context) ([]domain.Entry, error)
}
