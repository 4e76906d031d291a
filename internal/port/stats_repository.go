package port

import (
	"context"

	"agrodesk/internal/domain"
)

// StatsRepository computes the dashboard counters.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}
