package ports

import (
	"context"
	"mode-allocation-simulator/internal/domain"
)

// Port: a boundary for retrieving reference lane costs from a data source.
type CostRepository interface {
	// Return every reference cost row in source order. Duplicate lanes are
	// returned as stored; resolving them is the caller's decision.
	ListLaneCosts(ctx context.Context) ([]domain.CostRecord, error)
}

// Optional extension of CostRepository for sources that can look lanes up directly.
type LaneLookup interface {
	CostRepository
	// Return the costs of the requested lanes that exist in the source.
	FindLanes(ctx context.Context, lanes []domain.LaneKey) (map[domain.LaneKey]domain.CostRecord, error)
}

// Optional extension for sources that store one row per lane and resolved
// duplicate lanes while loading their contents.
type DuplicateReporter interface {
	// Return each lane the loaded table defined more than once, in order of first repeat.
	DuplicateLanes() []domain.LaneKey
}
