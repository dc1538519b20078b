package costs

import (
	"context"
	"fmt"

	"mode-allocation-simulator/internal/domain"
)

type MockLane struct {
	From, To   string
	Fleet      float64
	Aggregated float64
}

// MockCostRepository serves a fixed in-memory list of lane costs.
type MockCostRepository struct {
	costs []domain.CostRecord
	err   error
}

func NewMockCostRepository(lanes []MockLane) *MockCostRepository {
	costs := make([]domain.CostRecord, 0, len(lanes))
	for _, l := range lanes {
		c, err := domain.NewCostRecord(l.From, l.To, l.Fleet, l.Aggregated)
		if err != nil {
			panic(fmt.Sprintf("mock cost repository: %v", err))
		}
		costs = append(costs, c)
	}
	return &MockCostRepository{costs: costs}
}

// NewFailingCostRepository returns a repository whose every call fails with err.
func NewFailingCostRepository(err error) *MockCostRepository {
	return &MockCostRepository{err: err}
}

func (m *MockCostRepository) ListLaneCosts(ctx context.Context) ([]domain.CostRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.CostRecord, len(m.costs))
	copy(out, m.costs)
	return out, nil
}
