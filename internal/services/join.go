package services

import (
	"fmt"

	"mode-allocation-simulator/internal/domain"
)

// DuplicatePolicy decides what happens when the cost reference defines a lane twice.
type DuplicatePolicy int

const (
	// DuplicateKeepFirst keeps the first row of a lane in source order and
	// reports the others.
	DuplicateKeepFirst DuplicatePolicy = iota
	// DuplicateReject fails the run with a *domain.DuplicateLaneError.
	DuplicateReject
)

// LaneIndex resolves a lane key to exactly one cost record.
type LaneIndex struct {
	costs map[domain.LaneKey]domain.CostRecord
	// Duplicates lists each lane defined more than once, in order of first repeat.
	Duplicates []domain.LaneKey
}

func BuildLaneIndex(costs []domain.CostRecord, policy DuplicatePolicy) (*LaneIndex, error) {
	ix := &LaneIndex{costs: make(map[domain.LaneKey]domain.CostRecord, len(costs))}
	reported := make(map[domain.LaneKey]struct{})

	for _, c := range costs {
		k := c.Lane()
		if _, ok := ix.costs[k]; !ok {
			ix.costs[k] = c
			continue
		}
		if _, ok := reported[k]; ok {
			continue
		}
		reported[k] = struct{}{}
		ix.Duplicates = append(ix.Duplicates, k)
	}

	if policy == DuplicateReject && len(ix.Duplicates) > 0 {
		return nil, fmt.Errorf("build lane index: %w", &domain.DuplicateLaneError{Lanes: ix.Duplicates})
	}

	return ix, nil
}

func (ix *LaneIndex) Lookup(k domain.LaneKey) (domain.CostRecord, bool) {
	if ix == nil {
		return domain.CostRecord{}, false
	}
	c, ok := ix.costs[k]
	return c, ok
}

func (ix *LaneIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.costs)
}

// JoinLanes left-joins demands to lane costs. Every demand appears exactly
// once, in input order; unmatched demands carry a nil Cost.
func JoinLanes(demands []domain.DemandRecord, ix *LaneIndex) []domain.EvaluatedRecord {
	out := make([]domain.EvaluatedRecord, 0, len(demands))
	for _, d := range demands {
		rec := domain.EvaluatedRecord{Demand: d}
		if c, ok := ix.Lookup(d.Lane()); ok {
			rec.Cost = &c
		}
		out = append(out, rec)
	}
	return out
}
