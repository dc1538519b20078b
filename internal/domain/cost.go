package domain

import (
	"fmt"
	"math"
)

// CostRecord is the reference cost pair for one lane.
type CostRecord struct {
	Origin         string
	Destination    string
	FleetCost      float64
	AggregatedCost float64

	lane LaneKey
}

// NewCostRecord validates the cost pair and derives the lane key.
// Costs must be finite and non-negative.
func NewCostRecord(origin, destination string, fleetCost, aggregatedCost float64) (CostRecord, error) {
	if !validCost(fleetCost) {
		return CostRecord{}, fmt.Errorf("new cost record %q -> %q: invalid fleet cost %v", origin, destination, fleetCost)
	}
	if !validCost(aggregatedCost) {
		return CostRecord{}, fmt.Errorf("new cost record %q -> %q: invalid aggregated cost %v", origin, destination, aggregatedCost)
	}

	return CostRecord{
		Origin:         origin,
		Destination:    destination,
		FleetCost:      fleetCost,
		AggregatedCost: aggregatedCost,
		lane:           NewLaneKey(origin, destination),
	}, nil
}

func (c CostRecord) Lane() LaneKey { return c.lane }

// MinCost is the cost of the cheaper of the two modes.
func (c CostRecord) MinCost() float64 { return math.Min(c.FleetCost, c.AggregatedCost) }

// BestMode is fleet when strictly cheaper, otherwise aggregated.
func (c CostRecord) BestMode() Mode {
	if c.FleetCost < c.AggregatedCost {
		return ModeFleet
	}
	return ModeAggregated
}

// CostFor returns the lane cost for a realized mode. Modes without a reference
// cost (third party, unknown) cost zero, matching how realized spend is totaled.
func (c CostRecord) CostFor(m Mode) float64 {
	switch m {
	case ModeFleet:
		return c.FleetCost
	case ModeAggregated:
		return c.AggregatedCost
	default:
		return 0
	}
}

func validCost(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
