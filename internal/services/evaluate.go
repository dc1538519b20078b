package services

import (
	"fmt"
	"math"
	"slices"

	"mode-allocation-simulator/internal/domain"
)

// Evaluate decides the cheaper mode for a priced record.
//
// Fleet is best only when strictly cheaper; ties go to aggregated. A record
// whose realized mode differs from the best mode is an allocation error and
// its saving potential is the cost gap between the two modes. Records without
// costs come back with no decision.
func Evaluate(rec domain.EvaluatedRecord) (domain.EvaluatedRecord, error) {
	if rec.Cost == nil {
		rec.Decision = nil
		return rec, nil
	}

	fleet := rec.Cost.FleetCost
	aggregated := rec.Cost.AggregatedCost

	best := rec.Cost.BestMode()

	mismatch := rec.Demand.RealizedMode != best

	saving := 0.0
	if mismatch {
		switch best {
		case domain.ModeFleet:
			saving = aggregated - fleet
		case domain.ModeAggregated:
			saving = fleet - aggregated
		}
	}

	if saving < 0 || math.IsNaN(saving) {
		return rec, fmt.Errorf(
			"evaluate demand %q (%s): saving=%v: %w",
			rec.Demand.ID, rec.Demand.Lane(), saving, domain.ErrNegativeSaving,
		)
	}

	rec.Decision = &domain.Decision{
		BestMode:        best,
		AllocationError: mismatch,
		SavingPotential: saving,
	}
	return rec, nil
}

// EvaluateAll evaluates every record and reports unrecognized realized-mode
// labels, which always count as allocation errors.
func EvaluateAll(records []domain.EvaluatedRecord) ([]domain.EvaluatedRecord, []string, error) {
	out := make([]domain.EvaluatedRecord, 0, len(records))
	unknown := make(map[string]int)

	for _, r := range records {
		ev, err := Evaluate(r)
		if err != nil {
			return nil, nil, fmt.Errorf("evaluate all: %w", err)
		}
		if r.Demand.RealizedMode == domain.ModeUnknown {
			unknown[r.Demand.RealizedLabel]++
		}
		out = append(out, ev)
	}

	labels := make([]string, 0, len(unknown))
	for l := range unknown {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	warnings := make([]string, 0, len(labels))
	for _, l := range labels {
		warnings = append(warnings, fmt.Sprintf(
			"realized mode %q not recognized on %d shipment(s); counted as allocation error",
			l, unknown[l],
		))
	}

	return out, warnings, nil
}
