package services

import (
	"cmp"
	"slices"

	"mode-allocation-simulator/internal/domain"
)

type periodKey struct {
	year  int
	month int
	mode  domain.Mode
}

// Aggregate groups dated records by calendar month and realized mode.
//
// TripCount counts every dated record so the summaries partition them; cost
// and saving totals only include priced records. Undated records are counted
// in Unscheduled and belong to no period.
func Aggregate(records []domain.EvaluatedRecord) domain.Aggregation {
	buckets := make(map[periodKey]*domain.PeriodSummary)
	unscheduled := 0

	for _, r := range records {
		if !r.Demand.Dated() {
			unscheduled++
			continue
		}

		y, m, _ := r.Demand.Date.Date()
		k := periodKey{year: y, month: int(m), mode: r.Demand.RealizedMode}
		s, ok := buckets[k]
		if !ok {
			s = &domain.PeriodSummary{Year: y, Month: m, Mode: k.mode}
			buckets[k] = s
		}

		s.TripCount++
		if r.Cost == nil {
			continue
		}
		s.PricedCount++
		s.TotalFleetCost += r.Cost.FleetCost
		s.TotalAggregatedCost += r.Cost.AggregatedCost
		if r.Decision != nil {
			s.TotalSavingPotential += r.Decision.SavingPotential
		}
	}

	summaries := make([]domain.PeriodSummary, 0, len(buckets))
	for _, s := range buckets {
		summaries = append(summaries, *s)
	}
	slices.SortFunc(summaries, func(a, b domain.PeriodSummary) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(modeRank(a.Mode), modeRank(b.Mode))
	})

	return domain.Aggregation{Summaries: summaries, Unscheduled: unscheduled}
}

// ComputeMetrics totals the headline indicators over all records, dated or not.
// Realized cost charges each priced trip the lane cost of its realized mode
// (zero for third party and unknown); optimized cost charges the cheaper mode.
func ComputeMetrics(records []domain.EvaluatedRecord) domain.Metrics {
	m := domain.Metrics{
		TotalTrips:  len(records),
		TripsByMode: make(map[domain.Mode]int, len(domain.Modes)),
	}

	for _, r := range records {
		m.TripsByMode[r.Demand.RealizedMode]++

		if r.Cost == nil {
			m.UnpricedTrips++
			continue
		}
		m.PricedTrips++
		m.RealizedCost += r.Cost.CostFor(r.Demand.RealizedMode)
		m.OptimizedCost += r.Cost.MinCost()

		if r.Decision != nil {
			if r.Decision.AllocationError {
				m.AllocationErrors++
			}
			m.TotalSavingPotential += r.Decision.SavingPotential
		}
	}

	return m
}

// MonthlySavings pivots saving potential by "YYYY-MM" period and realized
// mode. Every dated period appears, and every mode seen gets a zero-filled
// value per period.
func MonthlySavings(records []domain.EvaluatedRecord) domain.SavingSeries {
	sums := make(map[string]map[domain.Mode]float64)
	seenModes := make(map[domain.Mode]struct{})

	for _, r := range records {
		if !r.Demand.Dated() {
			continue
		}
		period := r.Demand.Date.Format("2006-01")
		if _, ok := sums[period]; !ok {
			sums[period] = make(map[domain.Mode]float64)
		}
		seenModes[r.Demand.RealizedMode] = struct{}{}

		saving := 0.0
		if r.Decision != nil {
			saving = r.Decision.SavingPotential
		}
		sums[period][r.Demand.RealizedMode] += saving
	}

	periods := make([]string, 0, len(sums))
	for p := range sums {
		periods = append(periods, p)
	}
	slices.Sort(periods)

	modes := make([]domain.Mode, 0, len(seenModes))
	for _, m := range domain.Modes {
		if _, ok := seenModes[m]; ok {
			modes = append(modes, m)
		}
	}

	values := make(map[domain.Mode][]float64, len(modes))
	for _, m := range modes {
		series := make([]float64, len(periods))
		for i, p := range periods {
			series[i] = sums[p][m]
		}
		values[m] = series
	}

	return domain.SavingSeries{Periods: periods, Modes: modes, Values: values}
}

func modeRank(m domain.Mode) int {
	if i := slices.Index(domain.Modes, m); i >= 0 {
		return i
	}
	return len(domain.Modes)
}
