package domain

import "time"

// PeriodSummary aggregates the shipments of one calendar month and realized mode.
// TripCount includes unpriced shipments; cost and saving totals only cover
// priced ones (PricedCount).
type PeriodSummary struct {
	Year                 int
	Month                time.Month
	Mode                 Mode
	TripCount            int
	PricedCount          int
	TotalFleetCost       float64
	TotalAggregatedCost  float64
	TotalSavingPotential float64
}

// Period formats the summary's month as "YYYY-MM".
func (p PeriodSummary) Period() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// Aggregation is the grouped view of a run. Unscheduled counts undated
// shipments, which are left out of every period.
type Aggregation struct {
	Summaries   []PeriodSummary
	Unscheduled int
}

// Metrics are the headline indicators of a run.
type Metrics struct {
	TotalTrips           int
	TripsByMode          map[Mode]int
	PricedTrips          int
	UnpricedTrips        int
	AllocationErrors     int
	RealizedCost         float64
	OptimizedCost        float64
	TotalSavingPotential float64
}

// SavingSeries is the monthly saving potential per realized mode, zero-filled
// so every mode has one value per period.
type SavingSeries struct {
	Periods []string
	Modes   []Mode
	Values  map[Mode][]float64
}

// DateRange is an inclusive calendar-date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains compares calendar dates only; the time of day is ignored.
func (r DateRange) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(truncateDay(r.Start)) && !d.After(truncateDay(r.End))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AnalysisReport is everything a run produces for presentation and export.
type AnalysisReport struct {
	RunID       string
	GeneratedAt time.Time
	DateRange   *DateRange
	Records     []EvaluatedRecord
	Summaries   []PeriodSummary
	Unscheduled int
	Metrics     Metrics
	Savings     SavingSeries
	Warnings    []string
}
