package dto

import "time"

type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DetailRowResponse is one evaluated shipment. Cost and decision fields are
// null for shipments whose lane has no reference cost.
type DetailRowResponse struct {
	DemandID          string   `json:"demand_id"`
	Date              *string  `json:"date"`
	Client            string   `json:"client"`
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	FleetCost         *float64 `json:"fleet_cost"`
	AggregatedCost    *float64 `json:"aggregated_cost"`
	RealizedModeLabel string   `json:"realized_mode_label"`
	RealizedMode      string   `json:"realized_mode"`
	BestMode          *string  `json:"best_mode"`
	AllocationError   *bool    `json:"allocation_error"`
	SavingPotential   *float64 `json:"saving_potential"`
}

type PeriodSummaryResponse struct {
	Period               string  `json:"period"`
	Mode                 string  `json:"mode"`
	TripCount            int     `json:"trip_count"`
	PricedCount          int     `json:"priced_count"`
	TotalFleetCost       float64 `json:"total_fleet_cost"`
	TotalAggregatedCost  float64 `json:"total_aggregated_cost"`
	TotalSavingPotential float64 `json:"total_saving_potential"`
}

type MetricsResponse struct {
	TotalTrips           int            `json:"total_trips"`
	TripsByMode          map[string]int `json:"trips_by_mode"`
	PricedTrips          int            `json:"priced_trips"`
	UnpricedTrips        int            `json:"unpriced_trips"`
	AllocationErrors     int            `json:"allocation_errors"`
	RealizedCost         float64        `json:"realized_cost"`
	OptimizedCost        float64        `json:"optimized_cost"`
	TotalSavingPotential float64        `json:"total_saving_potential"`
}

type SavingSeriesResponse struct {
	Periods []string             `json:"periods"`
	Series  map[string][]float64 `json:"series"`
}

type AnalysisResponse struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	View        string                  `json:"view"`
	DateRange   *DateRangeResponse      `json:"date_range"`
	Metrics     MetricsResponse         `json:"metrics"`
	Records     []DetailRowResponse     `json:"records,omitempty"`
	Summaries   []PeriodSummaryResponse `json:"summaries,omitempty"`
	Unscheduled int                     `json:"unscheduled"`
	Savings     *SavingSeriesResponse   `json:"savings,omitempty"`
	Warnings    []string                `json:"warnings"`
}

// ErrorResponse carries the offending columns or lanes when a request fails
// on the shape of its data.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Lanes   []string `json:"lanes,omitempty"`
}
