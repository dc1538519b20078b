package dto

type LaneResponse struct {
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	LaneKey        string  `json:"lane_key"`
	FleetCost      float64 `json:"fleet_cost"`
	AggregatedCost float64 `json:"aggregated_cost"`
	BestMode       string  `json:"best_mode"`
}

type ListLanesResponse struct {
	Lanes []LaneResponse `json:"lanes"`
}
