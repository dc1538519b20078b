package handlers

import (
	"net/http"

	"mode-allocation-simulator/internal/api/dto"
	"mode-allocation-simulator/internal/ports"
)

// LaneHandler exposes the reference lane costs read-only.
type LaneHandler struct {
	Costs ports.CostRepository
}

func (h *LaneHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	costs, err := h.Costs.ListLaneCosts(r.Context())
	if err != nil {
		logFailure(r, "list lane costs failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLanesResponse{
		Lanes: make([]dto.LaneResponse, 0, len(costs)),
	}
	for _, c := range costs {
		res.Lanes = append(res.Lanes, dto.LaneResponse{
			Origin:         c.Origin,
			Destination:    c.Destination,
			LaneKey:        c.Lane().String(),
			FleetCost:      c.FleetCost,
			AggregatedCost: c.AggregatedCost,
			BestMode:       string(c.BestMode()),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
