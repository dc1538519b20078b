package api

import (
	"net/http"

	"mode-allocation-simulator/internal/api/handlers"
	"mode-allocation-simulator/internal/ports"
	"mode-allocation-simulator/internal/services"
)

// RouterOptions tune how uploads are analyzed.
type RouterOptions struct {
	DuplicatePolicy services.DuplicatePolicy
	MaxUploadBytes  int64
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(costs ports.CostRepository, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	laneHandler := &handlers.LaneHandler{Costs: costs}
	analysisHandler := &handlers.AnalysisHandler{
		Costs:           costs,
		DuplicatePolicy: opts.DuplicatePolicy,
		MaxUploadBytes:  opts.MaxUploadBytes,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/lanes", laneHandler.List)
	mux.HandleFunc("/analyses", analysisHandler.Analyze)
	mux.HandleFunc("/analyses/export", analysisHandler.Export)
	mux.HandleFunc("/analyses/chart", analysisHandler.Chart)

	return requestIDMiddleware(loggingMiddleware(mux))
}
