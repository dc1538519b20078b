package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mode-allocation-simulator/internal/adapters/charts"
	"mode-allocation-simulator/internal/adapters/tabular"
	"mode-allocation-simulator/internal/api/dto"
	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/ports"
	"mode-allocation-simulator/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalysisHandler runs the allocation analysis on an uploaded demand table.
// Every endpoint takes the same multipart form: "file" plus optional "start",
// "end" (YYYY-MM-DD) and "view".
type AnalysisHandler struct {
	Costs           ports.CostRepository
	DuplicatePolicy services.DuplicatePolicy
	MaxUploadBytes  int64
}

// Analyze returns the report as JSON.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	report, view, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, toAnalysisResponse(report, view))
}

// Export returns the detail table as an xlsx download.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := tabular.WriteDetailXLSX(&buf, report.Records); err != nil {
		logFailure(r, "export detail failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tabular.ExportFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Chart returns the monthly saving chart as an HTML page.
func (h *AnalysisHandler) Chart(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.run(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderHTML(&buf, report.Savings); err != nil {
		if errors.Is(err, charts.ErrEmptySeries) {
			writeError(w, r, http.StatusUnprocessableEntity, "no dated shipments in the selected period")
			return
		}
		logFailure(r, "render chart failed", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// run validates the form, reads the demand table and runs the analysis.
// On failure it has already written the response.
func (h *AnalysisHandler) run(w http.ResponseWriter, r *http.Request) (*domain.AnalysisReport, services.View, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return nil, "", false
	}

	if h.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
			return nil, "", false
		}
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return nil, "", false
	}

	view, err := services.ParseView(r.FormValue("view"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, "", false
	}
	start, err := parseDateParam(r.FormValue("start"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "start: "+err.Error())
		return nil, "", false
	}
	end, err := parseDateParam(r.FormValue("end"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "end: "+err.Error())
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(w, r, http.StatusBadRequest, domain.ErrMissingInput.Error())
			return nil, "", false
		}
		writeError(w, r, http.StatusBadRequest, "invalid file upload")
		return nil, "", false
	}
	defer file.Close()

	format, err := tabular.DetectFormat(header.Filename)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, "", false
	}

	demands, warnings, err := tabular.ReadDemands(file, format)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			writeJSON(w, r, http.StatusUnprocessableEntity, dto.ErrorResponse{
				Error:   schemaErr.Error(),
				Missing: schemaErr.Missing,
			})
			return nil, "", false
		}
		writeError(w, r, http.StatusBadRequest, "could not read demand file: "+err.Error())
		return nil, "", false
	}

	req := services.AnalysisRequest{
		Demands:         demands,
		DateRange:       services.ResolveDateRange(demands, start, end),
		DuplicatePolicy: h.DuplicatePolicy,
		LoadWarnings:    warnings,
	}

	report, err := services.RunAnalysis(r.Context(), req, h.Costs)
	if err != nil {
		var dupErr *domain.DuplicateLaneError
		var schemaErr *domain.SchemaError
		switch {
		case errors.Is(err, services.ErrInvalidDateRange):
			writeError(w, r, http.StatusBadRequest, "end date is before start date")
		// The demand table was already read, so these come from the cost reference.
		case errors.As(err, &schemaErr):
			logFailure(r, "cost reference unusable", err)
			writeJSON(w, r, http.StatusServiceUnavailable, dto.ErrorResponse{
				Error:   schemaErr.Error(),
				Missing: schemaErr.Missing,
			})
		case errors.Is(err, domain.ErrMissingFile):
			logFailure(r, "cost reference unusable", err)
			writeError(w, r, http.StatusServiceUnavailable, domain.ErrMissingFile.Error())
		case errors.As(err, &dupErr):
			lanes := make([]string, 0, len(dupErr.Lanes))
			for _, k := range dupErr.Lanes {
				lanes = append(lanes, k.String())
			}
			writeJSON(w, r, http.StatusConflict, dto.ErrorResponse{Error: "duplicate lanes in cost reference", Lanes: lanes})
		default:
			logFailure(r, "run analysis failed", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return nil, "", false
	}

	return report, view, true
}

func parseDateParam(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return &t, nil
}

func toAnalysisResponse(report *domain.AnalysisReport, view services.View) dto.AnalysisResponse {
	res := dto.AnalysisResponse{
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt,
		View:        string(view),
		Metrics:     toMetricsResponse(report.Metrics),
		Unscheduled: report.Unscheduled,
		Warnings:    report.Warnings,
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	if report.DateRange != nil {
		res.DateRange = &dto.DateRangeResponse{
			Start: report.DateRange.Start.Format(time.DateOnly),
			End:   report.DateRange.End.Format(time.DateOnly),
		}
	}

	if view.ShowDetail() {
		res.Records = make([]dto.DetailRowResponse, 0, len(report.Records))
		for _, rec := range report.Records {
			res.Records = append(res.Records, toDetailRow(rec))
		}
	}

	if view.ShowSummary() {
		res.Summaries = make([]dto.PeriodSummaryResponse, 0, len(report.Summaries))
		for _, s := range report.Summaries {
			res.Summaries = append(res.Summaries, dto.PeriodSummaryResponse{
				Period:               s.Period(),
				Mode:                 string(s.Mode),
				TripCount:            s.TripCount,
				PricedCount:          s.PricedCount,
				TotalFleetCost:       s.TotalFleetCost,
				TotalAggregatedCost:  s.TotalAggregatedCost,
				TotalSavingPotential: s.TotalSavingPotential,
			})
		}

		series := make(map[string][]float64, len(report.Savings.Modes))
		for _, m := range report.Savings.Modes {
			series[string(m)] = report.Savings.Values[m]
		}
		res.Savings = &dto.SavingSeriesResponse{Periods: report.Savings.Periods, Series: series}
	}

	return res
}

func toDetailRow(rec domain.EvaluatedRecord) dto.DetailRowResponse {
	d := rec.Demand
	row := dto.DetailRowResponse{
		DemandID:          d.ID,
		Client:            d.Client,
		Origin:            d.Origin,
		Destination:       d.Destination,
		RealizedModeLabel: d.RealizedLabel,
		RealizedMode:      string(d.RealizedMode),
	}

	if d.Date != nil {
		s := d.Date.Format(time.DateOnly)
		row.Date = &s
	}
	if rec.Cost != nil {
		fleet, aggregated := rec.Cost.FleetCost, rec.Cost.AggregatedCost
		row.FleetCost = &fleet
		row.AggregatedCost = &aggregated
	}
	if rec.Decision != nil {
		best := string(rec.Decision.BestMode)
		mismatch := rec.Decision.AllocationError
		saving := rec.Decision.SavingPotential
		row.BestMode = &best
		row.AllocationError = &mismatch
		row.SavingPotential = &saving
	}
	return row
}

func toMetricsResponse(m domain.Metrics) dto.MetricsResponse {
	byMode := make(map[string]int, len(m.TripsByMode))
	for mode, n := range m.TripsByMode {
		byMode[string(mode)] = n
	}
	return dto.MetricsResponse{
		TotalTrips:           m.TotalTrips,
		TripsByMode:          byMode,
		PricedTrips:          m.PricedTrips,
		UnpricedTrips:        m.UnpricedTrips,
		AllocationErrors:     m.AllocationErrors,
		RealizedCost:         m.RealizedCost,
		OptimizedCost:        m.OptimizedCost,
		TotalSavingPotential: m.TotalSavingPotential,
	}
}
