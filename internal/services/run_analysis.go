package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/platform/obs"
	"mode-allocation-simulator/internal/ports"

	"github.com/google/uuid"
)

// ErrInvalidDateRange means the requested range ends before it starts.
var ErrInvalidDateRange = errors.New("invalid date range")

// AnalysisRequest is the immutable input of one analysis run.
type AnalysisRequest struct {
	Demands []domain.DemandRecord
	// DateRange filters dated demands; nil spans all dated demands.
	DateRange       *domain.DateRange
	DuplicatePolicy DuplicatePolicy
	// LoadWarnings are carried into the report unchanged.
	LoadWarnings []string
}

// RunAnalysis filters, joins, evaluates and aggregates one demand table
// against the reference lane costs.
func RunAnalysis(
	ctx context.Context,
	req AnalysisRequest,
	costs ports.CostRepository,
) (_ *domain.AnalysisReport, err error) {
	defer obs.Time(ctx, "services.RunAnalysis")(&err)

	if costs == nil {
		return nil, errors.New("run analysis: cost repository is nil")
	}

	dateRange := req.DateRange
	if dateRange == nil {
		dateRange = DefaultDateRange(req.Demands)
	}
	if dateRange != nil && dateRange.End.Before(dateRange.Start) {
		return nil, fmt.Errorf(
			"run analysis: %w: end %s is before start %s",
			ErrInvalidDateRange, dateRange.End.Format(time.DateOnly), dateRange.Start.Format(time.DateOnly),
		)
	}

	demands := FilterByDateRange(req.Demands, dateRange)

	index, indexWarnings, err := loadLaneIndex(ctx, costs, demands, req.DuplicatePolicy)
	if err != nil {
		return nil, fmt.Errorf("run analysis: %w", err)
	}

	records, evalWarnings, err := EvaluateAll(JoinLanes(demands, index))
	if err != nil {
		return nil, fmt.Errorf("run analysis: %w", err)
	}

	agg := Aggregate(records)

	warnings := make([]string, 0, len(req.LoadWarnings)+len(indexWarnings)+len(evalWarnings))
	warnings = append(warnings, req.LoadWarnings...)
	warnings = append(warnings, indexWarnings...)
	warnings = append(warnings, evalWarnings...)

	return &domain.AnalysisReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		DateRange:   dateRange,
		Records:     records,
		Summaries:   agg.Summaries,
		Unscheduled: agg.Unscheduled,
		Metrics:     ComputeMetrics(records),
		Savings:     MonthlySavings(records),
		Warnings:    warnings,
	}, nil
}

// loadLaneIndex prefers a direct lane lookup when the repository supports it,
// so database-backed sources only return the lanes this run needs.
func loadLaneIndex(
	ctx context.Context,
	costs ports.CostRepository,
	demands []domain.DemandRecord,
	policy DuplicatePolicy,
) (*LaneIndex, []string, error) {
	if lookup, ok := costs.(ports.LaneLookup); ok {
		seen := make(map[domain.LaneKey]struct{}, len(demands))
		lanes := make([]domain.LaneKey, 0, len(demands))
		for _, d := range demands {
			k := d.Lane()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			lanes = append(lanes, k)
		}

		found, err := lookup.FindLanes(ctx, lanes)
		if err != nil {
			return nil, nil, fmt.Errorf("find lanes: %w", err)
		}

		// Lookup sources hold one row per lane; duplicates were resolved when
		// they loaded their table and are judged against the policy here.
		ix := &LaneIndex{costs: found}
		if r, ok := costs.(ports.DuplicateReporter); ok {
			ix.Duplicates = r.DuplicateLanes()
		}
		if policy == DuplicateReject && len(ix.Duplicates) > 0 {
			return nil, nil, fmt.Errorf("find lanes: %w", &domain.DuplicateLaneError{Lanes: ix.Duplicates})
		}
		return ix, duplicateWarnings(ix.Duplicates), nil
	}

	all, err := costs.ListLaneCosts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list lane costs: %w", err)
	}

	ix, err := BuildLaneIndex(all, policy)
	if err != nil {
		return nil, nil, err
	}

	return ix, duplicateWarnings(ix.Duplicates), nil
}

func duplicateWarnings(lanes []domain.LaneKey) []string {
	warnings := make([]string, 0, len(lanes))
	for _, k := range lanes {
		warnings = append(warnings, fmt.Sprintf("lane %s defined more than once in cost reference; first occurrence used", k))
	}
	return warnings
}
