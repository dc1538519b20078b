package services

import (
	"time"

	"mode-allocation-simulator/internal/domain"
)

// DefaultDateRange spans the earliest and latest dated demands.
// It returns nil when no demand carries a date.
func DefaultDateRange(demands []domain.DemandRecord) *domain.DateRange {
	var r *domain.DateRange
	for _, d := range demands {
		if d.Date == nil {
			continue
		}
		if r == nil {
			r = &domain.DateRange{Start: *d.Date, End: *d.Date}
			continue
		}
		if d.Date.Before(r.Start) {
			r.Start = *d.Date
		}
		if d.Date.After(r.End) {
			r.End = *d.Date
		}
	}
	return r
}

// FilterByDateRange keeps dated demands inside r (inclusive, by calendar
// date) and every undated demand. A nil range keeps everything.
func FilterByDateRange(demands []domain.DemandRecord, r *domain.DateRange) []domain.DemandRecord {
	out := make([]domain.DemandRecord, 0, len(demands))
	for _, d := range demands {
		if r != nil && d.Date != nil && !r.Contains(*d.Date) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ResolveDateRange fills the bounds a caller left unset from the demands'
// own span. It returns nil when neither bound is set and no demand is dated.
func ResolveDateRange(demands []domain.DemandRecord, start, end *time.Time) *domain.DateRange {
	def := DefaultDateRange(demands)
	if start == nil && end == nil {
		return def
	}

	var r domain.DateRange
	if def != nil {
		r = *def
	}
	if start != nil {
		r.Start = *start
	}
	if end != nil {
		r.End = *end
	}
	if def == nil {
		if start == nil {
			r.Start = r.End
		}
		if end == nil {
			r.End = r.Start
		}
	}
	return &r
}
