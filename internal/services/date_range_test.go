package services

import (
	"testing"
	"time"

	"mode-allocation-simulator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demandOn(id string, date *time.Time) domain.DemandRecord {
	return domain.NewDemandRecord(id, date, "FROTA", "", "A", "B")
}

func TestDefaultDateRange(t *testing.T) {
	demands := []domain.DemandRecord{
		demandOn("1", day(2024, 3, 10)),
		demandOn("2", nil),
		demandOn("3", day(2024, 1, 5)),
		demandOn("4", day(2024, 2, 28)),
	}

	r := DefaultDateRange(demands)
	require.NotNil(t, r)
	assert.Equal(t, *day(2024, 1, 5), r.Start)
	assert.Equal(t, *day(2024, 3, 10), r.End)
}

func TestDefaultDateRangeWithoutDates(t *testing.T) {
	assert.Nil(t, DefaultDateRange([]domain.DemandRecord{demandOn("1", nil)}))
	assert.Nil(t, DefaultDateRange(nil))
}

func TestFilterByDateRange(t *testing.T) {
	late := time.Date(2024, 1, 31, 18, 30, 0, 0, time.UTC)
	demands := []domain.DemandRecord{
		demandOn("before", day(2023, 12, 31)),
		demandOn("start", day(2024, 1, 1)),
		demandOn("end-afternoon", &late),
		demandOn("after", day(2024, 2, 1)),
		demandOn("undated", nil),
	}

	got := FilterByDateRange(demands, &domain.DateRange{Start: *day(2024, 1, 1), End: *day(2024, 1, 31)})

	ids := make([]string, 0, len(got))
	for _, d := range got {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"start", "end-afternoon", "undated"}, ids)
}

func TestFilterByDateRangeNilKeepsAll(t *testing.T) {
	demands := []domain.DemandRecord{demandOn("1", day(2024, 1, 1)), demandOn("2", nil)}
	assert.Len(t, FilterByDateRange(demands, nil), 2)
}

func TestResolveDateRange(t *testing.T) {
	demands := []domain.DemandRecord{
		demandOn("1", day(2024, 1, 5)),
		demandOn("2", day(2024, 3, 10)),
	}

	r := ResolveDateRange(demands, nil, nil)
	require.NotNil(t, r)
	assert.Equal(t, *day(2024, 1, 5), r.Start)

	r = ResolveDateRange(demands, day(2024, 2, 1), nil)
	require.NotNil(t, r)
	assert.Equal(t, *day(2024, 2, 1), r.Start)
	assert.Equal(t, *day(2024, 3, 10), r.End)

	r = ResolveDateRange(demands, nil, day(2024, 2, 1))
	require.NotNil(t, r)
	assert.Equal(t, *day(2024, 1, 5), r.Start)
	assert.Equal(t, *day(2024, 2, 1), r.End)
}

func TestResolveDateRangeWithoutDatedDemands(t *testing.T) {
	undated := []domain.DemandRecord{demandOn("1", nil)}

	assert.Nil(t, ResolveDateRange(undated, nil, nil))

	r := ResolveDateRange(undated, day(2024, 2, 1), nil)
	require.NotNil(t, r)
	assert.Equal(t, r.Start, r.End)
}
