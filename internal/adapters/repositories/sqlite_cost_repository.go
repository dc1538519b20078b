package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/platform/obs"
)

// SQLite-backed implementation of the CostRepository, LaneLookup and
// DuplicateReporter ports. Lanes are stored under their normalized origin and
// destination, one row per lane.
type SqliteCostRepository struct {
	DB *sql.DB
	// Duplicates is set by the last reseed of the table.
	Duplicates []domain.LaneKey
}

func NewSqliteCostRepository(db *sql.DB) *SqliteCostRepository {
	return &SqliteCostRepository{DB: db}
}

// Return all lane costs stored in the database.
func (s *SqliteCostRepository) ListLaneCosts(ctx context.Context) (_ []domain.CostRecord, err error) {
	defer obs.Time(ctx, "costs.sqlite.ListLaneCosts")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite cost repository: DB is nil")
	}

	query := `
	SELECT
		origin,
		destination,
		fleet_cost,
		aggregated_cost
	FROM lane_costs
	ORDER BY origin_key, destination_key;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lane costs: query lane_costs table: %w", err)
	}
	defer rows.Close()

	return scanCosts(rows, "list lane costs")
}

func (s *SqliteCostRepository) DuplicateLanes() []domain.LaneKey { return s.Duplicates }

// Fetch the stored costs for the given lanes. Lanes absent from the table are
// absent from the result.
func (s *SqliteCostRepository) FindLanes(
	ctx context.Context,
	lanes []domain.LaneKey,
) (_ map[domain.LaneKey]domain.CostRecord, err error) {
	defer obs.Time(ctx, "costs.sqlite.FindLanes")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite cost repository: DB is nil")
	}

	keys := uniqueLaneKeys(lanes)
	if len(keys) == 0 {
		return map[domain.LaneKey]domain.CostRecord{}, nil
	}

	found := make(map[domain.LaneKey]domain.CostRecord, len(keys))
	for _, chunk := range chunkLanes(keys, findLanesChunk) {
		where, args := lanePairsClause(chunk)
		q := `
		SELECT
			origin,
			destination,
			fleet_cost,
			aggregated_cost
		FROM lane_costs
		WHERE ` + where + `;`

		rows, err := s.DB.QueryContext(ctx, q, args...)
		if err != nil {
			return nil, fmt.Errorf("find lanes: query lane_costs table: %w", err)
		}
		costs, err := scanCosts(rows, "find lanes")
		_ = rows.Close()
		if err != nil {
			return nil, err
		}
		indexCosts(found, costs)
	}
	return found, nil
}

func scanCosts(rows *sql.Rows, op string) ([]domain.CostRecord, error) {
	costs := make([]domain.CostRecord, 0, 64)
	for rows.Next() {
		var origin, destination string
		var fleet, aggregated float64
		if err := rows.Scan(&origin, &destination, &fleet, &aggregated); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		c, err := domain.NewCostRecord(origin, destination, fleet, aggregated)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		costs = append(costs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}
	return costs, nil
}

func indexCosts(out map[domain.LaneKey]domain.CostRecord, costs []domain.CostRecord) {
	for _, c := range costs {
		if _, ok := out[c.Lane()]; !ok {
			out[c.Lane()] = c
		}
	}
}
