package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/platform/obs"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var laneCostColumns = []string{"origin", "destination", "fleet_cost", "aggregated_cost"}

// Postgres-backed implementation of the CostRepository, LaneLookup and
// DuplicateReporter ports. The lane_costs table is created by the embedded
// migrations in platform/db.
type PostgresCostRepository struct {
	DB *sql.DB
	// Duplicates is set by the last ReplaceLaneCosts on this repository.
	Duplicates []domain.LaneKey
}

func NewPostgresCostRepository(db *sql.DB) *PostgresCostRepository {
	return &PostgresCostRepository{DB: db}
}

func (p *PostgresCostRepository) ListLaneCosts(ctx context.Context) (_ []domain.CostRecord, err error) {
	defer obs.Time(ctx, "costs.postgres.ListLaneCosts")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres cost repository: DB is nil")
	}

	q, args, err := listLaneCostsQuery()
	if err != nil {
		return nil, fmt.Errorf("list lane costs: build query: %w", err)
	}

	rows, err := p.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list lane costs: query lane_costs table: %w", err)
	}
	defer rows.Close()

	return scanCosts(rows, "list lane costs")
}

func (p *PostgresCostRepository) DuplicateLanes() []domain.LaneKey { return p.Duplicates }

func (p *PostgresCostRepository) FindLanes(
	ctx context.Context,
	lanes []domain.LaneKey,
) (_ map[domain.LaneKey]domain.CostRecord, err error) {
	defer obs.Time(ctx, "costs.postgres.FindLanes")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres cost repository: DB is nil")
	}

	keys := uniqueLaneKeys(lanes)
	if len(keys) == 0 {
		return map[domain.LaneKey]domain.CostRecord{}, nil
	}

	found := make(map[domain.LaneKey]domain.CostRecord, len(keys))
	for _, chunk := range chunkLanes(keys, findLanesChunk) {
		q, args, err := findLanesQuery(chunk)
		if err != nil {
			return nil, fmt.Errorf("find lanes: build query: %w", err)
		}

		rows, err := p.DB.QueryContext(ctx, q, args...)
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

// ReplaceLaneCosts replaces the contents of lane_costs with costs in one
// transaction. The first row of a lane is stored; later rows of the same lane
// are reported in the result's Duplicates.
func (p *PostgresCostRepository) ReplaceLaneCosts(ctx context.Context, costs []domain.CostRecord) (_ SeedResult, err error) {
	defer obs.Time(ctx, "costs.postgres.ReplaceLaneCosts")(&err)

	if p.DB == nil {
		return SeedResult{}, errors.New("postgres cost repository: DB is nil")
	}

	kept, dups := firstPerLane(costs)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q, args, err := clearLaneCostsQuery()
	if err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: build query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: clear table: %w", err)
	}

	for _, c := range kept {
		q, args, err := insertLaneCostQuery(c)
		if err != nil {
			return SeedResult{}, fmt.Errorf("replace lane costs: build query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return SeedResult{}, fmt.Errorf("replace lane costs lane=%q: %w", c.Lane(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs commit: %w", err)
	}

	return SeedResult{Read: len(costs), Stored: len(kept), Duplicates: dups}, nil
}

func listLaneCostsQuery() (string, []any, error) {
	return psql.Select(laneCostColumns...).
		From("lane_costs").
		OrderBy("origin_key", "destination_key").
		ToSql()
}

func findLanesQuery(keys []domain.LaneKey) (string, []any, error) {
	where, args := lanePairsClause(keys)
	return psql.Select(laneCostColumns...).
		From("lane_costs").
		Where(sq.Expr(where, args...)).
		ToSql()
}

func clearLaneCostsQuery() (string, []any, error) {
	return psql.Delete("lane_costs").ToSql()
}

func insertLaneCostQuery(c domain.CostRecord) (string, []any, error) {
	k := c.Lane()
	return psql.Insert("lane_costs").
		Columns("origin_key", "destination_key", "origin", "destination", "fleet_cost", "aggregated_cost").
		Values(k.Origin, k.Destination, c.Origin, c.Destination, c.FleetCost, c.AggregatedCost).
		ToSql()
}
