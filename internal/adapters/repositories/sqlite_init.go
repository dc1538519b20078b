package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"mode-allocation-simulator/internal/adapters/tabular"

	"go.uber.org/zap"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLaneCostsQuery := `
	CREATE TABLE IF NOT EXISTS lane_costs (
		origin_key TEXT NOT NULL,
		destination_key TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		fleet_cost REAL NOT NULL CHECK (fleet_cost >= 0),
		aggregated_cost REAL NOT NULL CHECK (aggregated_cost >= 0),
		PRIMARY KEY (origin_key, destination_key)
	);
	`

	statements := []string{
		createLaneCostsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the contents of lane_costs with the consolidated cost CSV, in one
// transaction. The first row of a lane is stored; later rows of the same lane
// are reported in the result's Duplicates.
func ReplaceFromCSV(db *sql.DB, csvPath string) (SeedResult, error) {
	if db == nil {
		return SeedResult{}, errors.New("replace lane costs: DB is nil")
	}

	costs, warnings, err := tabular.ReadCostsFile(csvPath)
	if err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: %w", err)
	}
	for _, w := range warnings {
		zap.L().Warn("cost row skipped", zap.String("file", csvPath), zap.String("reason", w))
	}

	kept, dups := firstPerLane(costs)

	tx, err := db.Begin()
	if err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM lane_costs;`); err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: clear table: %w", err)
	}

	query := `
	INSERT INTO lane_costs (
		origin_key,
		destination_key,
		origin,
		destination,
		fleet_cost,
		aggregated_cost
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range kept {
		k := c.Lane()
		if _, err := stmt.Exec(k.Origin, k.Destination, c.Origin, c.Destination, c.FleetCost, c.AggregatedCost); err != nil {
			return SeedResult{}, fmt.Errorf("replace lane costs: insert lane=%q: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{}, fmt.Errorf("replace lane costs: commit tx: %w", err)
	}

	return SeedResult{Read: len(costs), Stored: len(kept), Duplicates: dups}, nil
}
