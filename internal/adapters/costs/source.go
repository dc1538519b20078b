package costs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mode-allocation-simulator/internal/adapters/repositories"
	"mode-allocation-simulator/internal/adapters/tabular"
	"mode-allocation-simulator/internal/config"
	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/platform/db"
	"mode-allocation-simulator/internal/ports"

	"go.uber.org/zap"
)

// Open returns the cost repository selected by cfg.CostSource and a func
// that releases it. Database drivers must be registered by the caller.
//
// A missing CSV fails with domain.ErrMissingFile and a CSV without the
// required columns fails with *domain.SchemaError, so callers can halt before
// any analysis runs. Database sources apply their schema and, when
// cfg.CostFile exists, replace their lane costs with its contents.
func Open(ctx context.Context, cfg *config.Config) (ports.CostRepository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CostSource {
	case config.CostSourceCSV:
		if _, err := os.Stat(cfg.CostFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, nil, fmt.Errorf("open cost source %q: %w", cfg.CostFile, domain.ErrMissingFile)
			}
			return nil, nil, fmt.Errorf("open cost source: stat %q: %w", cfg.CostFile, err)
		}
		// The file is re-read on every run; this read only validates it.
		if _, _, err := tabular.ReadCostsFile(cfg.CostFile); err != nil {
			return nil, nil, fmt.Errorf("open cost source: %w", err)
		}
		return tabular.NewCSVCostRepository(cfg.CostFile), noop, nil

	case config.CostSourceSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("open cost source: create %q: %w", dir, err)
			}
		}
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open cost source: %w", err)
		}
		repo := repositories.NewSqliteCostRepository(conn)
		if err := initAndSeed(conn, repo, cfg.CostFile); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open cost source: %w", err)
		}
		return repo, conn.Close, nil

	case config.CostSourcePostgres:
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open cost source: %w", err)
		}
		if err := db.Migrate(conn); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open cost source: %w", err)
		}
		repo := repositories.NewPostgresCostRepository(conn)
		if err := reseedPostgres(ctx, repo, cfg.CostFile); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("open cost source: %w", err)
		}
		return repo, conn.Close, nil

	default:
		return nil, nil, fmt.Errorf("open cost source: unknown source %q", cfg.CostSource)
	}
}

func initAndSeed(conn *sql.DB, repo *repositories.SqliteCostRepository, csvPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(csvPath); err != nil {
		zap.L().Info("no cost file to seed from; using stored lane costs", zap.String("file", csvPath))
		return nil
	}

	res, err := repositories.ReplaceFromCSV(conn, csvPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	repo.Duplicates = res.Duplicates
	logSeed(csvPath, res)
	return nil
}

func reseedPostgres(ctx context.Context, repo *repositories.PostgresCostRepository, csvPath string) error {
	if _, err := os.Stat(csvPath); err != nil {
		zap.L().Info("no cost file to seed from; using stored lane costs", zap.String("file", csvPath))
		return nil
	}

	costs, warnings, err := tabular.ReadCostsFile(csvPath)
	if err != nil {
		return fmt.Errorf("reseed lane costs: %w", err)
	}
	for _, w := range warnings {
		zap.L().Warn("cost row skipped", zap.String("file", csvPath), zap.String("reason", w))
	}

	res, err := repo.ReplaceLaneCosts(ctx, costs)
	if err != nil {
		return fmt.Errorf("reseed lane costs: %w", err)
	}
	repo.Duplicates = res.Duplicates
	logSeed(csvPath, res)
	return nil
}

func logSeed(csvPath string, res repositories.SeedResult) {
	for _, k := range res.Duplicates {
		zap.L().Warn("lane defined more than once in cost file; first row stored",
			zap.String("file", csvPath), zap.Stringer("lane", k))
	}
	zap.L().Info("lane costs seeded",
		zap.String("file", csvPath),
		zap.Int("read", res.Read),
		zap.Int("stored", res.Stored),
		zap.Int("duplicate_lanes", len(res.Duplicates)),
	)
}
