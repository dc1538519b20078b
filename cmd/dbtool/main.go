package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"mode-allocation-simulator/internal/adapters/repositories"
	"mode-allocation-simulator/internal/adapters/tabular"
	"mode-allocation-simulator/internal/config"
	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/platform/db"
	"mode-allocation-simulator/internal/platform/obs"
	"mode-allocation-simulator/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// dbtool prepares a database cost source: it creates the lane_costs schema
// and replaces its contents with the consolidated cost CSV. With STRICT_LANES
// set, a CSV that defines a lane twice is refused before anything is written.
func main() {
	target := flag.String("target", "", "database to prepare: postgres or sqlite (default COST_SOURCE)")
	seedPath := flag.String("seed", "", "cost CSV to seed from (default COST_FILE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	logger, err := obs.InitLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	if *target == "" {
		*target = cfg.CostSource
	}
	if *seedPath == "" {
		*seedPath = cfg.CostFile
	}

	if err := run(context.Background(), cfg, *target, *seedPath); err != nil {
		logger.Error("dbtool failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, target, seedPath string) error {
	switch strings.ToLower(target) {
	case config.CostSourcePostgres:
		return initAndSeedPostgres(ctx, cfg.DatabaseURL, seedPath, cfg.StrictLanes)
	case config.CostSourceSQLite:
		return initAndSeedSQLite(cfg.DBPath, seedPath, cfg.StrictLanes)
	default:
		return fmt.Errorf("unsupported target %q (want postgres or sqlite)", target)
	}
}

func initAndSeedPostgres(ctx context.Context, databaseURL, seedPath string, strict bool) error {
	if strings.TrimSpace(databaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	zap.L().Info("applying migrations")
	if err := db.Migrate(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	version, dirty, err := db.MigrationVersion(conn)
	if err != nil {
		return err
	}
	zap.L().Info("schema ready", zap.Uint("version", version), zap.Bool("dirty", dirty))

	costs, err := readSeed(seedPath, strict)
	if err != nil {
		return err
	}

	res, err := repositories.NewPostgresCostRepository(conn).ReplaceLaneCosts(ctx, costs)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logSeed(res)
	return nil
}

func initAndSeedSQLite(dbPath, seedPath string, strict bool) error {
	if _, err := readSeed(seedPath, strict); err != nil {
		return err
	}

	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	zap.L().Info("schema ready", zap.String("db", dbPath))

	res, err := repositories.ReplaceFromCSV(conn, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	logSeed(res)
	return nil
}

// readSeed loads the cost CSV and applies the duplicate-lane policy to it.
func readSeed(seedPath string, strict bool) ([]domain.CostRecord, error) {
	costs, warnings, err := tabular.ReadCostsFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("seeding failed: %w", err)
	}
	for _, w := range warnings {
		zap.L().Warn("cost row skipped", zap.String("file", seedPath), zap.String("reason", w))
	}

	policy := services.DuplicateKeepFirst
	if strict {
		policy = services.DuplicateReject
	}
	if _, err := services.BuildLaneIndex(costs, policy); err != nil {
		return nil, fmt.Errorf("seeding failed: %w", err)
	}
	return costs, nil
}

func logSeed(res repositories.SeedResult) {
	for _, k := range res.Duplicates {
		zap.L().Warn("lane defined more than once in cost file; first row stored", zap.Stringer("lane", k))
	}
	zap.L().Info("seeding complete",
		zap.Int("read", res.Read),
		zap.Int("stored", res.Stored),
		zap.Int("duplicate_lanes", len(res.Duplicates)),
	)
}
