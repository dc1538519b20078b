package costs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"mode-allocation-simulator/internal/adapters/repositories"
	"mode-allocation-simulator/internal/adapters/tabular"
	"mode-allocation-simulator/internal/config"
	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/ports"
	"mode-allocation-simulator/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const costCSV = "ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO\nSão Paulo,Santos,100,150\n"

func writeCostCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "custos.csv")
	require.NoError(t, os.WriteFile(path, []byte(costCSV), 0o644))
	return path
}

func TestOpenCSV(t *testing.T) {
	cfg := &config.Config{CostSource: config.CostSourceCSV, CostFile: writeCostCSV(t, t.TempDir())}

	repo, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &tabular.CSVCostRepository{}, repo)
	costs, err := repo.ListLaneCosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, costs, 1)
}

func TestOpenCSVMissingFile(t *testing.T) {
	cfg := &config.Config{CostSource: config.CostSourceCSV, CostFile: filepath.Join(t.TempDir(), "absent.csv")}

	_, _, err := Open(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestOpenCSVMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custos.csv")
	require.NoError(t, os.WriteFile(path, []byte("ORIGEM,DESTINO,CUSTO_FROTA\nA,B,1\n"), 0o644))

	_, _, err := Open(context.Background(), &config.Config{CostSource: config.CostSourceCSV, CostFile: path})

	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"CUSTO_AGREGADO"}, schemaErr.Missing)
}

func TestOpenSQLiteSeedsFromCostFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		CostSource: config.CostSourceSQLite,
		CostFile:   writeCostCSV(t, dir),
		DBPath:     filepath.Join(dir, "data", "costs.db"),
	}

	repo, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &repositories.SqliteCostRepository{}, repo)
	costs, err := repo.ListLaneCosts(context.Background())
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, domain.NewLaneKey("SAO PAULO", "SANTOS"), costs[0].Lane())
}

func TestOpenSQLiteWithoutCostFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		CostSource: config.CostSourceSQLite,
		CostFile:   filepath.Join(dir, "absent.csv"),
		DBPath:     filepath.Join(dir, "costs.db"),
	}

	repo, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	costs, err := repo.ListLaneCosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestOpenUnknownSource(t *testing.T) {
	_, _, err := Open(context.Background(), &config.Config{CostSource: "s3"})
	assert.Error(t, err)
}

func TestOpenSQLiteReseedsOnEveryOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		CostSource: config.CostSourceSQLite,
		CostFile:   filepath.Join(dir, "custos.csv"),
		DBPath:     filepath.Join(dir, "costs.db"),
	}
	lane := domain.NewLaneKey("A", "B")
	demands := []domain.DemandRecord{domain.NewDemandRecord("1", nil, "FROTA", "", "A", "B")}

	require.NoError(t, os.WriteFile(cfg.CostFile, []byte("ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO\nA,B,100,150\n"), 0o644))
	repo, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, closeFn())
	assert.Empty(t, repo.(ports.DuplicateReporter).DuplicateLanes())

	require.NoError(t, os.WriteFile(cfg.CostFile, []byte("ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO\nA,B,300,150\nA,B,1,2\n"), 0o644))
	repo, closeFn, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, []domain.LaneKey{lane}, repo.(ports.DuplicateReporter).DuplicateLanes())

	report, err := services.RunAnalysis(context.Background(), services.AnalysisRequest{Demands: demands}, repo)
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	require.True(t, report.Records[0].Priced())
	assert.Equal(t, 300.0, report.Records[0].Cost.FleetCost, "edits to the cost file reach the next run")
	assert.Equal(t, domain.ModeAggregated, report.Records[0].Decision.BestMode)
	assert.NotEmpty(t, report.Warnings)

	_, err = services.RunAnalysis(context.Background(), services.AnalysisRequest{
		Demands:         demands,
		DuplicatePolicy: services.DuplicateReject,
	}, repo)
	var dupErr *domain.DuplicateLaneError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, []domain.LaneKey{lane}, dupErr.Lanes)
}
