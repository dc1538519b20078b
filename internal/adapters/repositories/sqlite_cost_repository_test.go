package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"mode-allocation-simulator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const seedCSV = `ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO
São Paulo - SP,Rio de Janeiro - RJ,100,150
Curitiba - PR,Santos - SP,"1.234,50",980
SAO PAULO - SP,RIO DE JANEIRO - RJ,999,1
Campinas - SP,Belo Horizonte - MG,,300
`

func newSeededDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()

	db, err := sql.Open("sqlite", filepath.Join(dir, "costs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(db))

	csvPath := filepath.Join(dir, "custos.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(seedCSV), 0o644))

	res, err := ReplaceFromCSV(db, csvPath)
	require.NoError(t, err)
	require.Equal(t, 2, res.Stored, "duplicate and invalid rows are not stored")
	require.Equal(t, []domain.LaneKey{domain.NewLaneKey("SAO PAULO - SP", "RIO DE JANEIRO - RJ")}, res.Duplicates)

	return db
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "costs.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, InitSchema(db))
	require.NoError(t, InitSchema(db))
}

func TestInitSchemaNilDB(t *testing.T) {
	assert.Error(t, InitSchema(nil))
}

func TestReplaceFromCSVMissingFile(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "costs.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, InitSchema(db))

	_, err = ReplaceFromCSV(db, filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestReplaceFromCSVReplacesStoredLanes(t *testing.T) {
	db := newSeededDB(t)

	csvPath := filepath.Join(t.TempDir(), "again.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO\nsão paulo - sp,rio de janeiro - rj,300,150\n"), 0o644))

	res, err := ReplaceFromCSV(db, csvPath)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stored)
	assert.Empty(t, res.Duplicates)

	costs, err := NewSqliteCostRepository(db).ListLaneCosts(context.Background())
	require.NoError(t, err)
	require.Len(t, costs, 1, "lanes missing from the new file are removed")
	assert.Equal(t, 300.0, costs[0].FleetCost)
}

func TestReplaceFromCSVBadHeaderKeepsTable(t *testing.T) {
	db := newSeededDB(t)

	csvPath := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("ORIGEM,DESTINO,CUSTO_FROTA\nA,B,1\n"), 0o644))

	_, err := ReplaceFromCSV(db, csvPath)
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"CUSTO_AGREGADO"}, schemaErr.Missing)

	costs, err := NewSqliteCostRepository(db).ListLaneCosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, costs, 2)
}

func TestSqliteCostRepositoryLanesWithSeparator(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "costs.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, InitSchema(db))

	csvPath := filepath.Join(t.TempDir(), "pipes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO\nA|B,C,10,20\nA,B|C,30,40\n"), 0o644))

	res, err := ReplaceFromCSV(db, csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stored)
	assert.Empty(t, res.Duplicates)

	left := domain.NewLaneKey("A|B", "C")
	right := domain.NewLaneKey("A", "B|C")
	found, err := NewSqliteCostRepository(db).FindLanes(context.Background(), []domain.LaneKey{left, right})
	require.NoError(t, err)
	assert.Equal(t, 10.0, found[left].FleetCost)
	assert.Equal(t, 30.0, found[right].FleetCost)
}

func TestSqliteCostRepositoryListLaneCosts(t *testing.T) {
	repo := NewSqliteCostRepository(newSeededDB(t))

	costs, err := repo.ListLaneCosts(context.Background())
	require.NoError(t, err)
	require.Len(t, costs, 2)

	assert.Equal(t, "Curitiba - PR", costs[0].Origin)
	assert.Equal(t, 1234.5, costs[0].FleetCost)
	assert.Equal(t, 980.0, costs[0].AggregatedCost)

	assert.Equal(t, "São Paulo - SP", costs[1].Origin)
	assert.Equal(t, domain.NewLaneKey("SAO PAULO - SP", "RIO DE JANEIRO - RJ"), costs[1].Lane())
	assert.Equal(t, 100.0, costs[1].FleetCost)
}

func TestSqliteCostRepositoryFindLanes(t *testing.T) {
	repo := NewSqliteCostRepository(newSeededDB(t))

	sp := domain.NewLaneKey(" sao paulo - sp ", "Rio  de Janeiro - RJ")
	missing := domain.NewLaneKey("Manaus - AM", "Belém - PA")

	found, err := repo.FindLanes(context.Background(), []domain.LaneKey{sp, missing, sp})
	require.NoError(t, err)

	require.Len(t, found, 1)
	c, ok := found[sp]
	require.True(t, ok)
	assert.Equal(t, 150.0, c.AggregatedCost)
	_, ok = found[missing]
	assert.False(t, ok)
}

func TestSqliteCostRepositoryFindLanesManyLanes(t *testing.T) {
	repo := NewSqliteCostRepository(newSeededDB(t))

	sp := domain.NewLaneKey("São Paulo - SP", "Rio de Janeiro - RJ")
	lanes := make([]domain.LaneKey, 0, 2*findLanesChunk+2)
	for i := range 2 * findLanesChunk {
		lanes = append(lanes, domain.NewLaneKey(fmt.Sprintf("ORIGIN %d", i), "NOWHERE"))
	}
	lanes = append(lanes, sp, domain.NewLaneKey("Curitiba - PR", "Santos - SP"))

	found, err := repo.FindLanes(context.Background(), lanes)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, 100.0, found[sp].FleetCost)
}

func TestSqliteCostRepositoryFindLanesEmpty(t *testing.T) {
	repo := NewSqliteCostRepository(newSeededDB(t))

	found, err := repo.FindLanes(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestSqliteCostRepositoryNilDB(t *testing.T) {
	repo := NewSqliteCostRepository(nil)

	_, err := repo.ListLaneCosts(context.Background())
	assert.Error(t, err)
	_, err = repo.FindLanes(context.Background(), []domain.LaneKey{domain.NewLaneKey("A", "B")})
	assert.Error(t, err)
}
