package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mode-allocation-simulator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	demandCSV = `SOLICITACAO_CARGA_ID,DATA_CARGA,MODALIDADE,ORIGEM E UF,DESTINO E UF,CLIENTE
1,2024-01-10,FROTA,São Paulo - SP,Rio de Janeiro - RJ,ACME
2,2024-01-15,AGREGADO,sao paulo - sp,rio de janeiro - rj,ACME
3,2024-02-02,FROTA,Curitiba - PR,Santos - SP,Beta
`
	costCSV = `ORIGEM,DESTINO,CUSTO_FROTA,CUSTO_AGREGADO
SAO PAULO - SP,RIO DE JANEIRO - RJ,100,150
Curitiba - PR,Santos - SP,300,200
Curitiba - PR,Santos - SP,1,1
`
)

// workspace isolates a run from the developer's .env and environment.
func workspace(t *testing.T) (dir, demands, costs string) {
	t.Helper()
	dir = t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{"COST_FILE", "COST_SOURCE", "DB_PATH", "DATABASE_URL", "STRICT_LANES", "LOG_LEVEL", "CONFIG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	demands = filepath.Join(dir, "demanda.csv")
	costs = filepath.Join(dir, "custos.csv")
	require.NoError(t, os.WriteFile(demands, []byte(demandCSV), 0o644))
	require.NoError(t, os.WriteFile(costs, []byte(costCSV), 0o644))
	return dir, demands, costs
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzePrintsTables(t *testing.T) {
	_, demands, costs := workspace(t)

	out, err := execute(t, "analyze", "--input", demands, "--costs", costs)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Indicadores (2024-01-10 a 2024-02-02)")
	assert.Contains(t, out, "Erros de alocação")
	assert.Contains(t, out, "R$ 150.00", "total saving")
	assert.Contains(t, out, "2024-02")
	assert.Contains(t, out, "DEMANDA KMM")
	assert.Contains(t, out, "first occurrence used")
}

func TestAnalyzeSummaryViewWithRange(t *testing.T) {
	_, demands, costs := workspace(t)

	out, err := execute(t, "analyze", "--input", demands, "--costs", costs, "--view", "summary", "--start", "2024-02-01")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Resumo por mês")
	assert.NotContains(t, out, "DEMANDA KMM")
	assert.NotContains(t, out, "2024-01")
}

func TestAnalyzeWritesArtifacts(t *testing.T) {
	dir, demands, costs := workspace(t)
	xlsx := filepath.Join(dir, "resultado_datalake.xlsx")
	png := filepath.Join(dir, "saving.png")

	out, err := execute(t, "analyze", "--input", demands, "--costs", costs, "--export", xlsx, "--chart", png)
	require.NoError(t, err, out)

	for _, p := range []string{xlsx, png} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestAnalyzeStrictLanes(t *testing.T) {
	_, demands, costs := workspace(t)

	_, err := execute(t, "analyze", "--input", demands, "--costs", costs, "--strict-lanes")

	var dupErr *domain.DuplicateLaneError
	require.ErrorAs(t, err, &dupErr)
	assert.Len(t, dupErr.Lanes, 1)
}

func TestAnalyzeErrors(t *testing.T) {
	dir, demands, costs := workspace(t)

	_, err := execute(t, "analyze", "--input", filepath.Join(dir, "absent.csv"), "--costs", costs)
	assert.ErrorIs(t, err, domain.ErrMissingInput)

	_, err = execute(t, "analyze", "--input", demands, "--costs", filepath.Join(dir, "absent.csv"))
	assert.ErrorIs(t, err, domain.ErrMissingFile)

	badCosts := filepath.Join(dir, "bad_costs.csv")
	require.NoError(t, os.WriteFile(badCosts, []byte("ORIGEM,DESTINO,CUSTO_FROTA\nA,B,1\n"), 0o644))
	_, err = execute(t, "analyze", "--input", demands, "--costs", badCosts)
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"CUSTO_AGREGADO"}, schemaErr.Missing)

	_, err = execute(t, "analyze", "--input", demands, "--costs", costs, "--start", "01/02/2024")
	assert.ErrorContains(t, err, "--start")

	_, err = execute(t, "analyze", "--input", demands, "--costs", costs, "--view", "pie")
	assert.Error(t, err)

	_, err = execute(t, "analyze", "--costs", costs)
	assert.Error(t, err, "--input is required")
}

func TestLanes(t *testing.T) {
	_, _, costs := workspace(t)

	out, err := execute(t, "lanes", "--costs", costs)
	require.NoError(t, err, out)

	assert.Contains(t, out, "Rotas de referência (3)")
	assert.Contains(t, out, "RIO DE JANEIRO - RJ")
	assert.Contains(t, out, "Frota Própria")
	assert.Contains(t, out, "Agregado")
}

func TestLanesFromSQLite(t *testing.T) {
	dir, _, costs := workspace(t)
	t.Setenv("COST_SOURCE", "sqlite")
	t.Setenv("COST_FILE", costs)
	t.Setenv("DB_PATH", filepath.Join(dir, "data", "lanes.db"))

	out, err := execute(t, "lanes")
	require.NoError(t, err, out)

	// Seeding keeps the first row of each lane.
	assert.Contains(t, out, "Rotas de referência (2)")
}
