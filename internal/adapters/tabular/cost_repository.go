package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/platform/obs"

	"go.uber.org/zap"
)

// CSVCostRepository serves the reference lane costs straight from the
// consolidated cost CSV. The file is re-read on every call.
type CSVCostRepository struct {
	Path string
}

func NewCSVCostRepository(path string) *CSVCostRepository {
	return &CSVCostRepository{Path: path}
}

// Return every valid cost row in file order. Invalid rows are logged and skipped.
func (c *CSVCostRepository) ListLaneCosts(ctx context.Context) (_ []domain.CostRecord, err error) {
	defer obs.Time(ctx, "costs.csv.ListLaneCosts")(&err)

	costs, warnings, err := ReadCostsFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("list lane costs: %w", err)
	}

	for _, w := range warnings {
		zap.L().Warn("cost row skipped", zap.String("file", c.Path), zap.String("reason", w))
	}

	return costs, nil
}

// ReadCostsFile opens and parses the consolidated cost CSV.
func ReadCostsFile(path string) ([]domain.CostRecord, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("read costs %q: %w", path, domain.ErrMissingFile)
		}
		return nil, nil, fmt.Errorf("read costs: open %q: %w", path, err)
	}
	defer f.Close()

	return ReadCosts(f)
}

// ReadCosts parses a comma separated cost table. Rows with blank, negative or
// unparseable costs are skipped and reported as warnings.
func ReadCosts(r io.Reader) ([]domain.CostRecord, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, &domain.SchemaError{Source: "cost table", Missing: costRequired}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read costs: header: %w", err)
	}

	index := mapHeaders(header)
	if missing := missingHeaders(costRequired, index); len(missing) > 0 {
		return nil, nil, &domain.SchemaError{Source: "cost table", Missing: missing}
	}

	var (
		costs    []domain.CostRecord
		warnings []string
	)
	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cost line %d: %v", line, err))
			continue
		}
		if isBlankRow(record) {
			continue
		}

		row := rowReader{index: index, record: record}
		fleet, err := parseAmount(row.get(colCostFleet))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cost line %d: %s: %v", line, colCostFleet, err))
			continue
		}
		aggregated, err := parseAmount(row.get(colCostAggregated))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cost line %d: %s: %v", line, colCostAggregated, err))
			continue
		}

		cost, err := domain.NewCostRecord(row.get(colCostFrom), row.get(colCostTo), fleet, aggregated)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("cost line %d: %v", line, err))
			continue
		}
		costs = append(costs, cost)
	}

	return costs, warnings, nil
}
