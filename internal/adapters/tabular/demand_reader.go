package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mode-allocation-simulator/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Format is the file format of an uploaded demand table.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat picks the reader from a file name extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported demand file %q: want .xlsx or .csv", filename)
	}
}

// ReadDemandsFile opens path and reads it with the format implied by its extension.
func ReadDemandsFile(path string) ([]domain.DemandRecord, []string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("read demands %q: %w", path, domain.ErrMissingInput)
		}
		return nil, nil, fmt.Errorf("read demands: open %q: %w", path, err)
	}
	defer f.Close()

	return ReadDemands(f, format)
}

// ReadDemands parses a demand table. Row-level problems (bad dates) are
// returned as warnings and never drop the row; a header without the required
// columns is a *domain.SchemaError.
func ReadDemands(r io.Reader, format Format) ([]domain.DemandRecord, []string, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatXLSX:
		rows, err = readXLSXRows(r)
	case FormatCSV:
		rows, err = readCSVRows(r)
	default:
		return nil, nil, fmt.Errorf("read demands: unsupported format %q", format)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read demands: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("read demands: %w", &domain.SchemaError{Source: "demand table", Missing: demandRequired})
	}

	index := mapHeaders(rows[0])
	if missing := missingHeaders(demandRequired, index); len(missing) > 0 {
		return nil, nil, fmt.Errorf("read demands: %w", &domain.SchemaError{Source: "demand table", Missing: missing})
	}

	demands := make([]domain.DemandRecord, 0, len(rows)-1)
	var warnings []string
	for i, record := range rows[1:] {
		line := i + 2
		if isBlankRow(record) {
			continue
		}

		row := rowReader{index: index, record: record}
		date, err := parseDate(row.get(colDemandDate))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("demand line %d: %v; row kept without date", line, err))
		}

		demands = append(demands, domain.NewDemandRecord(
			row.get(colDemandID),
			date,
			row.get(colDemandMode),
			row.get(colDemandOwner),
			row.get(colDemandFrom),
			row.get(colDemandTo),
		))
	}

	return demands, warnings, nil
}

// readXLSXRows returns the cells of the first worksheet. Raw cell values are
// requested so date cells arrive as Excel serials regardless of display format.
func readXLSXRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("open xlsx: workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
