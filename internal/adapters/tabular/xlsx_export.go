package tabular

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"mode-allocation-simulator/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ExportFileName is the download name of the detail workbook.
const ExportFileName = "resultado_datalake.xlsx"

const exportSheet = "Resultado"

// DetailColumns are the detail table columns, shared by the export and the CLI.
var DetailColumns = []string{
	"DEMANDA KMM",
	"DATA",
	"CLIENTE",
	"ORIGEM",
	"DESTINO",
	"CUSTO_FROTA",
	"CUSTO_AGREGADO",
	"MODALIDADE_REALIZADA",
	"MELHOR CUSTO",
	"ERRO DE ALOCAÇÃO",
	"SAVING POTENCIAL",
}

// DetailRow returns the cell values of one record in DetailColumns order.
// Absent dates, costs and decisions are nil so they render as empty cells.
func DetailRow(rec domain.EvaluatedRecord) []any {
	d := rec.Demand
	row := []any{d.ID, nil, d.Client, d.Origin, d.Destination, nil, nil, d.RealizedLabel, nil, nil, nil}

	if d.Date != nil {
		row[1] = *d.Date
	}
	if rec.Cost != nil {
		row[5] = rec.Cost.FleetCost
		row[6] = rec.Cost.AggregatedCost
	}
	if rec.Decision != nil {
		row[8] = rec.Decision.BestMode.Label()
		row[9] = rec.Decision.AllocationError
		row[10] = rec.Decision.SavingPotential
	}
	return row
}

// FormatDetailRow renders DetailRow as text for terminal tables.
func FormatDetailRow(rec domain.EvaluatedRecord) []string {
	cells := DetailRow(rec)
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case nil:
			out[i] = ""
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', 2, 64)
		case bool:
			if v {
				out[i] = "SIM"
			} else {
				out[i] = "NÃO"
			}
		case string:
			out[i] = v
		case time.Time:
			out[i] = v.Format("2006-01-02")
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// WriteDetailXLSX writes the detail table as a single-sheet workbook.
func WriteDetailXLSX(w io.Writer, records []domain.EvaluatedRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("write detail xlsx: rename sheet: %w", err)
	}

	header := make([]any, len(DetailColumns))
	for i, c := range DetailColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write detail xlsx: header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write detail xlsx: row %d: %w", i+2, err)
		}
		row := DetailRow(rec)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write detail xlsx: row %d: %w", i+2, err)
		}
	}

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return fmt.Errorf("write detail xlsx: date style: %w", err)
	}
	if err := f.SetColStyle(exportSheet, "B", dateStyle); err != nil {
		return fmt.Errorf("write detail xlsx: date column: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write detail xlsx: %w", err)
	}
	return nil
}
