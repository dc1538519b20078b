package tabular

import "mode-allocation-simulator/internal/domain"

// Demand table columns, matched after domain.NormalizeKey.
const (
	colDemandID    = "SOLICITACAO_CARGA_ID"
	colDemandDate  = "DATA_CARGA"
	colDemandMode  = "MODALIDADE"
	colDemandFrom  = "ORIGEM E UF"
	colDemandTo    = "DESTINO E UF"
	colDemandOwner = "CLIENTE"
)

// Cost reference columns.
const (
	colCostFrom       = "ORIGEM"
	colCostTo         = "DESTINO"
	colCostFleet      = "CUSTO_FROTA"
	colCostAggregated = "CUSTO_AGREGADO"
)

var (
	demandRequired = []string{colDemandID, colDemandDate, colDemandMode, colDemandFrom, colDemandTo}
	costRequired   = []string{colCostFrom, colCostTo, colCostFleet, colCostAggregated}
)

// mapHeaders indexes header names by normalized key, ignoring a leading BOM.
// The first of two columns with the same normalized name wins.
func mapHeaders(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := domain.NormalizeKey(trimCell(name))
		if key == "" {
			continue
		}
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = i
	}
	return index
}

func missingHeaders(required []string, index map[string]int) []string {
	var missing []string
	for _, key := range required {
		if _, ok := index[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// rowReader reads trimmed cells by column name; short rows read as blank.
type rowReader struct {
	index  map[string]int
	record []string
}

func (r rowReader) get(key string) string {
	pos, ok := r.index[key]
	if !ok || pos >= len(r.record) {
		return ""
	}
	return trimCell(r.record[pos])
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if trimCell(cell) != "" {
			return false
		}
	}
	return true
}
