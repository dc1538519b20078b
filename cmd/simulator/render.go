package main

import (
	"fmt"
	"io"
	"strconv"

	"mode-allocation-simulator/internal/adapters/tabular"
	"mode-allocation-simulator/internal/domain"
	"mode-allocation-simulator/internal/services"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginTop(1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
)

func newTable(headers []string, rows [][]string, numeric map[int]bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func money(v float64) string {
	return "R$ " + strconv.FormatFloat(v, 'f', 2, 64)
}

func renderReport(w io.Writer, report *domain.AnalysisReport, view services.View, limit int) {
	period := "sem datas"
	if r := report.DateRange; r != nil {
		period = r.Start.Format("2006-01-02") + " a " + r.End.Format("2006-01-02")
	}
	fmt.Fprintln(w, titleStyle.Render("Indicadores ("+period+")"))
	fmt.Fprintln(w, metricsTable(report.Metrics, report.Unscheduled))

	if view.ShowSummary() {
		fmt.Fprintln(w, titleStyle.Render("Resumo por mês e modalidade"))
		fmt.Fprintln(w, summaryTable(report.Summaries))
	}

	if view.ShowDetail() {
		records := report.Records
		title := fmt.Sprintf("Detalhe (%d viagens)", len(records))
		if limit > 0 && len(records) > limit {
			records = records[:limit]
			title = fmt.Sprintf("Detalhe (primeiras %d de %d viagens)", limit, len(report.Records))
		}
		fmt.Fprintln(w, titleStyle.Render(title))
		fmt.Fprintln(w, detailTable(records))
	}

	for _, msg := range report.Warnings {
		fmt.Fprintln(w, warnStyle.Render("aviso: "+msg))
	}
}

func metricsTable(m domain.Metrics, unscheduled int) string {
	rows := [][]string{
		{"Viagens", strconv.Itoa(m.TotalTrips)},
	}
	for _, mode := range domain.Modes {
		if n := m.TripsByMode[mode]; n > 0 {
			rows = append(rows, []string{"  " + mode.Label(), strconv.Itoa(n)})
		}
	}
	rows = append(rows,
		[]string{"Viagens com custo", strconv.Itoa(m.PricedTrips)},
		[]string{"Viagens sem custo", strconv.Itoa(m.UnpricedTrips)},
		[]string{"Viagens sem data", strconv.Itoa(unscheduled)},
		[]string{"Erros de alocação", strconv.Itoa(m.AllocationErrors)},
		[]string{"Custo realizado", money(m.RealizedCost)},
		[]string{"Custo otimizado", money(m.OptimizedCost)},
		[]string{"Saving potencial", money(m.TotalSavingPotential)},
	)
	return newTable([]string{"INDICADOR", "VALOR"}, rows, map[int]bool{1: true})
}

func summaryTable(summaries []domain.PeriodSummary) string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Period(),
			s.Mode.Label(),
			strconv.Itoa(s.TripCount),
			strconv.Itoa(s.PricedCount),
			money(s.TotalFleetCost),
			money(s.TotalAggregatedCost),
			money(s.TotalSavingPotential),
		})
	}
	return newTable(
		[]string{"MÊS", "MODALIDADE", "VIAGENS", "COM CUSTO", "CUSTO_FROTA", "CUSTO_AGREGADO", "SAVING POTENCIAL"},
		rows,
		map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true},
	)
}

func detailTable(records []domain.EvaluatedRecord) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, tabular.FormatDetailRow(rec))
	}
	return newTable(tabular.DetailColumns, rows, map[int]bool{5: true, 6: true, 10: true})
}

func lanesTable(lanes []domain.CostRecord) string {
	rows := make([][]string, 0, len(lanes))
	for _, c := range lanes {
		rows = append(rows, []string{
			c.Origin,
			c.Destination,
			money(c.FleetCost),
			money(c.AggregatedCost),
			c.BestMode().Label(),
		})
	}
	return newTable(
		[]string{"ORIGEM", "DESTINO", "CUSTO_FROTA", "CUSTO_AGREGADO", "MELHOR CUSTO"},
		rows,
		map[int]bool{2: true, 3: true},
	)
}
