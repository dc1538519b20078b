package charts

import (
	"fmt"
	"io"

	"mode-allocation-simulator/internal/domain"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes a self-contained go-echarts page with one line per mode.
func RenderHTML(w io.Writer, s domain.SavingSeries) error {
	if len(s.Periods) == 0 {
		return fmt.Errorf("render html chart: %w", ErrEmptySeries)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: chartTitle, Width: "100%", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: chartTitle, Subtitle: fmt.Sprintf("%s a %s", s.Periods[0], s.Periods[len(s.Periods)-1])}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Mês", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Saving (R$)", NameLocation: "middle", NameGap: 60}),
	)

	line.SetXAxis(s.Periods)
	for _, m := range s.Modes {
		values := s.Values[m]
		data := make([]opts.LineData, 0, len(values))
		for _, v := range values {
			data = append(data, opts.LineData{Value: v})
		}
		line.AddSeries(m.Label(), data)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}
