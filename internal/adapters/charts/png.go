package charts

import (
	"fmt"
	"io"

	"mode-allocation-simulator/internal/domain"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RenderPNG draws the series with gonum/plot. Periods are placed on a nominal
// X axis in order.
func RenderPNG(w io.Writer, s domain.SavingSeries) error {
	if len(s.Periods) == 0 {
		return fmt.Errorf("render png chart: %w", ErrEmptySeries)
	}

	p := plot.New()
	p.Title.Text = chartTitle
	p.X.Label.Text = "Mês"
	p.Y.Label.Text = "Saving (R$)"
	p.NominalX(s.Periods...)

	for i, m := range s.Modes {
		values := s.Values[m]
		pts := make(plotter.XYs, len(values))
		for j, v := range values {
			pts[j] = plotter.XY{X: float64(j), Y: v}
		}

		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("render png chart: line %s: %w", m, err)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(m.Label(), l)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(10*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("render png chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render png chart: write: %w", err)
	}
	return nil
}
