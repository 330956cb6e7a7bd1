package export

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/quarkonium/internal/storage"
)

const (
	DefaultPlotWidth  = 8 * vg.Inch
	DefaultPlotHeight = 5 * vg.Inch
)

// NewPlot lays out every wavefunction of t as a labelled line.
func NewPlot(t *storage.Table, title string) (*plot.Plot, error) {
	if len(t.Labels) != len(t.U) {
		return nil, fmt.Errorf("export: %d labels for %d columns", len(t.Labels), len(t.U))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r (1/GeV)"
	p.Y.Label.Text = "u(r)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	lines := make([]interface{}, 0, 2*len(t.U))
	for j, u := range t.U {
		pts := make(plotter.XYs, len(t.R))
		for i := range t.R {
			pts[i].X = t.R[i]
			pts[i].Y = u[i]
		}
		lines = append(lines, t.Labels[j], pts)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return nil, err
	}
	return p, nil
}

// WritePlot renders t in format ("png", "svg", "pdf", ...) to w.
func WritePlot(w io.Writer, t *storage.Table, title, format string) error {
	p, err := NewPlot(t, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultPlotWidth, DefaultPlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
