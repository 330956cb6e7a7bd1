package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/quarkonium/internal/storage"
)

// Chart plots the selected columns of t on one set of axes. asciigraph
// resamples every series to width.
func Chart(t *storage.Table, cols []int, width, height int, caption string, colors []asciigraph.AnsiColor) string {
	if t == nil || len(t.R) < 2 {
		return ""
	}
	data := make([][]float64, 0, len(cols))
	series := make([]asciigraph.AnsiColor, 0, len(cols))
	for i, c := range cols {
		if c < 0 || c >= len(t.U) {
			continue
		}
		data = append(data, t.U[c])
		if len(colors) > 0 {
			series = append(series, colors[i%len(colors)])
		}
	}
	if len(data) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(3),
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	if len(series) > 0 {
		opts = append(opts, asciigraph.SeriesColors(series...))
	}
	return asciigraph.PlotMany(data, opts...)
}
