package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultPlotWidth  = 80
	DefaultPlotHeight = 10
)

// Plot draws values as an ascii line chart. Non-finite samples are
// dropped, and an empty string is returned when nothing finite remains.
func Plot(values []float64, caption string, width, height int) string {
	data := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		data = append(data, v)
	}
	if len(data) == 0 {
		return ""
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
