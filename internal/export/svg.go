package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/eulercauchy/internal/dynamo"
)

// TrajectoryToSVG renders y against t as a single polyline. Non-finite
// samples are skipped.
func TrajectoryToSVG(result *dynamo.Result, width, height int, strokeColor string) string {
	if result == nil || len(result.Values) < 2 {
		return ""
	}

	type point struct{ X, Y float64 }
	points := make([]point, 0, len(result.Values))
	for i, y := range result.Values {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, point{result.Times[i], y})
	}
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func SVG(w io.Writer, result *dynamo.Result, width, height int, strokeColor string) error {
	svg := TrajectoryToSVG(result, width, height, strokeColor)
	if svg == "" {
		return fmt.Errorf("export: need at least two finite samples")
	}
	_, err := io.WriteString(w, svg)
	return err
}
