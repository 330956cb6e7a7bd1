package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/quarkonium/internal/storage"
)

// Palette cycles through stroke colors for successive states.
var Palette = []string{"#00ff9f", "#ff6ec7", "#7aa2f7", "#e0af68", "#bb9af7", "#f7768e"}

// TableToSVG draws every wavefunction column of t against r.
func TableToSVG(t *storage.Table, width, height int) string {
	if t == nil || len(t.R) < 2 || len(t.U) == 0 {
		return ""
	}

	// Find bounds
	minX, maxX := t.R[0], t.R[len(t.R)-1]
	minY, maxY := t.U[0][0], t.U[0][0]
	for _, u := range t.U {
		for _, v := range u {
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	zero := float64(height) - (0-minY)/rangeY*float64(height)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#333333" stroke-width="1"/>
`, zero, width, zero))

	for j, u := range t.U {
		color := Palette[j%len(Palette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for i, v := range u {
			x := (t.R[i] - minX) / rangeX * float64(width)
			y := float64(height) - (v-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")

		if j < len(t.Labels) {
			sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, width-90, 18+16*j, color, html.EscapeString(t.Labels[j])))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}
