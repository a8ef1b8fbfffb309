package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/scopetrail/internal/trail"
)

// SlotsToSVG renders one ring state as an SVG document, one path per slot in
// draw order, each with its slot opacity.
func SlotsToSVG(slots []trail.Slot, style Style) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, style.Width, style.Height, style.Width, style.Height, style.Background.Hex()))

	for _, s := range byDrawOrder(slots) {
		c := s.Curve
		if c.Len() < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="%.4f" stroke-width="%.2f" d="M`,
			style.Color.Hex(), s.Opacity, style.LineWidth))
		for i := 0; i < c.Len(); i++ {
			x, y := style.project(c.X[i], c.Y[i])
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
