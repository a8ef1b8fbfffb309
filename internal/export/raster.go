package export

import (
	"image"
	"image/draw"
	"sort"

	"github.com/fogleman/gg"

	"github.com/san-kum/scopetrail/internal/trail"
)

// Rasterizer draws ring states onto an antialiased canvas.
type Rasterizer struct {
	style Style
	dc    *gg.Context
}

func NewRasterizer(style Style) *Rasterizer {
	dc := gg.NewContext(style.Width, style.Height)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &Rasterizer{style: style, dc: dc}
}

// Draw renders slots lowest draw order first and returns a copy of the
// canvas, safe to keep after the next Draw.
func (r *Rasterizer) Draw(slots []trail.Slot) *image.RGBA {
	dc := r.dc
	dc.SetColor(r.style.Background)
	dc.Clear()
	dc.SetLineWidth(r.style.LineWidth)

	for _, s := range byDrawOrder(slots) {
		c := s.Curve
		if c.Len() < 2 {
			continue
		}
		dc.SetRGBA(r.style.Color.R, r.style.Color.G, r.style.Color.B, s.Opacity)
		dc.MoveTo(r.style.project(c.X[0], c.Y[0]))
		for i := 1; i < c.Len(); i++ {
			dc.LineTo(r.style.project(c.X[i], c.Y[i]))
		}
		dc.Stroke()
	}

	src := dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

func byDrawOrder(slots []trail.Slot) []trail.Slot {
	sorted := make([]trail.Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DrawOrder < sorted[j].DrawOrder
	})
	return sorted
}
