package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

// PaletteLevels is the number of fade steps between background and trace.
const PaletteLevels = 16

// Palette returns a palette running from the background to the full trace
// color in even opacity steps.
func Palette(style Style, levels int) color.Palette {
	if levels < 2 {
		levels = 2
	}
	p := make(color.Palette, levels)
	for i := range p {
		p[i] = style.Faded(float64(i) / float64(levels-1))
	}
	return p
}

// GIFRecorder accumulates frames for a looping GIF.
type GIFRecorder struct {
	palette color.Palette
	delay   int
	frames  []*image.Paletted
}

// NewGIFRecorder returns a recorder that plays frames back at interval.
func NewGIFRecorder(style Style, interval time.Duration) *GIFRecorder {
	return &GIFRecorder{
		palette: Palette(style, PaletteLevels),
		delay:   gifDelay(interval),
	}
}

// gifDelay converts interval to GIF delay units of 10ms, at least 1.
func gifDelay(interval time.Duration) int {
	return max(int(interval/(10*time.Millisecond)), 1)
}

// SetInterval changes the playback interval of every frame, including those
// already recorded.
func (g *GIFRecorder) SetInterval(interval time.Duration) {
	g.delay = gifDelay(interval)
}

func (g *GIFRecorder) Add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(b, g.palette)
	draw.Draw(p, b, img, b.Min, draw.Src)
	g.frames = append(g.frames, p)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Reset() { g.frames = nil }

// Encode writes every recorded frame as an endlessly looping GIF.
func (g *GIFRecorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}
