package views

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
)

// plot adapts an ntcharts canvas to float coordinates measured in cells.
type plot struct {
	c    canvas.Model
	w, h int
}

func newPlot(w, h int) *plot {
	w, h = max(w, 1), max(h, 1)
	p := &plot{c: canvas.New(w, h), w: w, h: h}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p.c.SetRune(canvas.Point{X: x, Y: y}, ' ')
		}
	}
	return p
}

// set plots r at the nearest cell; points off the grid are dropped.
func (p *plot) set(x, y float64, r rune) {
	col, row := int(math.Round(x)), int(math.Round(y))
	if col < 0 || col >= p.w || row < 0 || row >= p.h {
		return
	}
	p.c.SetRune(canvas.Point{X: col, Y: row}, r)
}

// line plots r from (x0,y0) to (x1,y1), one point per cell step.
func (p *plot) line(x0, y0, x1, y1 float64, r rune) {
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		p.set(x0, y0, r)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		p.set(x0+(x1-x0)*f, y0+(y1-y0)*f, r)
	}
}

func (p *plot) String() string {
	return p.c.View()
}
