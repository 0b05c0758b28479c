package views

import "math"

const (
	waveNumber    = 0.1
	pixelsPerCell = 5.0
)

type WaveData struct {
	Width  int
	Height int
	T      float64
}

// RenderWave draws the real part of a gaussian wave packet and its
// envelope. The packet is centred with sigma at 15% of the width; x is
// measured in virtual pixels so the carrier keeps its wavelength on small
// grids.
func RenderWave(data WaveData) string {
	c := newPlot(data.Width, data.Height)
	width := float64(c.w) * pixelsPerCell
	sigma := width * 0.15
	mu := width / 2
	mid := float64(c.h-1) / 2
	amp := mid * 0.8

	for col := 0; col < c.w; col++ {
		x := (float64(col) + 0.5) * pixelsPerCell
		envelope := math.Exp(-math.Pow(x-mu, 2) / (2 * sigma * sigma))
		c.set(float64(col), mid-amp*envelope, '·')
	}
	for col := 0; col < c.w; col++ {
		x := (float64(col) + 0.5) * pixelsPerCell
		envelope := math.Exp(-math.Pow(x-mu, 2) / (2 * sigma * sigma))
		carrier := math.Cos(waveNumber*(x-mu) - data.T*2)
		c.set(float64(col), mid-amp*envelope*carrier, '•')
	}
	return c.String()
}
