package views

import "math"

type SphereData struct {
	Width  int
	Height int
	Theta  float64
}

// RenderSphere draws a wireframe Bloch sphere rotated about its vertical
// axis by Theta, with a state vector at a 45 degree polar angle precessing
// at twice the rotation rate. Cells are treated as twice as tall as wide.
func RenderSphere(data SphereData) string {
	c := newPlot(data.Width, data.Height)
	w, h := float64(c.w), float64(c.h)*2
	cx, cy := w/2, h/2
	r := math.Min(w, h) * 0.45
	sin, cos := math.Sincos(data.Theta)

	project := func(x, y, z float64) (float64, float64) {
		x1 := x*cos - z*sin
		return cx + x1, (cy + y) / 2
	}

	for lat := -80; lat <= 80; lat += 20 {
		latRad := float64(lat) * math.Pi / 180
		rLat := r * math.Cos(latRad)
		yLat := r * math.Sin(latRad)
		for lon := 0; lon <= 360; lon += 10 {
			lonRad := float64(lon) * math.Pi / 180
			x, y := project(rLat*math.Cos(lonRad), yLat, rLat*math.Sin(lonRad))
			c.set(x, y, '·')
		}
	}
	for lon := 0; lon < 360; lon += 45 {
		lonRad := float64(lon) * math.Pi / 180
		for lat := -90; lat <= 90; lat += 5 {
			latRad := float64(lat) * math.Pi / 180
			rLat := r * math.Cos(latRad)
			x, y := project(rLat*math.Cos(lonRad), r*math.Sin(latRad), rLat*math.Sin(lonRad))
			c.set(x, y, '·')
		}
	}

	psiTheta := math.Pi / 4
	psiPhi := data.Theta * 2
	vx := r * math.Sin(psiTheta) * math.Cos(psiPhi)
	vy := -r * math.Cos(psiTheta)
	vz := r * math.Sin(psiTheta) * math.Sin(psiPhi)
	ox, oy := project(0, 0, 0)
	tx, ty := project(vx, vy, vz)
	c.line(ox, oy, tx, ty, '•')
	c.set(tx, ty, '◉')
	return c.String()
}
