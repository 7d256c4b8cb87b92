package svgpath

import (
	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// the card shapes to their path equivalent

// kappa is the control point distance used to approximate
// a quarter of circle with a cubic bezier.
const kappa = 0.5522847498

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// AddRect adds the closed rectangle with top left corner (x, y).
func (p *Path) AddRect(x, y, w, h float64) {
	p.Start(ToFixedP(x, y))
	p.Line(ToFixedP(x+w, y))
	p.Line(ToFixedP(x+w, y+h))
	p.Line(ToFixedP(x, y+h))
	p.Stop(true)
}

// AddLine adds an open segment.
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(ToFixedP(x1, y1))
	p.Line(ToFixedP(x2, y2))
}

// AddPolyline adds the points given as x1, y1, x2, y2, ...
// A trailing odd coordinate is ignored. Less than two points
// add nothing.
func (p *Path) AddPolyline(coords []float64, closed bool) {
	if len(coords) < 4 {
		return
	}
	p.Start(ToFixedP(coords[0], coords[1]))
	for i := 2; i+1 < len(coords); i += 2 {
		p.Line(ToFixedP(coords[i], coords[i+1]))
	}
	p.Stop(closed)
}

// AddCircle adds a closed circle, as four cubic arcs.
// Non positive radii add nothing.
func (p *Path) AddCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	k := r * kappa
	p.Start(ToFixedP(cx+r, cy))
	p.CubeBezier(ToFixedP(cx+r, cy+k), ToFixedP(cx+k, cy+r), ToFixedP(cx, cy+r))
	p.CubeBezier(ToFixedP(cx-k, cy+r), ToFixedP(cx-r, cy+k), ToFixedP(cx-r, cy))
	p.CubeBezier(ToFixedP(cx-r, cy-k), ToFixedP(cx-k, cy-r), ToFixedP(cx, cy-r))
	p.CubeBezier(ToFixedP(cx+k, cy-r), ToFixedP(cx+r, cy-k), ToFixedP(cx+r, cy))
	p.Stop(true)
}
