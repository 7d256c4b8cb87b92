// Implements an abstract representation of
// the paths drawn by the raster backend: every
// SVG shape of a card is reduced to a Path.
package svgpath

import (
	"fmt"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG commands
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations.
// It implements rasterx.Adder.
type Path []Operation

var _ rasterx.Adder = (*Path)(nil)

func fx(v fixed.Int26_6) float64 { return float64(v) / 64 }

// ToSVGPath returns the `d` attribute equivalent to the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%g,%g", fx(op.X), fx(op.Y))
		case LineTo:
			chunks[i] = fmt.Sprintf("L%g,%g", fx(op.X), fx(op.Y))
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%g,%g,%g,%g", fx(op[0].X), fx(op[0].Y), fx(op[1].X), fx(op[1].Y))
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%g,%g,%g,%g,%g,%g", fx(op[0].X), fx(op[0].Y),
				fx(op[1].X), fx(op[1].Y), fx(op[2].X), fx(op[2].Y))
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo replays the path into `q`, applying the transform `m`
// to every point.
func (p Path) AddTo(q rasterx.Adder, m rasterx.Matrix2D) {
	t := rasterx.MatrixAdder{Adder: q, M: m}
	started := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if started {
				q.Stop(false) // implicit close if currently in path.
			}
			t.Start(fixed.Point26_6(op))
			started = true
		case LineTo:
			t.Line(fixed.Point26_6(op))
		case QuadTo:
			t.QuadBezier(op[0], op[1])
		case CubicTo:
			t.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
			started = false
		}
	}
	if started {
		q.Stop(false)
	}
}
