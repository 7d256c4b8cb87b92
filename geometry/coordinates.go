package geometry

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Point is a pair of coordinates, in inches.
// Whether it is relative to an anchor or absolute
// is decided by the producer.
type Point struct{ X, Y float64 }

// Add returns p + q, component-wise
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q, component-wise
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("[%g, %g]", p.X, p.Y) }

// UnmarshalYAML reads the `[x, y]` form.
func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	var xy []float64
	if err := node.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: expected [x, y], got %d values", node.Line, len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// MarshalYAML writes the `[x, y]` form.
func (p Point) MarshalYAML() (interface{}, error) {
	return []float64{p.X, p.Y}, nil
}

// ToAbsolute converts `p`, relative to the anchor `a`, to an absolute position.
// An empty anchor means Center.
func ToAbsolute(size Size, p Point, a Anchor) Point {
	return p.Add(ResolveAnchor(size, a))
}

// AngleBetween returns the angle of the vector p1 -> p2, in degrees,
// in the range (-180, 180].
func AngleBetween(p1, p2 Point) float64 {
	return math.Atan2(p2.Y-p1.Y, p2.X-p1.X) * 180 / math.Pi
}

// Midpoint returns the point halfway between a and b,
// which is the center of a building given by two corners.
func Midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Mirror reflects p through the battlefield center.
func Mirror(size Size, p Point) Point {
	return Point{size.Width - p.X, size.Height - p.Y}
}

// MirrorRotation returns the rotation of a mirrored element.
// The result is not normalized.
func MirrorRotation(rotation float64) float64 { return 180 + rotation }

// NormalizeAngle maps an angle in degrees to [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// EdgeDistance is the distance from a point to the closest
// edge along one axis.
type EdgeDistance struct {
	Distance  float64
	Direction string // left, right, up or down
	Edge      string // left, right, top or bottom
}

// EdgeDistances groups the horizontal and vertical edge distances.
type EdgeDistances struct {
	Horizontal, Vertical EdgeDistance
}

// DistanceToNearestEdge measures from the absolute point `p`
// to the closest vertical edge (Horizontal) and the closest
// horizontal edge (Vertical). Ties go to left and top.
func DistanceToNearestEdge(size Size, p Point) EdgeDistances {
	var out EdgeDistances

	left, right := p.X, size.Width-p.X
	if left <= right {
		out.Horizontal = EdgeDistance{Distance: left, Direction: "left", Edge: "left"}
	} else {
		out.Horizontal = EdgeDistance{Distance: right, Direction: "right", Edge: "right"}
	}

	top, bottom := p.Y, size.Height-p.Y
	if top <= bottom {
		out.Vertical = EdgeDistance{Distance: top, Direction: "up", Edge: "top"}
	} else {
		out.Vertical = EdgeDistance{Distance: bottom, Direction: "down", Edge: "bottom"}
	}
	return out
}
