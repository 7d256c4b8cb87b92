// Implements the coordinate model of a battlefield:
// named anchors, relative to absolute conversions,
// angles and edge distances.
// All functions are pure and never fail on domain data.
package geometry

// Size is the battlefield extent, in inches.
// The origin (0,0) is the top-left corner.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Center returns the geometric center of the battlefield.
func (s Size) Center() Point { return Point{X: s.Width / 2, Y: s.Height / 2} }

// Anchor is a named reference point on the battlefield rectangle.
type Anchor string

const (
	TopLeft      Anchor = "TOP_LEFT"
	TopCenter    Anchor = "TOP_CENTER"
	TopRight     Anchor = "TOP_RIGHT"
	BottomLeft   Anchor = "BOTTOM_LEFT"
	BottomCenter Anchor = "BOTTOM_CENTER"
	BottomRight  Anchor = "BOTTOM_RIGHT"
	Middle       Anchor = "MIDDLE"
	MiddleLeft   Anchor = "MIDDLE_LEFT"
	MiddleRight  Anchor = "MIDDLE_RIGHT"
	Center       Anchor = "CENTER"
)

// ResolveAnchor returns the absolute origin of the anchor `a`.
// Unknown (or empty) anchors resolve to the center.
func ResolveAnchor(size Size, a Anchor) Point {
	w, h := size.Width, size.Height
	switch a {
	case TopLeft:
		return Point{0, 0}
	case TopCenter:
		return Point{w / 2, 0}
	case TopRight:
		return Point{w, 0}
	case BottomLeft:
		return Point{0, h}
	case BottomCenter:
		return Point{w / 2, h}
	case BottomRight:
		return Point{w, h}
	case MiddleLeft:
		return Point{0, h / 2}
	case MiddleRight:
		return Point{w, h / 2}
	default: // Middle, Center and anything else
		return size.Center()
	}
}
