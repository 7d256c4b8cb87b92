// Implements the placement of terrain buildings on a battlefield:
// the building coordinate encodings, their normalization
// to a position and a rotation, and the mirrored placement
// of every building instance of a terrain layout.
//
// The package never fails on malformed domain data: it logs a warning
// and falls back to a visible, safe default.
package terrain

import (
	"fmt"
	"log/slog"

	"github.com/benoitkugler/missioncard/geometry"
)

// CoordsKind identifies one of the supported building coordinate encodings.
type CoordsKind uint8

const (
	CoordsUnrecognized CoordsKind = iota
	CoordsTwoCorner               // [[x1, y1], [x2, y2]]
	CoordsSinglePoint             // [x, y]
	CoordsAnchoredPair            // [{anchor, map_coords}, {anchor, map_coords}]
)

func (k CoordsKind) String() string {
	switch k {
	case CoordsTwoCorner:
		return "two-corner"
	case CoordsSinglePoint:
		return "single-point"
	case CoordsAnchoredPair:
		return "anchored-pair"
	default:
		return "unrecognized"
	}
}

// AnchoredPoint is one point of the legacy anchored encoding.
// MapCoords is relative to MapAnchor (empty means center).
// Files sometimes give the anchor as a name: AnchorName is then
// set and Anchor is ignored.
type AnchoredPoint struct {
	Anchor     geometry.Point
	AnchorName geometry.Anchor
	MapCoords  geometry.Point
	MapAnchor  geometry.Anchor
}

func (a AnchoredPoint) anchor() string {
	if a.AnchorName != "" {
		return string(a.AnchorName)
	}
	return a.Anchor.String()
}

// Coords is the position of a building instance, in one of the
// supported encodings. Only the fields matching Kind are meaningful.
// Use the constructors to build valid values.
type Coords struct {
	Kind CoordsKind

	Corners  [2]geometry.Point // CoordsTwoCorner
	Point    geometry.Point    // CoordsSinglePoint
	Anchored [2]AnchoredPoint  // CoordsAnchoredPair

	raw string // CoordsUnrecognized, source text for diagnostics
}

// TwoCorner returns the recommended encoding: the building is placed
// at `corner1` and faces `corner2`.
func TwoCorner(corner1, corner2 geometry.Point) Coords {
	return Coords{Kind: CoordsTwoCorner, Corners: [2]geometry.Point{corner1, corner2}}
}

// SinglePoint returns the legacy encoding with no rotation.
func SinglePoint(p geometry.Point) Coords {
	return Coords{Kind: CoordsSinglePoint, Point: p}
}

// AnchoredPair returns the deprecated anchored encoding.
func AnchoredPair(p1, p2 AnchoredPoint) Coords {
	return Coords{Kind: CoordsAnchoredPair, Anchored: [2]AnchoredPoint{p1, p2}}
}

// Unrecognized wraps data which matches none of the encodings.
// `raw` is only used in diagnostics.
func Unrecognized(raw string) Coords {
	return Coords{Kind: CoordsUnrecognized, raw: raw}
}

func (c Coords) String() string {
	switch c.Kind {
	case CoordsTwoCorner:
		return fmt.Sprintf("[%s, %s]", c.Corners[0], c.Corners[1])
	case CoordsSinglePoint:
		return c.Point.String()
	case CoordsAnchoredPair:
		a, b := c.Anchored[0], c.Anchored[1]
		return fmt.Sprintf("[{anchor: %s, map_coords: %s %s}, {anchor: %s, map_coords: %s %s}]",
			a.anchor(), a.MapCoords, a.MapAnchor, b.anchor(), b.MapCoords, b.MapAnchor)
	default:
		return c.raw
	}
}

// Placement is a normalized building position.
type Placement struct {
	Position geometry.Point
	Rotation float64 // degrees
}

// Normalize reduces `c` to a position and a rotation.
// Unrecognized coordinates are reported to `log` and
// placed at the origin, without rotation.
func Normalize(size geometry.Size, c Coords, log *slog.Logger) Placement {
	switch c.Kind {
	case CoordsTwoCorner:
		return Placement{
			Position: c.Corners[0],
			Rotation: geometry.AngleBetween(c.Corners[0], c.Corners[1]),
		}
	case CoordsSinglePoint:
		return Placement{Position: c.Point}
	case CoordsAnchoredPair:
		p1, p2 := c.Anchored[0], c.Anchored[1]
		pl := Placement{Position: geometry.ToAbsolute(size, p1.MapCoords, p1.MapAnchor)}
		if p1.AnchorName != "" || p2.AnchorName != "" {
			logger(log).Warn("Cannot derive rotation from anchor names", "coords", c.String())
			return pl
		}
		// the rotation uses the raw anchor fields, not the resolved positions
		pl.Rotation = geometry.AngleBetween(p1.Anchor, p2.Anchor)
		return pl
	default:
		logger(log).Warn("Unknown coordinate format", "coords", c.raw)
		return Placement{}
	}
}

func logger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
