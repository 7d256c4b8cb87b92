package terrain

import (
	"math"

	"github.com/benoitkugler/missioncard/geometry"
	"github.com/peterstace/simplefeatures/geom"
)

func sincos(deg float64) (sin, cos float64) {
	return math.Sincos(deg * math.Pi / 180)
}

// ring returns the closed XY line string of the points
func ring(points ...geometry.Point) (geom.LineString, error) {
	coords := make([]float64, 0, 2*len(points)+2)
	for _, p := range points {
		coords = append(coords, p.X, p.Y)
	}
	if len(points) > 0 {
		coords = append(coords, points[0].X, points[0].Y)
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}

// Polygon returns the simple polygon with the given vertices.
// Degenerate or self intersecting rings are rejected.
func Polygon(points ...geometry.Point) (geom.Polygon, error) {
	r, err := ring(points...)
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon([]geom.LineString{r})
}

// Battlefield returns the rectangle [0, width] x [0, height].
func Battlefield(size geometry.Size) (geom.Polygon, error) {
	return Polygon(
		geometry.Point{X: 0, Y: 0},
		geometry.Point{X: size.Width, Y: 0},
		geometry.Point{X: size.Width, Y: size.Height},
		geometry.Point{X: 0, Y: size.Height},
	)
}

// Footprint returns the area covered by the building template.
// An empty template (zero width or height) has no valid footprint.
func (p Placed) Footprint() (geom.Polygon, error) {
	c := p.Corners()
	return Polygon(c[:]...)
}

const boundsTolerance = 1e-9

// InBounds returns true if the whole template lies on the battlefield.
func (p Placed) InBounds(size geometry.Size) bool {
	for _, c := range p.Corners() {
		if c.X < -boundsTolerance || c.Y < -boundsTolerance ||
			c.X > size.Width+boundsTolerance || c.Y > size.Height+boundsTolerance {
			return false
		}
	}
	return true
}

// OffField returns true if the template does not touch the battlefield at all.
func (p Placed) OffField(size geometry.Size) (bool, error) {
	field, err := Battlefield(size)
	if err != nil {
		return false, err
	}
	fp, err := p.Footprint()
	if err != nil {
		return false, err
	}
	return !geom.Intersects(field.AsGeometry(), fp.AsGeometry()), nil
}
