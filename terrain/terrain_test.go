package terrain

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/benoitkugler/missioncard/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var field = geometry.Size{Width: 44, Height: 30}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func decode(t *testing.T, src string) Coords {
	t.Helper()
	var c Coords
	require.NoError(t, yaml.Unmarshal([]byte(src), &c))
	return c
}

func TestDecodeCoords_Kinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind CoordsKind
	}{
		{"two corner", `[[2, 3], [5, 7]]`, CoordsTwoCorner},
		{"single point", `[4, 5]`, CoordsSinglePoint},
		{"single point floats", `[4.5, -5.25]`, CoordsSinglePoint},
		{"anchored", `[{anchor: [0, 0], map_coords: [1, 2, TOP_LEFT]}, {anchor: [1, 1], map_coords: [3, 4]}]`, CoordsAnchoredPair},
		{"three numbers", `[1, 2, 3]`, CoordsUnrecognized},
		{"scalar", `12`, CoordsUnrecognized},
		{"mapping", `{x: 1, y: 2}`, CoordsUnrecognized},
		{"mixed", `[1, [2, 3]]`, CoordsUnrecognized},
		{"strings", `[a, b]`, CoordsUnrecognized},
		{"bad corner", `[[1, 2, 3], [4, 5]]`, CoordsUnrecognized},
		{"anchor name", `[{anchor: TOP_LEFT, map_coords: [1, 2]}, {anchor: BOTTOM_RIGHT, map_coords: [3, 4]}]`, CoordsAnchoredPair},
		{"numeric anchor", `[{anchor: 3, map_coords: [1, 2]}, {anchor: [1, 1], map_coords: [3, 4]}]`, CoordsUnrecognized},
		{"no map coords", `[{anchor: [0, 0], map_coords: [1]}, {anchor: [1, 1], map_coords: [3, 4]}]`, CoordsUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, decode(t, tt.src).Kind)
		})
	}
}

func TestNormalize_TwoCorner(t *testing.T) {
	pl := Normalize(field, decode(t, `[[2, 3], [5, 7]]`), nil)
	assert.Equal(t, geometry.Point{X: 2, Y: 3}, pl.Position)
	assert.InDelta(t, 53.13, pl.Rotation, 0.01)
}

func TestNormalize_SinglePoint(t *testing.T) {
	pl := Normalize(field, decode(t, `[4, 5]`), nil)
	assert.Equal(t, Placement{Position: geometry.Point{X: 4, Y: 5}}, pl)
}

func TestNormalize_AnchoredPair_UsesRawAnchors(t *testing.T) {
	c := AnchoredPair(
		AnchoredPoint{Anchor: geometry.Point{X: 0, Y: 0}, MapCoords: geometry.Point{X: 1, Y: 2}, MapAnchor: geometry.TopLeft},
		AnchoredPoint{Anchor: geometry.Point{X: 0, Y: 10}, MapCoords: geometry.Point{X: 30, Y: 0}, MapAnchor: geometry.BottomRight},
	)
	pl := Normalize(field, c, nil)
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, pl.Position)
	// angle between the anchor fields (0,0) -> (0,10), not between
	// the resolved positions (1,2) -> (74,30)
	assert.InDelta(t, 90, pl.Rotation, 1e-9)
}

func TestNormalize_AnchoredPair_DefaultsToCenter(t *testing.T) {
	c := decode(t, `[{anchor: [1, 1], map_coords: [-2, 3]}, {anchor: [2, 2], map_coords: [0, 0]}]`)
	require.Equal(t, CoordsAnchoredPair, c.Kind)
	pl := Normalize(field, c, nil)
	assert.Equal(t, geometry.Point{X: 20, Y: 18}, pl.Position)
	assert.InDelta(t, 45, pl.Rotation, 1e-9)
}

func TestNormalize_AnchoredPair_AnchorNames(t *testing.T) {
	c := decode(t, `[{anchor: TOP_LEFT, map_coords: [1, 2, TOP_LEFT]}, {anchor: BOTTOM_RIGHT, map_coords: [3, 4]}]`)
	require.Equal(t, CoordsAnchoredPair, c.Kind)
	assert.Equal(t, geometry.TopLeft, c.Anchored[0].AnchorName)

	log, buf := captureLogger()
	pl := Normalize(field, c, log)
	// the position is resolved, the rotation can't be
	assert.Equal(t, Placement{Position: geometry.Point{X: 1, Y: 2}}, pl)
	assert.Contains(t, buf.String(), "Cannot derive rotation from anchor names")
	assert.Contains(t, buf.String(), "TOP_LEFT")
	assert.NotContains(t, buf.String(), "Unknown coordinate format")

	// one name is enough to lose the rotation
	c = decode(t, `[{anchor: [0, 0], map_coords: [1, 2, TOP_LEFT]}, {anchor: CENTER, map_coords: [3, 4]}]`)
	require.Equal(t, CoordsAnchoredPair, c.Kind)
	assert.Equal(t, Placement{Position: geometry.Point{X: 1, Y: 2}}, Normalize(field, c, log))
}

func TestNormalize_Unrecognized(t *testing.T) {
	log, buf := captureLogger()
	pl := Normalize(field, decode(t, `[1, 2, 3]`), log)
	assert.Equal(t, Placement{}, pl)
	assert.Contains(t, buf.String(), "Unknown coordinate format")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestPlaceBuilding_Mirror(t *testing.T) {
	entry := CatalogEntry{Template: Template{Width: 6, Height: 4}}
	inst := Instance{Type: "ruin", Coords: TwoCorner(geometry.Point{X: 10, Y: 5}, geometry.Point{X: 16, Y: 5})}

	placed := PlaceBuilding(inst, entry, field, nil)
	require.Len(t, placed, 2)
	assert.Equal(t, geometry.Point{X: 10, Y: 5}, placed[0].Position)
	assert.InDelta(t, 0, placed[0].Rotation, 1e-9)
	assert.False(t, placed[0].Mirrored)
	assert.NotNil(t, placed[0].Structures)

	assert.Equal(t, geometry.Point{X: 34, Y: 25}, placed[1].Position)
	assert.InDelta(t, 180, placed[1].Rotation, 1e-9)
	assert.True(t, placed[1].Mirrored)
	assert.Equal(t, entry.Template, placed[1].Template)
}

func TestPlaceBuilding_ExplicitRotationWins(t *testing.T) {
	rot, mirror := 30.0, false
	inst := Instance{
		Type:     "ruin",
		Coords:   TwoCorner(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 0, Y: 5}),
		Rotation: &rot,
		Mirror:   &mirror,
	}
	placed := PlaceBuilding(inst, CatalogEntry{}, field, nil)
	require.Len(t, placed, 1)
	assert.Equal(t, 30.0, placed[0].Rotation)

	zero := 0.0
	inst.Rotation = &zero
	placed = PlaceBuilding(inst, CatalogEntry{}, field, nil)
	assert.Equal(t, 0.0, placed[0].Rotation)
}

func TestPlaceBuilding_MirrorTwiceIsIdentity(t *testing.T) {
	inst := Instance{Coords: TwoCorner(geometry.Point{X: 3, Y: 4}, geometry.Point{X: 1, Y: 9})}
	placed := PlaceBuilding(inst, CatalogEntry{}, field, nil)
	require.Len(t, placed, 2)

	back := PlaceBuilding(Instance{
		Coords:   SinglePoint(placed[1].Position),
		Rotation: &placed[1].Rotation,
	}, CatalogEntry{}, field, nil)[1]

	assert.Equal(t, placed[0].Position, back.Position)
	assert.InDelta(t, geometry.NormalizeAngle(placed[0].Rotation), geometry.NormalizeAngle(back.Rotation), 1e-9)
}

func TestPlaceBuilding_UnrecognizedStillPlaced(t *testing.T) {
	log, buf := captureLogger()
	placed := PlaceBuilding(Instance{Coords: Unrecognized("[1, 2, 3]")}, CatalogEntry{}, field, log)
	require.Len(t, placed, 2)
	assert.Equal(t, geometry.Point{}, placed[0].Position)
	assert.Equal(t, geometry.Point{X: 44, Y: 30}, placed[1].Position)
	assert.Contains(t, buf.String(), "[1, 2, 3]")
}

func TestPlaceLayout_UnknownLayout(t *testing.T) {
	log, buf := captureLogger()
	layouts := Layouts{"a": {Buildings: []Instance{{Type: "ruin", Coords: SinglePoint(geometry.Point{X: 1, Y: 1})}}}}
	catalog := Catalog{"ruin": {}}

	assert.NotPanics(t, func() {
		assert.Empty(t, PlaceLayout("b", layouts, catalog, field, log))
	})
	assert.Contains(t, buf.String(), "Could not find layout")
	assert.Empty(t, PlaceLayout("a", nil, catalog, field, log))
}

func TestPlaceLayout_UnknownTypeSkipped(t *testing.T) {
	log, buf := captureLogger()
	no := false
	layouts := Layouts{"a": {Buildings: []Instance{
		{Type: "ruin", Coords: SinglePoint(geometry.Point{X: 1, Y: 1}), Mirror: &no},
		{Type: "bunker", Coords: SinglePoint(geometry.Point{X: 2, Y: 2})},
		{Type: "ruin", Coords: SinglePoint(geometry.Point{X: 3, Y: 3})},
	}}}
	catalog := Catalog{"ruin": {Template: Template{Width: 2, Height: 2}}}

	placed := PlaceLayout("a", layouts, catalog, field, log)
	require.Len(t, placed, 3)
	assert.Equal(t, geometry.Point{X: 1, Y: 1}, placed[0].Position)
	assert.Equal(t, geometry.Point{X: 3, Y: 3}, placed[1].Position)
	assert.Equal(t, geometry.Point{X: 41, Y: 27}, placed[2].Position)
	assert.Contains(t, buf.String(), "Unknown building pointer")
	assert.Contains(t, buf.String(), "type=bunker")
}

func TestLayout_YAML(t *testing.T) {
	src := `
buildings:
  - type: ruin
    coords: [[10, 20], [16, 20]]
  - type: ruin
    coords: [5, 5]
    rotation: 45
    mirror: false
  - type: wall
    coords: [[1, 1]]
`
	var layout Layout
	require.NoError(t, yaml.Unmarshal([]byte(src), &layout))
	require.Len(t, layout.Buildings, 3)
	assert.Equal(t, CoordsTwoCorner, layout.Buildings[0].Coords.Kind)
	assert.True(t, layout.Buildings[0].Mirrored())
	assert.Nil(t, layout.Buildings[0].Rotation)
	assert.Equal(t, 45.0, *layout.Buildings[1].Rotation)
	assert.False(t, layout.Buildings[1].Mirrored())
	assert.Equal(t, CoordsUnrecognized, layout.Buildings[2].Coords.Kind)
}

func TestStructure_YAML(t *testing.T) {
	src := `
template: {width: 6, height: 4}
structures:
  - {type: line, start: [0, 0], end: [6, 0]}
  - {type: poly, points: [[0, 0], [1, 0], [1, 1]]}
  - {type: crater}
`
	var entry CatalogEntry
	require.NoError(t, yaml.Unmarshal([]byte(src), &entry))
	assert.Equal(t, Template{Width: 6, Height: 4}, entry.Template)
	require.Len(t, entry.Structures, 3)
	assert.Equal(t, LineStructure(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 6, Y: 0}), entry.Structures[0])
	assert.Equal(t, StructurePoly, entry.Structures[1].Kind)
	assert.Len(t, entry.Structures[1].Points, 3)
	assert.Equal(t, StructureUnknown, entry.Structures[2].Kind)
	assert.Equal(t, "crater", entry.Structures[2].Name)
}

func TestPlaced_TransformAndCorners(t *testing.T) {
	p := Placed{Position: geometry.Point{X: 10, Y: 5}, Rotation: 90, Template: Template{Width: 6, Height: 4}}
	assert.Equal(t, "translate(10 5) rotate(90)", p.Transform())

	c := p.Corners()
	assert.InDelta(t, 10, c[1].X, 1e-9)
	assert.InDelta(t, 11, c[1].Y, 1e-9)
	assert.InDelta(t, 6, c[2].X, 1e-9)
	assert.InDelta(t, 11, c[2].Y, 1e-9)
}

func offField(t *testing.T, p Placed) bool {
	t.Helper()
	off, err := p.OffField(field)
	require.NoError(t, err)
	return off
}

func TestPlaced_Bounds(t *testing.T) {
	inside := Placed{Position: geometry.Point{X: 10, Y: 5}, Template: Template{Width: 6, Height: 4}}
	assert.True(t, inside.InBounds(field))
	assert.False(t, offField(t, inside))

	crossing := Placed{Position: geometry.Point{X: 42, Y: 5}, Template: Template{Width: 6, Height: 4}}
	assert.False(t, crossing.InBounds(field))
	assert.False(t, offField(t, crossing))

	outside := Placed{Position: geometry.Point{X: 60, Y: 50}, Template: Template{Width: 6, Height: 4}}
	assert.False(t, outside.InBounds(field))
	assert.True(t, offField(t, outside))
}

func TestPlaced_Footprint(t *testing.T) {
	p := Placed{Position: geometry.Point{X: 10, Y: 5}, Rotation: 90, Template: Template{Width: 6, Height: 4}}
	fp, err := p.Footprint()
	require.NoError(t, err)
	assert.InDelta(t, 24, fp.Area(), 1e-9)

	empty := Placed{Position: geometry.Point{X: 10, Y: 5}}
	_, err = empty.Footprint()
	assert.Error(t, err)
	_, err = empty.OffField(field)
	assert.Error(t, err)

	// no battlefield to compare with
	_, err = p.OffField(geometry.Size{})
	assert.Error(t, err)
}

func TestPolygon(t *testing.T) {
	_, err := Polygon(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 4, Y: 0}, geometry.Point{X: 0, Y: 4})
	assert.NoError(t, err)

	// the edges cross at (2, 2)
	_, err = Polygon(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 4, Y: 4}, geometry.Point{X: 4, Y: 0}, geometry.Point{X: 0, Y: 4})
	assert.Error(t, err)
}

func TestCoords_String(t *testing.T) {
	assert.Equal(t, "[4, 5]", SinglePoint(geometry.Point{X: 4, Y: 5}).String())
	assert.Equal(t, "[[1, 2], [3, 4]]", TwoCorner(geometry.Point{X: 1, Y: 2}, geometry.Point{X: 3, Y: 4}).String())
	assert.Equal(t, "two-corner", CoordsTwoCorner.String())
}
