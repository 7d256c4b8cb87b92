package terrain

import (
	"fmt"
	"log/slog"

	"github.com/benoitkugler/missioncard/geometry"
)

// Template is the footprint of a building, drawn at the
// local origin before rotation and translation.
type Template struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// StructureKind identifies a building decoration.
type StructureKind uint8

const (
	StructureUnknown StructureKind = iota
	StructureLine
	StructurePoly
)

// Structure is a decoration of a building, expressed in the
// building local (unrotated) frame.
type Structure struct {
	Kind       StructureKind
	Start, End geometry.Point   // StructureLine
	Points     []geometry.Point // StructurePoly
	Name       string           // StructureUnknown, the unsupported type
}

// LineStructure returns a wall segment.
func LineStructure(start, end geometry.Point) Structure {
	return Structure{Kind: StructureLine, Start: start, End: end}
}

// PolyStructure returns a filled polygon.
func PolyStructure(points ...geometry.Point) Structure {
	return Structure{Kind: StructurePoly, Points: points}
}

// CatalogEntry is a building type.
type CatalogEntry struct {
	Template   Template    `yaml:"template"`
	Structures []Structure `yaml:"structures"`
}

// Catalog maps building type keys to their definition.
type Catalog map[string]CatalogEntry

// Instance is one occurrence of a building in a layout.
type Instance struct {
	Type     string   `yaml:"type"`
	Coords   Coords   `yaml:"coords"`
	Rotation *float64 `yaml:"rotation"` // overrides the computed rotation
	Mirror   *bool    `yaml:"mirror"`   // default to true
}

// Mirrored returns true if a mirrored copy should be placed.
func (inst Instance) Mirrored() bool { return inst.Mirror == nil || *inst.Mirror }

// Layout is a named set of building instances.
type Layout struct {
	Buildings []Instance `yaml:"buildings"`
}

// Layouts maps layout names to their content.
type Layouts map[string]Layout

// Placed is a building ready to be drawn: the renderer
// translates then rotates the template and its structures.
type Placed struct {
	Type       string
	Position   geometry.Point
	Rotation   float64 // degrees
	Template   Template
	Structures []Structure
	Mirrored   bool // true for the point reflected copy
}

// Transform returns the SVG transform to apply to the building group.
func (p Placed) Transform() string {
	return fmt.Sprintf("translate(%g %g) rotate(%g)", p.Position.X, p.Position.Y, p.Rotation)
}

// Corners returns the absolute corners of the template,
// in drawing order.
func (p Placed) Corners() [4]geometry.Point {
	local := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: p.Template.Width, Y: 0},
		{X: p.Template.Width, Y: p.Template.Height},
		{X: 0, Y: p.Template.Height},
	}
	var out [4]geometry.Point
	for i, l := range local {
		out[i] = p.ToAbsolute(l)
	}
	return out
}

// ToAbsolute converts a point of the building local frame
// to battlefield coordinates.
func (p Placed) ToAbsolute(local geometry.Point) geometry.Point {
	sin, cos := sincos(p.Rotation)
	return geometry.Point{
		X: p.Position.X + local.X*cos - local.Y*sin,
		Y: p.Position.Y + local.X*sin + local.Y*cos,
	}
}

// PlaceBuilding returns the placement of `inst`, followed by
// its mirrored counterpart, unless mirroring is disabled.
func PlaceBuilding(inst Instance, entry CatalogEntry, size geometry.Size, log *slog.Logger) []Placed {
	pl := Normalize(size, inst.Coords, log)
	if inst.Rotation != nil { // explicit wins
		pl.Rotation = *inst.Rotation
	}

	structures := entry.Structures
	if structures == nil {
		structures = []Structure{}
	}

	out := []Placed{{
		Type:       inst.Type,
		Position:   pl.Position,
		Rotation:   pl.Rotation,
		Template:   entry.Template,
		Structures: structures,
	}}
	if inst.Mirrored() {
		out = append(out, Placed{
			Type:       inst.Type,
			Position:   geometry.Mirror(size, pl.Position),
			Rotation:   geometry.MirrorRotation(pl.Rotation),
			Template:   entry.Template,
			Structures: structures,
			Mirrored:   true,
		})
	}
	return out
}

// PlaceLayout places every building of the layout `name`.
// An unknown layout yields no building at all; an unknown
// building type only skips the faulty instance.
func PlaceLayout(name string, layouts Layouts, catalog Catalog, size geometry.Size, log *slog.Logger) []Placed {
	log = logger(log)
	layout, ok := layouts[name]
	if !ok {
		log.Warn("Could not find layout", "layout", name)
		return nil
	}

	var out []Placed
	for i, inst := range layout.Buildings {
		entry, ok := catalog[inst.Type]
		if !ok {
			log.Warn("Unknown building pointer", "layout", name, "index", i, "type", inst.Type)
			continue
		}
		out = append(out, PlaceBuilding(inst, entry, size, log)...)
	}
	return out
}
