package svgcard

import (
	"github.com/benoitkugler/missioncard/geometry"
	"github.com/benoitkugler/missioncard/mission"
)

// offset of the two markers replacing the center objective
// in Hidden Supplies (about 36 degrees from the horizontal)
var hiddenSuppliesOffset = geometry.Point{X: 4.8, Y: 3.5}

func (c composer) deploymentZone(style mission.SideStyle, zone mission.DeploymentZone) Element {
	size := c.cfg.Base.Size
	abs := make([]geometry.Point, len(zone.Points))
	for i, p := range zone.Points {
		abs[i] = geometry.ToAbsolute(size, p, geometry.Center)
	}
	dz := c.el("polygon",
		"points", points(abs),
		"fill", hexColor(style.Fill),
		"stroke", hexColor(style.Stroke),
		"stroke-width", "0.4",
	)
	if zone.MaskCenter {
		dz.SetAttribute("mask", "url(#"+centerMaskID+")")
	}
	return dz
}

// objectivePositions returns the absolute position of the drawn objectives,
// once the mission special rules are applied.
func (c composer) objectivePositions() []geometry.Point {
	size := c.cfg.Base.Size
	m := c.cfg.Mission
	var out []geometry.Point
	for _, obj := range m.Objectives {
		switch {
		case obj.IsCenter() && m.HiddenSupplies:
			center := size.Center()
			out = append(out, center.Sub(hiddenSuppliesOffset), center.Add(hiddenSuppliesOffset))
		case m.TheRitual && !obj.IsRitual():
			continue
		default:
			out = append(out, geometry.ToAbsolute(size, obj.Point, geometry.Center))
		}
	}
	return out
}

func (c composer) objectives(positions []geometry.Point) Element {
	group := c.f.CreateElement("g")
	for _, p := range positions {
		group.AppendChild(c.el("use",
			"x", num(p.X),
			"y", num(p.Y),
			"href", "#"+objMarkerID,
		))
	}
	return group
}

// delineators returns the two half-way lines.
func (c composer) delineators() Element {
	size := c.cfg.Base.Size
	center := size.Center()
	group := c.f.CreateElement("g")

	vert := c.el("line",
		"x1", num(center.X),
		"y1", "0",
		"x2", num(center.X),
		"y2", num(size.Height),
	)
	applyAttributes(vert, c.cfg.Base.GuideLine)
	group.AppendChild(vert)

	horiz := c.el("line",
		"x1", "0",
		"y1", num(center.Y),
		"x2", num(size.Width),
		"y2", num(center.Y),
	)
	applyAttributes(horiz, c.cfg.Base.GuideLine)
	group.AppendChild(horiz)

	return group
}

// minGridSpacing bounds the number of grid lines
const minGridSpacing = 0.5

// grid returns the lines drawn every `spacing` inches,
// excluding the battlefield edges.
func (c composer) grid() Element {
	size := c.cfg.Base.Size
	style := c.cfg.Base.Grid
	group := c.el("g", "stroke", "#cccccc", "stroke-width", "0.05")
	applyAttributes(group, style.Line)

	spacing := style.Spacing
	if spacing < minGridSpacing {
		c.log.Warn("Grid spacing too small", "spacing", spacing, "used", minGridSpacing)
		spacing = minGridSpacing
	}
	for x := spacing; x < size.Width; x += spacing {
		group.AppendChild(c.el("line",
			"x1", num(x), "y1", "0",
			"x2", num(x), "y2", num(size.Height),
		))
	}
	for y := spacing; y < size.Height; y += spacing {
		group.AppendChild(c.el("line",
			"x1", "0", "y1", num(y),
			"x2", num(size.Width), "y2", num(y),
		))
	}
	return group
}
