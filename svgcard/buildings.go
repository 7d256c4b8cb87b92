package svgcard

import (
	"github.com/benoitkugler/missioncard/terrain"
)

// buildings returns nil if the layout is unknown.
func (c composer) buildings() Element {
	tr := c.cfg.Terrain
	placed := terrain.PlaceLayout(tr.LayoutName, tr.Layout, tr.Buildings, c.cfg.Base.Size, c.log)
	if placed == nil {
		if _, ok := tr.Layout[tr.LayoutName]; !ok {
			return nil
		}
	}

	group := c.f.CreateElement("g")
	for _, p := range placed {
		group.AppendChild(c.building(p))
	}
	return group
}

func (c composer) building(p terrain.Placed) Element {
	style := c.cfg.Base.Building
	group := c.el("g",
		"opacity", style.Opacity,
		"transform", p.Transform(),
	)

	group.AppendChild(c.el("rect",
		"x", "0",
		"y", "0",
		"width", num(p.Template.Width),
		"height", num(p.Template.Height),
		"fill", hexColor(style.Template.Fill),
		"stroke", style.Template.Stroke,
		"stroke-dasharray", style.Template.StrokeDasharray,
		"stroke-width", style.Template.StrokeWidth,
	))

	if !style.Render {
		return group
	}
	for _, s := range p.Structures {
		switch s.Kind {
		case terrain.StructureLine:
			group.AppendChild(c.el("line",
				"x1", num(s.Start.X),
				"y1", num(s.Start.Y),
				"x2", num(s.End.X),
				"y2", num(s.End.Y),
				"stroke", style.Structure.Stroke,
				"stroke-width", style.Structure.StrokeWidth,
			))
		case terrain.StructurePoly:
			group.AppendChild(c.el("polygon",
				"points", points(s.Points),
				"fill", style.Structure.Fill,
			))
		default:
			c.log.Warn("Unsupported structure", "type", p.Type, "structure", s.Name)
		}
	}
	return group
}
