package svgcard

import (
	"math"
	"strconv"

	"github.com/benoitkugler/missioncard/geometry"
)

const (
	arrowHeadLength = 0.6
	arrowHeadWidth  = 0.4
	labelOffset     = 0.5
)

// guides returns, for each objective, the arrows measuring
// its distance to the nearest horizontal and vertical edges.
func (c composer) guides(positions []geometry.Point) Element {
	size := c.cfg.Base.Size
	group := c.el("g", "class", "guides")
	for _, p := range positions {
		d := geometry.DistanceToNearestEdge(size, p)

		hEnd := geometry.Point{X: 0, Y: p.Y}
		if d.Horizontal.Edge == "right" {
			hEnd.X = size.Width
		}
		vEnd := geometry.Point{X: p.X, Y: 0}
		if d.Vertical.Edge == "bottom" {
			vEnd.Y = size.Height
		}

		if g := c.arrow(p, hEnd, d.Horizontal.Distance); g != nil {
			group.AppendChild(g)
		}
		if g := c.arrow(p, vEnd, d.Vertical.Distance); g != nil {
			group.AppendChild(g)
		}
	}
	return group
}

// arrowHead returns the triangle pointing to `tip`, coming from `from`.
func arrowHead(from, tip geometry.Point) [3]geometry.Point {
	length := geometry.Distance(from, tip)
	u := geometry.Point{X: (tip.X - from.X) / length, Y: (tip.Y - from.Y) / length}
	n := geometry.Point{X: -u.Y, Y: u.X}
	base := geometry.Point{X: tip.X - u.X*arrowHeadLength, Y: tip.Y - u.Y*arrowHeadLength}
	hw := arrowHeadWidth / 2
	return [3]geometry.Point{
		tip,
		{X: base.X + n.X*hw, Y: base.Y + n.Y*hw},
		{X: base.X - n.X*hw, Y: base.Y - n.Y*hw},
	}
}

// arrow returns nil for objectives on the edge.
func (c composer) arrow(from, to geometry.Point, distance float64) Element {
	if distance <= 0 {
		return nil
	}
	guides := c.cfg.Main.Objective.Guides
	g := c.f.CreateElement("g")

	line := c.el("line",
		"x1", num(from.X), "y1", num(from.Y),
		"x2", num(to.X), "y2", num(to.Y),
	)
	applyAttributes(line, guides.Line)
	g.AppendChild(line)

	head := arrowHead(from, to)
	poly := c.el("polygon", "points", points(head[:]))
	if stroke := guides.Line["stroke"]; stroke != "" {
		poly.SetAttribute("fill", stroke)
	}
	g.AppendChild(poly)

	// the label sits beside the middle of the arrow
	mid := geometry.Midpoint(from, to)
	n := geometry.Point{X: -(to.Y - from.Y) / distance, Y: (to.X - from.X) / distance}
	label := c.el("text",
		"x", num(mid.X+n.X*labelOffset),
		"y", num(mid.Y+n.Y*labelOffset),
		"text-anchor", "middle",
	)
	applyAttributes(label, guides.Text)
	label.SetText(formatInches(distance))
	g.AppendChild(label)

	return g
}

// formatInches rounds to a tenth of inch
func formatInches(d float64) string {
	return strconv.FormatFloat(math.Round(d*10)/10, 'f', -1, 64) + `"`
}
