package svgcard

const (
	objMarkerID  = "objMarker"
	centerMaskID = "centerMask"
)

// defs holds the objective marker, reused for each objective,
// and the mask hiding the battlefield center.
func (c composer) defs() Element {
	defs := c.f.CreateElement("defs")
	defs.AppendChild(c.objectiveMarker())
	defs.AppendChild(c.centerMask())
	return defs
}

func (c composer) objectiveMarker() Element {
	style := c.cfg.Base.Objective
	group := c.el("g", "id", objMarkerID)

	influence := c.el("circle",
		"cx", "0",
		"cy", "0",
		"r", num(style.Influence.Radius+style.Real.Float("r")),
		"fill", style.Influence.Fill,
		"stroke", style.Influence.Stroke,
	)
	marker := c.el("circle", "cx", "0", "cy", "0")
	applyAttributes(marker, style.Real)

	group.AppendChild(influence)
	group.AppendChild(marker)
	return group
}

func (c composer) centerMask() Element {
	size := c.cfg.Base.Size
	center := size.Center()
	mask := c.el("mask", "id", centerMaskID)
	mask.AppendChild(c.el("rect",
		"x", "0",
		"y", "0",
		"width", num(size.Width),
		"height", num(size.Height),
		"fill", "white",
	))
	mask.AppendChild(c.el("circle",
		"cx", num(center.X),
		"cy", num(center.Y),
		"r", num(c.cfg.Base.CenterMaskRadius),
		"fill", "black",
	))
	return mask
}
