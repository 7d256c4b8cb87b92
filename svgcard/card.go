// Package svgcard assembles the SVG scene of a mission card.
// It only builds the element tree, through an ElementFactory
// supplied by the caller; the positions come from the
// geometry and terrain packages.
package svgcard

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/benoitkugler/missioncard/geometry"
	"github.com/benoitkugler/missioncard/mission"
)

// Element is a node of the scene tree.
type Element interface {
	SetAttribute(name, value string)
	AppendChild(child Element)
	SetText(text string)
}

// ElementFactory creates SVG elements, given their tag name.
type ElementFactory interface {
	CreateElement(tag string) Element
}

// Options controls the output size of the card.
type Options struct {
	WidthPx, HeightPx int
}

// DefaultOptions is the size used by the printed cards.
var DefaultOptions = Options{WidthPx: 600, HeightPx: 440}

type composer struct {
	f   ElementFactory
	cfg *mission.Config
	log *slog.Logger
}

// Compose returns the <svg> root of the card described by `cfg`.
// Missing or unknown terrain data is reported to `log` and skipped:
// the rest of the card is always built.
func Compose(f ElementFactory, cfg *mission.Config, opts Options, log *slog.Logger) Element {
	if log == nil {
		log = slog.Default()
	}
	if opts.WidthPx <= 0 || opts.HeightPx <= 0 {
		opts = DefaultOptions
	}
	c := composer{f: f, cfg: cfg, log: log}
	size := cfg.Base.Size

	svg := f.CreateElement("svg")
	svg.SetAttribute("width", strconv.Itoa(opts.WidthPx)+"px")
	svg.SetAttribute("height", strconv.Itoa(opts.HeightPx)+"px")
	svg.SetAttribute("viewBox", "0 0 "+num(size.Width)+" "+num(size.Height))

	svg.AppendChild(c.defs())
	svg.AppendChild(c.deploymentZone(cfg.Base.Attacker, cfg.Mission.Attacker))
	svg.AppendChild(c.deploymentZone(cfg.Base.Defender, cfg.Mission.Defender))
	if cfg.Base.Grid.Draw {
		svg.AppendChild(c.grid())
	}

	positions := c.objectivePositions()
	svg.AppendChild(c.objectives(positions))
	svg.AppendChild(c.delineators())
	if cfg.Main.Objective.Guides.Draw {
		svg.AppendChild(c.guides(positions))
	}

	if cfg.Terrain != nil {
		if g := c.buildings(); g != nil {
			svg.AppendChild(g)
		}
	}
	return svg
}

// el creates an element with the given attributes, as name, value pairs
func (c composer) el(tag string, attrs ...string) Element {
	e := c.f.CreateElement(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		e.SetAttribute(attrs[i], attrs[i+1])
	}
	return e
}

// applyAttributes writes `attrs`, in sorted order,
// replacing underscores by dashes in the names.
func applyAttributes(e Element, attrs mission.Attributes) {
	for _, k := range attrs.Keys() {
		e.SetAttribute(strings.ReplaceAll(k, "_", "-"), attrs[k])
	}
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// hexColor returns the color #<hex>, or none if empty.
func hexColor(hex string) string {
	if hex == "" {
		return "none"
	}
	if strings.HasPrefix(hex, "#") {
		return hex
	}
	return "#" + hex
}

// points formats a polygon point list : "x1,y1 x2,y2 ..."
func points(pts []geometry.Point) string {
	chunks := make([]string, len(pts))
	for i, p := range pts {
		chunks[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(chunks, " ")
}
