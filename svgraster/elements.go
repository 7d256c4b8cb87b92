package svgraster

import (
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/missioncard/svgdoc"
	"github.com/benoitkugler/missioncard/svgpath"
)

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	drawFuncs["svg"] = svgF
	drawFuncs["g"] = gF
	drawFuncs["use"] = useF
}

type drawFunc func(c *cursor, n *svgdoc.Node) error

var drawFuncs = map[string]drawFunc{
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"polyline": polylineF,
	"polygon":  polygonF,
	"defs":     noopF, // referenced through ids
	"mask":     noopF, // masks are reported where used
	"desc":     noopF,
	"title":    noopF,
	"text":     textF,
}

// floatAttrs reads the numeric attributes `names`, missing ones being 0.
func floatAttrs(n *svgdoc.Node, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := n.Attr(name)
		if !ok {
			continue
		}
		f, err := parseBasicFloat(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		out[i] = f
	}
	return out, nil
}

// svgF scales the viewBox to the image, preserving the aspect ratio
// and centering the content (xMidYMid meet).
func svgF(c *cursor, n *svgdoc.Node) error {
	if vb, ok := n.Attr("viewBox"); ok {
		points, err := parseNumbers(vb)
		if err != nil {
			return err
		}
		if len(points) != 4 {
			return errParamMismatch
		}
		x, y, w, h := points[0], points[1], points[2], points[3]
		if w > 0 && h > 0 {
			s := math.Min(float64(c.width)/w, float64(c.height)/h)
			dx, dy := (float64(c.width)-w*s)/2, (float64(c.height)-h*s)/2
			st := c.top()
			st.transform = st.transform.Translate(dx, dy).Scale(s, s).Translate(-x, -y)
		}
	}
	return c.drawChildren(n)
}

func gF(c *cursor, n *svgdoc.Node) error { return c.drawChildren(n) } // g does nothing but push the style

func noopF(*cursor, *svgdoc.Node) error { return nil }

func textF(c *cursor, _ *svgdoc.Node) error { return c.unsupported("element text") }

func rectF(c *cursor, n *svgdoc.Node) error {
	v, err := floatAttrs(n, "x", "y", "width", "height")
	if err != nil {
		return err
	}
	if v[2] <= 0 || v[3] <= 0 { // not drawn, but not an error
		return nil
	}
	var p svgpath.Path
	p.AddRect(v[0], v[1], v[2], v[3])
	c.paint(p, true)
	return nil
}

func circleF(c *cursor, n *svgdoc.Node) error {
	v, err := floatAttrs(n, "cx", "cy", "r")
	if err != nil {
		return err
	}
	var p svgpath.Path
	p.AddCircle(v[0], v[1], v[2])
	c.paint(p, true)
	return nil
}

func lineF(c *cursor, n *svgdoc.Node) error {
	v, err := floatAttrs(n, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	var p svgpath.Path
	p.AddLine(v[0], v[1], v[2], v[3])
	c.paint(p, false)
	return nil
}

func readPoints(n *svgdoc.Node) ([]float64, error) {
	v, _ := n.Attr("points")
	points, err := parseNumbers(v)
	if err != nil {
		return nil, err
	}
	if len(points)%2 != 0 {
		return nil, fmt.Errorf("%s has odd number of points", n.Tag)
	}
	return points, nil
}

func polylineF(c *cursor, n *svgdoc.Node) error {
	points, err := readPoints(n)
	if err != nil {
		return err
	}
	var p svgpath.Path
	p.AddPolyline(points, false)
	c.paint(p, true)
	return nil
}

func polygonF(c *cursor, n *svgdoc.Node) error {
	points, err := readPoints(n)
	if err != nil {
		return err
	}
	var p svgpath.Path
	p.AddPolyline(points, true)
	c.paint(p, true)
	return nil
}

// useF draws the referenced element, translated by (x, y).
func useF(c *cursor, n *svgdoc.Node) error {
	href, ok := n.Attr("href")
	if !ok {
		href, ok = n.Attr("xlink:href")
	}
	if !ok || !strings.HasPrefix(href, "#") {
		return c.unsupported("use without local href")
	}
	target, ok := c.ids[href[1:]]
	if !ok {
		return c.unsupported("use of unknown id " + href)
	}
	if c.useDepth >= maxUseDepth {
		return fmt.Errorf("use of %s: too many nested references", href)
	}

	v, err := floatAttrs(n, "x", "y")
	if err != nil {
		return err
	}
	st := c.top()
	st.transform = st.transform.Translate(v[0], v[1])

	c.useDepth++
	defer func() { c.useDepth-- }()
	return c.draw(target)
}
