package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/missioncard/svgdoc"
	"github.com/benoitkugler/missioncard/svgpath"
	"github.com/srwiley/rasterx"
)

// ErrorMode determines how unsupported SVG features are handled.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota // silently skip
	WarnErrorMode                    // skip and log a warning
	StrictErrorMode                  // abort the rendering
)

// ParseErrorMode accepts ignore, warn and strict.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(s) {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn", "":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q", s)
	}
}

// ErrUnsupported is returned in StrictErrorMode.
var ErrUnsupported = errors.New("unsupported svg feature")

// limits the nesting of <use> elements, which may be cyclic
const maxUseDepth = 8

type style struct {
	fill, stroke               color.Color // nil means none
	fillOpacity, strokeOpacity float64
	width                      float64
	dashes                     []float64
	cap                        rasterx.CapFunc
	join                       rasterx.JoinMode
	transform                  rasterx.Matrix2D
}

var defaultStyle = style{
	fill:          color.Black,
	fillOpacity:   1,
	strokeOpacity: 1,
	width:         1,
	cap:           rasterx.ButtCap,
	join:          rasterx.Miter,
	transform:     rasterx.Identity,
}

type cursor struct {
	rd         *Renderer
	styleStack []style
	ids        map[string]*svgdoc.Node
	mode       ErrorMode
	log        *slog.Logger
	warned     map[string]bool
	width      int
	height     int
	useDepth   int
}

// Rasterize paints the card rooted at `root` on a white
// `width` x `height` image, scaling its viewBox to fit.
func Rasterize(root *svgdoc.Node, width, height int, mode ErrorMode, log *slog.Logger) (*image.RGBA, error) {
	if root == nil || root.Tag != "svg" {
		return nil, errors.New("root element must be <svg>")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if log == nil {
		log = slog.Default()
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	c := &cursor{
		rd:         NewRenderer(width, height, scanner),
		styleStack: []style{defaultStyle},
		ids:        make(map[string]*svgdoc.Node),
		mode:       mode,
		log:        log,
		warned:     make(map[string]bool),
		width:      width,
		height:     height,
	}
	root.Walk(func(n *svgdoc.Node) {
		if id, ok := n.Attr("id"); ok {
			c.ids[id] = n
		}
	})

	if err := c.draw(root); err != nil {
		return nil, err
	}
	return img, nil
}

// unsupported reports `what` according to the error mode.
func (c *cursor) unsupported(what string) error {
	switch c.mode {
	case StrictErrorMode:
		return fmt.Errorf("%w: %s", ErrUnsupported, what)
	case WarnErrorMode:
		if !c.warned[what] { // once per feature
			c.warned[what] = true
			c.log.Warn("Cannot process svg "+what, "mode", "warn")
		}
	}
	return nil
}

func (c *cursor) top() *style { return &c.styleStack[len(c.styleStack)-1] }

func (c *cursor) draw(n *svgdoc.Node) error {
	df, ok := drawFuncs[n.Tag]
	if !ok {
		return c.unsupported("element " + n.Tag)
	}
	if err := c.pushStyle(n); err != nil {
		return fmt.Errorf("<%s>: %w", n.Tag, err)
	}
	defer c.popStyle()
	return df(c, n)
}

func (c *cursor) drawChildren(n *svgdoc.Node) error {
	for _, child := range n.Children {
		if err := c.draw(child); err != nil {
			return err
		}
	}
	return nil
}

// pushStyle copies the top style, applies the presentation
// attributes of `n` and pushes it on the style stack.
func (c *cursor) pushStyle(n *svgdoc.Node) error {
	curStyle := *c.top()
	for _, attr := range n.Attrs {
		k, v := strings.ToLower(attr.Name.Local), strings.TrimSpace(attr.Value)
		if v == "" {
			continue
		}
		if err := c.readStyleAttr(&curStyle, k, v); err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

func (c *cursor) popStyle() { c.styleStack = c.styleStack[:len(c.styleStack)-1] }

func (c *cursor) readStyleAttr(curStyle *style, k, v string) error {
	switch k {
	case "fill":
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.fill = col
	case "stroke":
		col, err := parseSVGColor(v)
		if err != nil {
			return err
		}
		curStyle.stroke = col
	case "stroke-width":
		width, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.width = width
	case "stroke-dasharray":
		if v == "none" {
			curStyle.dashes = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := parseBasicFloat(dstr)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		if len(dList)%2 == 1 { // an odd list is repeated
			dList = append(dList, dList...)
		}
		curStyle.dashes = dList
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.cap = rasterx.ButtCap
		case "round":
			curStyle.cap = rasterx.RoundCap
		case "square":
			curStyle.cap = rasterx.SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.join = rasterx.Miter
		case "round":
			curStyle.join = rasterx.Round
		case "bevel":
			curStyle.join = rasterx.Bevel
		}
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.fillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.strokeOpacity *= op
		}
	case "transform":
		m, err := parseTransform(curStyle.transform, v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	case "mask", "clip-path", "filter":
		return c.unsupported(k + " attribute")
	}
	return nil
}

// scale is the length scaling factor of the current transform
func (st *style) scale() float64 {
	m := st.transform
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// paint fills (if `fillable`) then strokes `p` with the current style.
func (c *cursor) paint(p svgpath.Path, fillable bool) {
	if len(p) == 0 {
		return
	}
	st := c.top()
	if fillable && st.fill != nil {
		c.rd.Fill(p, st.transform, st.fill, st.fillOpacity)
	}
	if st.stroke != nil && st.width > 0 {
		s := st.scale()
		opts := StrokeOptions{Width: st.width * s, Cap: st.cap, Join: st.join}
		for _, d := range st.dashes {
			opts.Dashes = append(opts.Dashes, d*s)
		}
		c.rd.Stroke(p, st.transform, st.stroke, st.strokeOpacity, opts)
	}
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

// parseBasicFloat accepts an optional px unit
func parseBasicFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "px"), 64)
}

func parseNumbers(s string) ([]float64, error) {
	fields := splitOnCommaOrSpace(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseBasicFloat(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseTransform applies the transform list `v` after `m1`.
func parseTransform(m1 rasterx.Matrix2D, v string) (rasterx.Matrix2D, error) {
	ts := strings.Split(v, ")")
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		points, err := parseNumbers(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])), points)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func readTransformAttr(m1 rasterx.Matrix2D, k string, points []float64) (rasterx.Matrix2D, error) {
	ln := len(points)
	switch k {
	case "translate":
		switch ln {
		case 1:
			return m1.Translate(points[0], 0), nil
		case 2:
			return m1.Translate(points[0], points[1]), nil
		}
	case "rotate":
		switch ln {
		case 1:
			return m1.Rotate(points[0] * math.Pi / 180), nil
		case 3:
			return m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2]), nil
		}
	case "scale":
		switch ln {
		case 1:
			return m1.Scale(points[0], points[0]), nil
		case 2:
			return m1.Scale(points[0], points[1]), nil
		}
	case "matrix":
		if ln == 6 {
			return m1.Mult(rasterx.Matrix2D{
				A: points[0], B: points[1],
				C: points[2], D: points[3],
				E: points[4], F: points[5],
			}), nil
		}
	default:
		return m1, fmt.Errorf("unsupported transform %q", k)
	}
	return m1, errParamMismatch
}
