package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/missioncard/mission"
	"github.com/benoitkugler/missioncard/svgcard"
	"github.com/benoitkugler/missioncard/svgdoc"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	err := png.Encode(&b, m)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// el builds a node with the given attributes, as name, value pairs
func el(tag string, attrs []string, children ...*svgdoc.Node) *svgdoc.Node {
	n := &svgdoc.Node{Tag: tag, Children: children}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.SetAttribute(attrs[i], attrs[i+1])
	}
	return n
}

func a(attrs ...string) []string { return attrs }

// svg10 is a 10x10 viewBox, drawn on 100x100 pixels
func svg10(children ...*svgdoc.Node) *svgdoc.Node {
	return el("svg", a("viewBox", "0 0 10 10"), children...)
}

func assertColor(t *testing.T, img *image.RGBA, x, y int, expected color.RGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	for _, ch := range [][2]uint8{{got.R, expected.R}, {got.G, expected.G}, {got.B, expected.B}, {got.A, expected.A}} {
		if math.Abs(float64(ch[0])-float64(ch[1])) > 2 {
			t.Errorf("pixel (%d, %d): expected %v, got %v", x, y, expected, got)
			return
		}
	}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func render(t *testing.T, root *svgdoc.Node) *image.RGBA {
	img, err := Rasterize(root, 100, 100, StrictErrorMode, nil)
	require.NoError(t, err)
	return img
}

func TestRect(t *testing.T) {
	img := render(t, svg10(el("rect", a("x", "2", "y", "2", "width", "3", "height", "3", "fill", "red"))))
	assertColor(t, img, 35, 35, red)
	assertColor(t, img, 10, 10, white)
	assertColor(t, img, 60, 60, white)
}

func TestDefaultFillIsBlack(t *testing.T) {
	img := render(t, svg10(el("circle", a("cx", "5", "cy", "5", "r", "2"))))
	assertColor(t, img, 50, 50, black)
	assertColor(t, img, 5, 5, white)
}

func TestViewBoxMeet(t *testing.T) {
	// a 20x10 viewBox on a square image is centered vertically
	root := el("svg", a("viewBox", "0 0 20 10"),
		el("rect", a("width", "20", "height", "10", "fill", "blue")))
	img := render(t, root)
	assertColor(t, img, 50, 50, blue)
	assertColor(t, img, 50, 10, white)
	assertColor(t, img, 50, 90, white)
}

func TestGroupTransformAndOpacity(t *testing.T) {
	root := svg10(el("g", a("transform", "translate(5 5)", "opacity", "0.5"),
		el("rect", a("width", "2", "height", "2", "fill", "#000"))))
	img := render(t, root)
	assertColor(t, img, 60, 60, color.RGBA{127, 127, 127, 255})
	assertColor(t, img, 40, 40, white)
}

func TestRotation(t *testing.T) {
	// the rect is rotated around the origin, ending in x < 0 but y > 0
	root := svg10(el("g", a("transform", "translate(5 5) rotate(90)"),
		el("rect", a("width", "4", "height", "1", "fill", "red"))))
	img := render(t, root)
	assertColor(t, img, 45, 70, red)
	assertColor(t, img, 70, 55, white)
}

func TestUse(t *testing.T) {
	root := svg10(
		el("defs", nil, el("rect", a("id", "marker", "width", "1", "height", "1", "fill", "blue"))),
		el("use", a("href", "#marker", "x", "7", "y", "1")),
	)
	img := render(t, root)
	assertColor(t, img, 75, 15, blue)
	// the definition itself is not drawn
	assertColor(t, img, 5, 5, white)
}

func TestUseCycle(t *testing.T) {
	root := svg10(el("g", a("id", "loop"), el("use", a("href", "#loop"))))
	_, err := Rasterize(root, 10, 10, IgnoreErrorMode, nil)
	assert.Error(t, err)
}

func TestStroke(t *testing.T) {
	root := svg10(el("line", a("x1", "0", "y1", "5", "x2", "10", "y2", "5", "stroke", "red", "stroke-width", "1", "fill", "blue")))
	img := render(t, root)
	assertColor(t, img, 50, 50, red)
	assertColor(t, img, 50, 20, white)
}

func TestErrorModes(t *testing.T) {
	root := svg10(
		el("text", nil),
		el("rect", a("width", "10", "height", "10", "fill", "red", "mask", "url(#m)")),
	)

	_, err := Rasterize(root, 10, 10, StrictErrorMode, nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	img, err := Rasterize(root, 10, 10, IgnoreErrorMode, nil)
	require.NoError(t, err)
	assertColor(t, img, 5, 5, red)

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	_, err = Rasterize(root, 10, 10, WarnErrorMode, log)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Cannot process svg element text")
	assert.Contains(t, logs.String(), "Cannot process svg mask attribute")
}

func TestUnknownElement(t *testing.T) {
	root := svg10(el("foreignObject", nil))
	_, err := Rasterize(root, 10, 10, StrictErrorMode, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = Rasterize(root, 10, 10, IgnoreErrorMode, nil)
	assert.NoError(t, err)
}

func TestInvalidInput(t *testing.T) {
	_, err := Rasterize(el("g", nil), 10, 10, IgnoreErrorMode, nil)
	assert.Error(t, err)
	_, err = Rasterize(svg10(), 0, 10, IgnoreErrorMode, nil)
	assert.Error(t, err)
	_, err = Rasterize(svg10(el("rect", a("width", "abc", "height", "1"))), 10, 10, IgnoreErrorMode, nil)
	assert.Error(t, err)
	_, err = Rasterize(svg10(el("polygon", a("points", "1 2 3"))), 10, 10, IgnoreErrorMode, nil)
	assert.Error(t, err)
	_, err = Rasterize(svg10(el("rect", a("fill", "notacolor"))), 10, 10, IgnoreErrorMode, nil)
	assert.Error(t, err)
}

func TestParseSVGColor(t *testing.T) {
	tests := []struct {
		in       string
		expected color.Color
	}{
		{"none", nil},
		{"red", color.RGBA{255, 0, 0, 255}},
		{"Gold", color.RGBA{255, 215, 0, 255}},
		{"#f00", color.NRGBA{255, 0, 0, 255}},
		{"#990000", color.NRGBA{0x99, 0, 0, 255}},
		{"#ff000033", color.NRGBA{255, 0, 0, 0x33}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 255}},
	}
	for _, tt := range tests {
		got, err := parseSVGColor(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, got, tt.in)
	}

	for _, bad := range []string{"#12", "#zzzzzz", "rgb(1, 2)", "rgb(1, 2, 300)", "blurple"} {
		_, err := parseSVGColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseTransform(t *testing.T) {
	m, err := parseTransform(rasterx.Identity, "translate(2 3) scale(2)")
	require.NoError(t, err)
	x, y := m.Transform(1, 1)
	assert.InDelta(t, 4, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)

	m, err = parseTransform(rasterx.Identity, "rotate(90, 1, 1)")
	require.NoError(t, err)
	x, y = m.Transform(2, 1)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)

	m, err = parseTransform(rasterx.Identity, "matrix(1 0 0 1 5 6)")
	require.NoError(t, err)
	x, y = m.Transform(0, 0)
	assert.InDelta(t, 5, x, 1e-9)
	assert.InDelta(t, 6, y, 1e-9)

	for _, bad := range []string{"translate(1 2 3)", "skewX(3)", "rotate", "scale(a)"} {
		_, err := parseTransform(rasterx.Identity, bad)
		assert.Error(t, err, bad)
	}
}

func TestParseErrorMode(t *testing.T) {
	for in, expected := range map[string]ErrorMode{"ignore": IgnoreErrorMode, "WARN": WarnErrorMode, "": WarnErrorMode, "strict": StrictErrorMode} {
		got, err := ParseErrorMode(in)
		assert.NoError(t, err)
		assert.Equal(t, expected, got)
	}
	_, err := ParseErrorMode("loud")
	assert.Error(t, err)
}

func TestMissionCard(t *testing.T) {
	cfg, err := mission.Load("../mission/testdata/take_and_hold.yaml", true)
	require.NoError(t, err)
	root := svgcard.Compose(svgdoc.Document{}, cfg, svgcard.DefaultOptions, nil).(*svgdoc.Node)

	img, err := Rasterize(root, 600, 440, IgnoreErrorMode, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 600, 440), img.Bounds())

	// 600/44 < 440/30: the card fills the width
	s := 600.0 / 44
	dy := (440 - 30*s) / 2
	// inside the attacker zone, away from any line
	attacker := img.RGBAAt(int(3*s), int(dy+20*s))
	assert.Greater(t, attacker.R, attacker.B)

	// text is not supported
	_, err = Rasterize(root, 600, 440, StrictErrorMode, nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	dir := t.TempDir()
	path := filepath.Join(dir, "card.png")
	require.NoError(t, WritePNG(path, img))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	ref, err := toPngBytes(img)
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ref, got)
}
