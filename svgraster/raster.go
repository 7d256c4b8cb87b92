// Implements a raster backend to render mission cards,
// by walking an svgdoc tree and wrapping rasterx.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/benoitkugler/missioncard/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer drawing with `scanner`.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{dasher: rasterx.NewDasher(width, height, scanner), filler: rasterx.NewFiller(width, height, scanner)}
}

// StrokeOptions are expressed in device pixels.
type StrokeOptions struct {
	Width  float64
	Dashes []float64
	Cap    rasterx.CapFunc
	Join   rasterx.JoinMode
}

const miterLimit = 4

// Fill paints the inside of `p`, transformed by `m`.
func (rd *Renderer) Fill(p svgpath.Path, m rasterx.Matrix2D, c color.Color, opacity float64) {
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	p.AddTo(rd.filler, m)
	rd.filler.SetColor(rasterx.ApplyOpacity(c, opacity))
	rd.filler.Draw()
}

// Stroke paints the outline of `p`, transformed by `m`.
func (rd *Renderer) Stroke(p svgpath.Path, m rasterx.Matrix2D, c color.Color, opacity float64, opts StrokeOptions) {
	rd.dasher.Clear()
	rd.dasher.SetStroke(
		fixed.Int26_6(opts.Width*64), fixed.Int26_6(miterLimit*64),
		opts.Cap, opts.Cap, rasterx.FlatGap, opts.Join,
		opts.Dashes, 0,
	)
	p.AddTo(rd.dasher, m)
	rd.dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
	rd.dasher.Draw()
}

// WritePNG encodes `img` to the file at `path`.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
