package sink

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/fonts"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/render"
)

var _ render.Surface = (*Raster)(nil)

// Raster draws onto an RGBA image. Coordinates are canvas units; the image
// has Scale device pixels per unit.
type Raster struct {
	dc     *gg.Context
	canvas Canvas
	alpha  float64
	faces  *fonts.Source
	text   *fonts.Measurer
}

// NewRaster creates a raster cleared to the canvas background.
func NewRaster(c Canvas) *Raster {
	c = c.normalized()
	w, h := c.Pixels()
	dc := gg.NewContext(w, h)
	if c.Background.A > 0 {
		dc.SetColor(c.Background)
		dc.Clear()
	}
	return &Raster{
		dc:     dc,
		canvas: c,
		alpha:  1,
		faces:  fonts.NewSource(),
		text:   fonts.NewMeasurer(),
	}
}

// Image returns the drawn image. It is the raster's backing store and
// changes with further drawing.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }

// Close releases cached font faces.
func (r *Raster) Close() error { return r.faces.Close() }

func (r *Raster) Size() geometry.Size { return r.canvas.Size }
func (r *Raster) SetAlpha(a float64)  { r.alpha = a }

func (r *Raster) px(v float64) float64 { return v * r.canvas.Scale }

// paint applies the global alpha to c.
func (r *Raster) paint(c blueprint.Color) color.Color {
	return c.WithAlpha(c.A * r.alpha)
}

func (r *Raster) visible(c blueprint.Color) bool { return c.A*r.alpha > 0 }

func (r *Raster) roundedRect(rect geometry.Rect, radius float64) {
	if radius > 0 {
		r.dc.DrawRoundedRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.Width), r.px(rect.Height), r.px(radius))
		return
	}
	r.dc.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.Width), r.px(rect.Height))
}

func (r *Raster) FillRoundedRect(rect geometry.Rect, radius float64, c blueprint.Color) {
	if rect.IsEmpty() || !r.visible(c) {
		return
	}
	r.roundedRect(rect, radius)
	r.dc.SetColor(r.paint(c))
	r.dc.Fill()
}

func (r *Raster) StrokeRoundedRect(rect geometry.Rect, radius, width float64, c blueprint.Color) {
	if rect.IsEmpty() || width <= 0 || !r.visible(c) {
		return
	}
	r.roundedRect(rect, radius)
	r.dc.SetLineWidth(r.px(width))
	r.dc.SetColor(r.paint(c))
	r.dc.Stroke()
}

func (r *Raster) FillRect(rect geometry.Rect, c blueprint.Color) {
	r.FillRoundedRect(rect, 0, c)
}

func (r *Raster) StrokeRect(rect geometry.Rect, width float64, c blueprint.Color) {
	r.StrokeRoundedRect(rect, 0, width, c)
}

func (r *Raster) StrokeLine(from, to geometry.Point, width float64, c blueprint.Color) {
	if width <= 0 || !r.visible(c) {
		return
	}
	r.dc.DrawLine(r.px(from.X), r.px(from.Y), r.px(to.X), r.px(to.Y))
	r.dc.SetLineWidth(r.px(width))
	r.dc.SetColor(r.paint(c))
	r.dc.Stroke()
}

func (r *Raster) DrawText(run render.TextRun) {
	if !r.visible(run.Color) {
		return
	}
	lines := layoutLines(r.text, run)
	if len(lines) == 0 {
		return
	}
	face, err := r.faces.Face(r.px(run.FontSize))
	if err != nil {
		return
	}
	r.dc.SetFontFace(face)
	r.dc.SetColor(r.paint(run.Color))
	for _, l := range lines {
		r.dc.DrawString(l.text, r.px(l.x), r.px(l.baseline))
	}
}

// DrawImage scales img into rect with bilinear filtering.
func (r *Raster) DrawImage(img image.Image, rect geometry.Rect) {
	if img == nil || rect.IsEmpty() || r.alpha <= 0 {
		return
	}
	dst, ok := r.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	target := image.Rect(
		int(math.Round(r.px(rect.MinX()))), int(math.Round(r.px(rect.MinY()))),
		int(math.Round(r.px(rect.MaxX()))), int(math.Round(r.px(rect.MaxY()))),
	)
	if target.Empty() {
		return
	}

	var opts *xdraw.Options
	if r.alpha < 1 {
		opts = &xdraw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(r.alpha * 255))})}
	}
	xdraw.ApproxBiLinear.Scale(dst, target, img, img.Bounds(), xdraw.Over, opts)
}
