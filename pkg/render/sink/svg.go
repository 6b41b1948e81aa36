package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/fonts"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/render"
)

var _ render.Surface = (*SVG)(nil)

// SVG writes drawing calls as SVG elements in call order.
type SVG struct {
	buf    bytes.Buffer
	canvas Canvas
	alpha  float64
	text   *fonts.Measurer
}

// NewSVG starts a document sized to the canvas.
func NewSVG(c Canvas) *SVG {
	c = c.normalized()
	s := &SVG{canvas: c, alpha: 1, text: fonts.NewMeasurer()}
	fmt.Fprintf(&s.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.Size.Width, c.Size.Height, c.Size.Width*c.Scale, c.Size.Height*c.Scale)
	if c.Background.A > 0 {
		s.FillRect(geometry.OfSize(c.Size), c.Background)
	}
	return s
}

// Bytes returns the finished document. Drawing may continue afterwards.
func (s *SVG) Bytes() []byte {
	out := make([]byte, 0, s.buf.Len()+8)
	out = append(out, s.buf.Bytes()...)
	return append(out, "</svg>\n"...)
}

func (s *SVG) Size() geometry.Size { return s.canvas.Size }
func (s *SVG) SetAlpha(a float64)  { s.alpha = a }

// paint returns the opaque hex color and the effective opacity of c.
func (s *SVG) paint(c blueprint.Color) (string, float64) {
	return c.WithAlpha(1).Hex(), c.A * s.alpha
}

func (s *SVG) FillRoundedRect(r geometry.Rect, radius float64, c blueprint.Color) {
	hex, opacity := s.paint(c)
	if r.IsEmpty() || opacity <= 0 {
		return
	}
	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
		r.X, r.Y, r.Width, r.Height, max(radius, 0), hex, opacity)
}

func (s *SVG) StrokeRoundedRect(r geometry.Rect, radius, width float64, c blueprint.Color) {
	hex, opacity := s.paint(c)
	if r.IsEmpty() || width <= 0 || opacity <= 0 {
		return
	}
	fmt.Fprintf(&s.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="none" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f"/>`+"\n",
		r.X, r.Y, r.Width, r.Height, max(radius, 0), hex, width, opacity)
}

func (s *SVG) FillRect(r geometry.Rect, c blueprint.Color) {
	s.FillRoundedRect(r, 0, c)
}

func (s *SVG) StrokeRect(r geometry.Rect, width float64, c blueprint.Color) {
	s.StrokeRoundedRect(r, 0, width, c)
}

func (s *SVG) StrokeLine(from, to geometry.Point, width float64, c blueprint.Color) {
	hex, opacity := s.paint(c)
	if width <= 0 || opacity <= 0 {
		return
	}
	fmt.Fprintf(&s.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f"/>`+"\n",
		from.X, from.Y, to.X, to.Y, hex, width, opacity)
}

func (s *SVG) DrawText(run render.TextRun) {
	hex, opacity := s.paint(run.Color)
	if opacity <= 0 {
		return
	}
	for _, l := range layoutLines(s.text, run) {
		fmt.Fprintf(&s.buf, `  <text x="%.2f" y="%.2f" font-family="Go, sans-serif" font-size="%.1f" fill="%s" fill-opacity="%.3f">`,
			l.x, l.baseline, run.FontSize, hex, opacity)
		_ = xml.EscapeText(&s.buf, []byte(l.text))
		s.buf.WriteString("</text>\n")
	}
}

// DrawImage embeds img as a PNG data URI stretched to r.
func (s *SVG) DrawImage(img image.Image, r geometry.Rect) {
	if img == nil || r.IsEmpty() || s.alpha <= 0 {
		return
	}
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return
	}
	fmt.Fprintf(&s.buf, `  <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" opacity="%.3f" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`+"\n",
		r.X, r.Y, r.Width, r.Height, s.alpha, base64.StdEncoding.EncodeToString(encoded.Bytes()))
}
