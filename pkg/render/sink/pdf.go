package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/fonts"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/render"
)

var _ render.Surface = (*PDF)(nil)

const pdfFontFamily = "goregular"

// PDF draws onto a single PDF page whose size in points equals the canvas
// size in units. Scale is ignored.
type PDF struct {
	pdf    *gofpdf.Fpdf
	canvas Canvas
	alpha  float64
	text   *fonts.Measurer
	images int
}

// NewPDF creates a document with one page filled with the canvas background.
func NewPDF(c Canvas) *PDF {
	c = c.normalized()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: c.Size.Width, Ht: c.Size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(pdfFontFamily, "", goregular.TTF)
	pdf.AddPage()

	p := &PDF{pdf: pdf, canvas: c, alpha: 1, text: fonts.NewMeasurer()}
	if c.Background.A > 0 {
		p.FillRect(geometry.OfSize(c.Size), c.Background)
	}
	return p
}

// Output writes the document to w and closes it.
func (p *PDF) Output(w io.Writer) error {
	return p.pdf.Output(w)
}

func (p *PDF) Size() geometry.Size { return p.canvas.Size }
func (p *PDF) SetAlpha(a float64)  { p.alpha = a }

func (p *PDF) setAlpha(c blueprint.Color) bool {
	a := c.A * p.alpha
	if a <= 0 {
		return false
	}
	p.pdf.SetAlpha(min(a, 1), "Normal")
	return true
}

func (p *PDF) setFill(c blueprint.Color) bool {
	if !p.setAlpha(c) {
		return false
	}
	n := c.NRGBA()
	p.pdf.SetFillColor(int(n.R), int(n.G), int(n.B))
	return true
}

func (p *PDF) setStroke(c blueprint.Color, width float64) bool {
	if width <= 0 || !p.setAlpha(c) {
		return false
	}
	n := c.NRGBA()
	p.pdf.SetDrawColor(int(n.R), int(n.G), int(n.B))
	p.pdf.SetLineWidth(width)
	return true
}

func (p *PDF) rect(r geometry.Rect, radius float64, style string) {
	if radius > 0 {
		p.pdf.RoundedRect(r.X, r.Y, r.Width, r.Height, radius, "1234", style)
		return
	}
	p.pdf.Rect(r.X, r.Y, r.Width, r.Height, style)
}

func (p *PDF) FillRoundedRect(r geometry.Rect, radius float64, c blueprint.Color) {
	if r.IsEmpty() || !p.setFill(c) {
		return
	}
	p.rect(r, radius, "F")
}

func (p *PDF) StrokeRoundedRect(r geometry.Rect, radius, width float64, c blueprint.Color) {
	if r.IsEmpty() || !p.setStroke(c, width) {
		return
	}
	p.rect(r, radius, "D")
}

func (p *PDF) FillRect(r geometry.Rect, c blueprint.Color) {
	p.FillRoundedRect(r, 0, c)
}

func (p *PDF) StrokeRect(r geometry.Rect, width float64, c blueprint.Color) {
	p.StrokeRoundedRect(r, 0, width, c)
}

func (p *PDF) StrokeLine(from, to geometry.Point, width float64, c blueprint.Color) {
	if !p.setStroke(c, width) {
		return
	}
	p.pdf.Line(from.X, from.Y, to.X, to.Y)
}

func (p *PDF) DrawText(run render.TextRun) {
	lines := layoutLines(p.text, run)
	if len(lines) == 0 || !p.setAlpha(run.Color) {
		return
	}
	n := run.Color.NRGBA()
	p.pdf.SetTextColor(int(n.R), int(n.G), int(n.B))
	p.pdf.SetFont(pdfFontFamily, "", run.FontSize)
	for _, l := range lines {
		p.pdf.Text(l.x, l.baseline, l.text)
	}
}

// DrawImage embeds img as PNG, scaled into r.
func (p *PDF) DrawImage(img image.Image, r geometry.Rect) {
	if img == nil || r.IsEmpty() || !p.setAlpha(blueprint.White) {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return
	}
	p.images++
	name := fmt.Sprintf("image-%d", p.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader(name, opts, &buf)
	p.pdf.ImageOptions(name, r.X, r.Y, r.Width, r.Height, false, opts, 0, "")
}
