package sink

import (
	"image"
	"io"
	"math"
	"strings"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/errors"
	"github.com/matzehuels/framer/pkg/fonts"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/render"
)

// Format names an output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatPNG, FormatPDF, FormatSVG}

// ParseFormat parses a format name, ignoring case and a leading dot so file
// extensions can be passed directly.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case FormatPNG, FormatPDF, FormatSVG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want png, pdf or svg)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "image/png"
	}
}

// Canvas describes the drawing area shared by all sinks.
type Canvas struct {
	Size       geometry.Size
	Scale      float64 // device pixels per canvas unit; raster only
	Background blueprint.Color
}

func (c Canvas) normalized() Canvas {
	if c.Scale <= 0 {
		c.Scale = 1
	}
	c.Size.Width = math.Max(0, c.Size.Width)
	c.Size.Height = math.Max(0, c.Size.Height)
	return c
}

// Pixels returns the raster dimensions of the canvas, at least 1x1.
func (c Canvas) Pixels() (width, height int) {
	c = c.normalized()
	width = max(1, int(math.Ceil(c.Size.Width*c.Scale)))
	height = max(1, int(math.Ceil(c.Size.Height*c.Scale)))
	return width, height
}

// RenderImage draws blueprints onto a fresh raster canvas and returns the
// image.
func RenderImage(r *render.Renderer, c Canvas, blueprints []blueprint.Blueprint) (image.Image, render.Pass) {
	s := NewRaster(c)
	defer s.Close()
	pass := r.Render(s, blueprints)
	return s.Image(), pass
}

// Write renders blueprints in format f and writes the result to w.
func Write(w io.Writer, f Format, r *render.Renderer, c Canvas, blueprints []blueprint.Blueprint) (render.Pass, error) {
	switch f {
	case FormatPNG:
		s := NewRaster(c)
		defer s.Close()
		pass := r.Render(s, blueprints)
		if err := s.EncodePNG(w); err != nil {
			return pass, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
		}
		return pass, nil
	case FormatPDF:
		s := NewPDF(c)
		pass := r.Render(s, blueprints)
		if err := s.Output(w); err != nil {
			return pass, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
		}
		return pass, nil
	case FormatSVG:
		s := NewSVG(c)
		pass := r.Render(s, blueprints)
		if _, err := w.Write(s.Bytes()); err != nil {
			return pass, errors.Wrap(errors.ErrCodeInternal, err, "write svg")
		}
		return pass, nil
	}
	return render.Pass{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
}

// placedLine is one line of a text run, positioned on its baseline.
type placedLine struct {
	text     string
	x        float64
	baseline float64
}

// layoutLines breaks run into lines and positions them in canvas units.
// Lines start at the run's top and are aligned within its width.
func layoutLines(m *fonts.Measurer, run render.TextRun) []placedLine {
	if run.Text == "" || run.FontSize <= 0 {
		return nil
	}
	var lines []string
	if run.Wrap && run.Rect.Width > 0 {
		lines = m.Wrap(run.Text, run.FontSize, run.Rect.Width)
	} else {
		lines = strings.Split(run.Text, "\n")
	}

	metrics := m.Metrics(run.FontSize)
	y := run.Rect.MinY() + metrics.Ascent
	placed := make([]placedLine, 0, len(lines))
	for _, line := range lines {
		x := run.Rect.MinX()
		switch run.Align {
		case geometry.AlignCenter:
			x = run.Rect.MidX() - m.TextWidth(line, run.FontSize)/2
		case geometry.AlignRight:
			x = run.Rect.MaxX() - m.TextWidth(line, run.FontSize)
		}
		placed = append(placed, placedLine{text: line, x: x, baseline: y})
		y += metrics.LineHeight
	}
	return placed
}
