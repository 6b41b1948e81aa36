package render

import (
	"image"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/geometry"
)

// Surface is an immediate-mode 2D drawing target.
type Surface interface {
	// Size returns the canvas extent in canvas units.
	Size() geometry.Size
	// SetAlpha sets the global alpha applied to every following call.
	SetAlpha(alpha float64)
	FillRoundedRect(r geometry.Rect, radius float64, c blueprint.Color)
	StrokeRoundedRect(r geometry.Rect, radius, width float64, c blueprint.Color)
	FillRect(r geometry.Rect, c blueprint.Color)
	StrokeRect(r geometry.Rect, width float64, c blueprint.Color)
	StrokeLine(from, to geometry.Point, width float64, c blueprint.Color)
	DrawText(run TextRun)
	// DrawImage draws img scaled into r.
	DrawImage(img image.Image, r geometry.Rect)
}

// TextRun is a block of text to draw inside Rect. Lines start at Rect's top;
// Align positions each line horizontally within Rect's width.
type TextRun struct {
	Text     string
	Rect     geometry.Rect
	FontSize float64
	Color    blueprint.Color
	Align    geometry.HorizontalAlignment
	// Wrap word-wraps lines to Rect's width. Unwrapped runs only break on
	// explicit newlines.
	Wrap bool
}

// Measurer measures text for layout.
type Measurer interface {
	Measure(text string, size float64) geometry.Size
	BoundingRect(text string, size float64, constrainedTo geometry.Size) geometry.Rect
}

// ImageMetrics reports the natural size of images.
type ImageMetrics interface {
	NaturalSize(img image.Image) geometry.Size
}

// BoundsMetrics uses an image's pixel bounds as its natural size.
type BoundsMetrics struct{}

// NaturalSize returns the pixel dimensions of img, or zero for nil.
func (BoundsMetrics) NaturalSize(img image.Image) geometry.Size {
	if img == nil {
		return geometry.Size{}
	}
	b := img.Bounds()
	return geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}
