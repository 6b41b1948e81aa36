package blueprint

import (
	"image"

	"github.com/google/uuid"

	"github.com/matzehuels/framer/pkg/geometry"
)

// ID identifies a blueprint. Equality is exact string equality.
type ID string

// NewID returns a random identifier.
func NewID() ID { return ID(uuid.NewString()) }

// Blueprint is a named, ordered group of drawable primitives.
type Blueprint struct {
	ID       ID
	Contents []Content
}

// New creates a blueprint. An empty id is replaced with a generated one.
func New(id ID, contents ...Content) Blueprint {
	if id == "" {
		id = NewID()
	}
	return Blueprint{ID: id, Contents: contents}
}

// Frames returns the frame contents in draw order.
func (b Blueprint) Frames() []Frame {
	var frames []Frame
	for _, c := range b.Contents {
		if f, ok := c.(Frame); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// Content is a drawable item of a blueprint: either a [Frame] or a [Line].
type Content interface {
	isContent()
}

func (Frame) isContent() {}
func (Line) isContent()  {}

// Frame is a styled rectangle with optional inline content and annotation.
// Width and Height may be zero or negative; negative extents draw nothing.
type Frame struct {
	X, Y, Width, Height float64
	Style               FrameStyle
	Content             *FrameContent
	Annotation          *Annotation
}

// NewFrame returns a frame at the given position with the default style.
func NewFrame(x, y, width, height float64) Frame {
	return Frame{X: x, Y: y, Width: width, Height: height, Style: DefaultFrameStyle()}
}

// FrameFromRect converts a geometry rectangle to a frame with the given style.
func FrameFromRect(r geometry.Rect, style FrameStyle) Frame {
	return Frame{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Style: style}
}

// Rect returns the frame's rectangle exactly as declared.
func (f Frame) Rect() geometry.Rect {
	return geometry.NewRect(f.X, f.Y, f.Width, f.Height)
}

// FrameStyle controls how a frame's rectangle is filled and stroked.
type FrameStyle struct {
	LineWidth    float64
	LineColor    Color
	FillColor    Color
	CornerRadius float64
	Opacity      float64 // applies to fill and stroke, in [0, 1]
}

// DefaultFrameStyle returns a 1-unit black outline with no fill.
func DefaultFrameStyle() FrameStyle {
	return FrameStyle{
		LineWidth: 1,
		LineColor: Black,
		FillColor: Clear,
		Opacity:   0.75,
	}
}

// Alignment positions inline content within its frame.
type Alignment int

const (
	Leading Alignment = iota
	Center
	Trailing
)

func (a Alignment) String() string {
	switch a {
	case Center:
		return "center"
	case Trailing:
		return "trailing"
	default:
		return "leading"
	}
}

// InsideAlignment maps a horizontal/vertical content alignment pair to one of
// the nine geometry anchors.
func InsideAlignment(horizontal, vertical Alignment) geometry.InsideAlignment {
	h := [...]geometry.HorizontalAlignment{geometry.AlignLeft, geometry.AlignCenter, geometry.AlignRight}
	v := [...]geometry.VerticalAlignment{geometry.AlignTop, geometry.AlignMiddle, geometry.AlignBottom}
	return geometry.Inside(h[horizontal.clamp()], v[vertical.clamp()])
}

func (a Alignment) clamp() int {
	if a < Leading || a > Trailing {
		return int(Leading)
	}
	return int(a)
}

// FrameContent is text or an image drawn inside a frame.
type FrameContent struct {
	Payload             Payload
	HorizontalAlignment Alignment
	VerticalAlignment   Alignment
}

// Payload is the drawable part of [FrameContent]: [Text] or [Image].
type Payload interface {
	isPayload()
}

func (Text) isPayload()  {}
func (Image) isPayload() {}

// Text is a run of text wrapped to the frame's width.
type Text struct {
	Text     string
	Color    Color
	FontSize float64
}

// Image is drawn at its natural size, never scaled.
type Image struct {
	Image image.Image
}

// Annotation is a small label placed around a frame.
type Annotation struct {
	Text  string
	Style AnnotationStyle
}

// AnnotationStyle controls annotation size and placement.
type AnnotationStyle struct {
	Size      AnnotationSize
	Position  AnnotationPosition
	Alignment Alignment
}

// DefaultAnnotationStyle returns a normal-sized label above the frame's
// leading edge.
func DefaultAnnotationStyle() AnnotationStyle {
	return AnnotationStyle{Size: SizeNormal, Position: PositionTop, Alignment: Leading}
}

// AnnotationSize is the annotation font size in points.
type AnnotationSize float64

const (
	SizeTiny   AnnotationSize = 6
	SizeSmall  AnnotationSize = 8
	SizeNormal AnnotationSize = 12
	SizeLarge  AnnotationSize = 16
)

// AnnotationPosition names the frame edge an annotation attaches to.
type AnnotationPosition int

const (
	PositionTop AnnotationPosition = iota
	PositionBottom
	PositionLeft
	PositionRight
)

func (p AnnotationPosition) String() string {
	switch p {
	case PositionBottom:
		return "bottom"
	case PositionLeft:
		return "left"
	case PositionRight:
		return "right"
	default:
		return "top"
	}
}

// Line is a straight segment between two points.
type Line struct {
	From, To geometry.Point
	Style    LineStyle
}

// NewLine returns a line with the default style.
func NewLine(from, to geometry.Point) Line {
	return Line{From: from, To: to, Style: DefaultLineStyle()}
}

// LineStyle controls how a line is stroked.
type LineStyle struct {
	LineWidth float64
	LineColor Color
	Opacity   float64
}

// DefaultLineStyle returns a 1-unit black stroke at 0.75 opacity.
func DefaultLineStyle() LineStyle {
	return LineStyle{LineWidth: 1, LineColor: Black, Opacity: 0.75}
}
