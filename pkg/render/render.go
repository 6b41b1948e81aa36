package render

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/fonts"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/observability"
)

// DefaultTextSize is used for frame text that does not set a font size.
const DefaultTextSize = 12.0

// Option configures a Renderer.
type Option func(*Renderer)

// Renderer draws blueprints. The zero value is not usable; call [New].
type Renderer struct {
	measurer Measurer
	images   ImageMetrics
	logger   *log.Logger
}

func WithMeasurer(m Measurer) Option         { return func(r *Renderer) { r.measurer = m } }
func WithImageMetrics(m ImageMetrics) Option { return func(r *Renderer) { r.images = m } }
func WithLogger(l *log.Logger) Option        { return func(r *Renderer) { r.logger = l } }

// New creates a renderer. Without options it measures text with
// [fonts.NewMeasurer] and sizes images by their pixel bounds.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.measurer == nil {
		r.measurer = fonts.NewMeasurer()
	}
	if r.images == nil {
		r.images = BoundsMetrics{}
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Pass describes what a single [Renderer.Render] call drew.
type Pass struct {
	Blueprints  int
	Contents    int
	Annotations []AnnotationMark
}

// Collisions returns the number of annotations marked as colliding.
func (p Pass) Collisions() int {
	n := 0
	for _, a := range p.Annotations {
		if a.Collides {
			n++
		}
	}
	return n
}

// AnnotationMark records where an annotation was drawn.
type AnnotationMark struct {
	Blueprint  blueprint.ID
	Text       string
	Rect       geometry.Rect
	Background blueprint.Color
	Foreground blueprint.Color
	Collides   bool
}

// annotated is a frame waiting for the annotation pass.
type annotated struct {
	owner blueprint.ID
	frame blueprint.Frame
}

// Render draws blueprints onto s in order, then overlays their annotations.
func (r *Renderer) Render(s Surface, blueprints []blueprint.Blueprint) Pass {
	start := time.Now()
	observability.Render().OnRenderStart(len(blueprints))

	pass := Pass{Blueprints: len(blueprints)}
	var pending []annotated

	for _, bp := range blueprints {
		for _, content := range bp.Contents {
			switch c := content.(type) {
			case blueprint.Frame:
				r.drawFrame(s, c)
				if c.Annotation != nil {
					pending = append(pending, annotated{owner: bp.ID, frame: c})
				}
			case blueprint.Line:
				r.drawLine(s, c)
			default:
				continue
			}
			pass.Contents++
		}
	}

	pass.Annotations = r.drawAnnotations(s, pending)

	elapsed := time.Since(start)
	observability.Render().OnRenderComplete(observability.RenderStats{
		Blueprints:  pass.Blueprints,
		Contents:    pass.Contents,
		Annotations: len(pass.Annotations),
		Collisions:  pass.Collisions(),
	}, elapsed)
	r.logger.Debug("rendered blueprints",
		"blueprints", pass.Blueprints,
		"contents", pass.Contents,
		"annotations", len(pass.Annotations),
		"collisions", pass.Collisions(),
		"elapsed", elapsed)
	return pass
}

// frameRect returns the frame's rectangle, or false when a negative extent
// makes it empty.
func frameRect(f blueprint.Frame) (geometry.Rect, bool) {
	rect := f.Rect()
	if rect.Width < 0 || rect.Height < 0 {
		return rect.Standardized(), false
	}
	return rect, true
}

func (r *Renderer) drawFrame(s Surface, f blueprint.Frame) {
	rect, ok := frameRect(f)
	if !ok {
		return
	}

	s.SetAlpha(f.Style.Opacity)
	s.FillRoundedRect(rect, f.Style.CornerRadius, f.Style.FillColor)
	s.StrokeRoundedRect(rect, f.Style.CornerRadius, f.Style.LineWidth, f.Style.LineColor)

	if f.Content != nil {
		r.drawContent(s, rect, *f.Content)
	}
	s.SetAlpha(1)
}

func (r *Renderer) drawContent(s Surface, rect geometry.Rect, content blueprint.FrameContent) {
	switch p := content.Payload.(type) {
	case blueprint.Text:
		run, ok := r.layoutText(rect, p, content.HorizontalAlignment, content.VerticalAlignment)
		if ok {
			s.DrawText(run)
		}
	case blueprint.Image:
		size := r.images.NaturalSize(p.Image)
		if size.IsZero() {
			return
		}
		anchor := blueprint.InsideAlignment(content.HorizontalAlignment, content.VerticalAlignment)
		s.DrawImage(p.Image, geometry.OfSize(size).PutInside(rect, anchor))
	}
}

// layoutText resolves the sub-rectangle of rect that text occupies. The
// horizontal alignment is applied per line by the surface; the vertical
// alignment anchors the measured block to the top, middle or bottom of rect.
func (r *Renderer) layoutText(rect geometry.Rect, t blueprint.Text, horizontal, vertical blueprint.Alignment) (TextRun, bool) {
	size := t.FontSize
	if size <= 0 {
		size = DefaultTextSize
	}
	bb := r.measurer.BoundingRect(t.Text, size, rect.Size())
	if bb.IsEmpty() {
		return TextRun{}, false
	}

	textRect := geometry.Rect{X: rect.MinX(), Width: rect.Width, Height: bb.Height}
	switch vertical {
	case blueprint.Center:
		textRect.Y = rect.MinY() + (rect.Height-bb.Height)/2
	case blueprint.Trailing:
		textRect.Y = rect.MaxY() - bb.Height
	default:
		textRect.Y = rect.MinY()
	}

	return TextRun{
		Text:     t.Text,
		Rect:     textRect,
		FontSize: size,
		Color:    t.Color,
		Align:    blueprint.InsideAlignment(horizontal, blueprint.Leading).Horizontal(),
		Wrap:     true,
	}, true
}

func (r *Renderer) drawLine(s Surface, l blueprint.Line) {
	s.SetAlpha(l.Style.Opacity)
	s.StrokeLine(l.From, l.To, l.Style.LineWidth, l.Style.LineColor)
	s.SetAlpha(1)
}
