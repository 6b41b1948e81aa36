package render

import (
	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/geometry"
)

const (
	// colorAlphaThreshold is the alpha above which a frame color is used as
	// an annotation background.
	colorAlphaThreshold = 0.1
	collisionLineWidth  = 2
)

// AnnotationColors returns the background and foreground colors for an
// annotation attached to a frame with the given style. The fill color wins
// when visible, then the line color, then a neutral gray pair.
func AnnotationColors(style blueprint.FrameStyle) (background, foreground blueprint.Color) {
	switch {
	case style.FillColor.A > colorAlphaThreshold:
		return style.FillColor, style.FillColor.HighContrast()
	case style.LineColor.A > colorAlphaThreshold:
		return style.LineColor, style.LineColor.HighContrast()
	default:
		return blueprint.LightGray, blueprint.Gray
	}
}

// PlaceAnnotation positions a label of the given size around frame.
func PlaceAnnotation(label geometry.Size, frame geometry.Rect, style blueprint.AnnotationStyle) geometry.Rect {
	r := geometry.OfSize(label)
	switch style.Position {
	case blueprint.PositionBottom:
		return r.PutBelow(frame, horizontalAlignment(style.Alignment))
	case blueprint.PositionLeft:
		return r.PutOnLeft(frame, verticalAlignment(style.Alignment))
	case blueprint.PositionRight:
		return r.PutOnRight(frame, verticalAlignment(style.Alignment))
	default:
		return r.PutAbove(frame, horizontalAlignment(style.Alignment))
	}
}

func horizontalAlignment(a blueprint.Alignment) geometry.HorizontalAlignment {
	switch a {
	case blueprint.Center:
		return geometry.AlignCenter
	case blueprint.Trailing:
		return geometry.AlignRight
	default:
		return geometry.AlignLeft
	}
}

func verticalAlignment(a blueprint.Alignment) geometry.VerticalAlignment {
	switch a {
	case blueprint.Center:
		return geometry.AlignMiddle
	case blueprint.Trailing:
		return geometry.AlignBottom
	default:
		return geometry.AlignTop
	}
}

// drawAnnotations draws every pending annotation in order. Annotations are
// always fully opaque regardless of their frame's opacity.
func (r *Renderer) drawAnnotations(s Surface, pending []annotated) []AnnotationMark {
	if len(pending) == 0 {
		return nil
	}
	s.SetAlpha(1)

	marks := make([]AnnotationMark, 0, len(pending))
	drawn := make([]geometry.Rect, 0, len(pending))

	for _, p := range pending {
		a := p.frame.Annotation
		bg, fg := AnnotationColors(p.frame.Style)
		size := float64(a.Style.Size)

		frame := p.frame.Rect().Standardized()
		rect := PlaceAnnotation(r.measurer.Measure(a.Text, size), frame, a.Style)

		s.FillRect(rect, bg)
		s.DrawText(TextRun{
			Text:     a.Text,
			Rect:     rect,
			FontSize: size,
			Color:    fg,
			Align:    geometry.AlignLeft,
		})

		collides := false
		for _, prev := range drawn {
			if prev.Intersects(rect) {
				collides = true
				break
			}
		}
		if collides {
			s.StrokeRect(rect, collisionLineWidth, blueprint.Red)
			r.logger.Debug("annotation collides", "blueprint", p.owner, "text", a.Text)
		}
		drawn = append(drawn, rect)

		marks = append(marks, AnnotationMark{
			Blueprint:  p.owner,
			Text:       a.Text,
			Rect:       rect,
			Background: bg,
			Foreground: fg,
			Collides:   collides,
		})
	}
	return marks
}
