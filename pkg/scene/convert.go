package scene

import (
	"fmt"
	"image"
	"strings"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/errors"
	"github.com/matzehuels/framer/pkg/geometry"
)

// ImageLoader resolves an image path from a document.
type ImageLoader func(path string) (image.Image, error)

// Blueprint converts the document entry into a blueprint, generating an id
// when none is given. Image content is resolved through load; a nil loader
// rejects image content.
func (b BlueprintSpec) Blueprint(load ImageLoader) (blueprint.Blueprint, error) {
	if b.ID != "" {
		if err := errors.ValidateBlueprintID(b.ID); err != nil {
			return blueprint.Blueprint{}, err
		}
	}
	contents := make([]blueprint.Content, 0, len(b.Contents))
	for i, c := range b.Contents {
		content, err := c.content(load)
		if err != nil {
			return blueprint.Blueprint{}, fmt.Errorf("content %d: %w", i, err)
		}
		contents = append(contents, content)
	}
	return blueprint.New(blueprint.ID(b.ID), contents...), nil
}

func (c ContentSpec) content(load ImageLoader) (blueprint.Content, error) {
	switch {
	case c.Frame != nil && c.Line != nil:
		return nil, errors.New(errors.ErrCodeInvalidScene, "content has both frame and line")
	case c.Frame != nil:
		return c.Frame.frame(load)
	case c.Line != nil:
		return c.Line.line()
	}
	return nil, errors.New(errors.ErrCodeInvalidScene, "content needs a frame or a line")
}

func (f FrameSpec) frame(load ImageLoader) (blueprint.Frame, error) {
	frame := blueprint.NewFrame(f.X, f.Y, f.Width, f.Height)
	if f.Style != nil {
		style, err := f.Style.style()
		if err != nil {
			return blueprint.Frame{}, err
		}
		frame.Style = style
	}

	h, err := parseAlignment(f.HAlign)
	if err != nil {
		return blueprint.Frame{}, err
	}
	v, err := parseAlignment(f.VAlign)
	if err != nil {
		return blueprint.Frame{}, err
	}

	switch {
	case f.Text != nil && f.Image != nil:
		return blueprint.Frame{}, errors.New(errors.ErrCodeInvalidScene, "frame has both text and image")
	case f.Text != nil:
		text, err := f.Text.text()
		if err != nil {
			return blueprint.Frame{}, err
		}
		frame.Content = &blueprint.FrameContent{Payload: text, HorizontalAlignment: h, VerticalAlignment: v}
	case f.Image != nil:
		if load == nil {
			return blueprint.Frame{}, errors.New(errors.ErrCodeUnsupported, "image content is not available here")
		}
		img, err := load(f.Image.Path)
		if err != nil {
			return blueprint.Frame{}, err
		}
		frame.Content = &blueprint.FrameContent{Payload: blueprint.Image{Image: img}, HorizontalAlignment: h, VerticalAlignment: v}
	}

	if f.Annotation != nil {
		a, err := f.Annotation.annotation()
		if err != nil {
			return blueprint.Frame{}, err
		}
		frame.Annotation = &a
	}
	return frame, nil
}

func (s FrameStyleSpec) style() (blueprint.FrameStyle, error) {
	style := blueprint.DefaultFrameStyle()
	if s.LineWidth != nil {
		style.LineWidth = *s.LineWidth
	}
	if s.CornerRadius != nil {
		style.CornerRadius = *s.CornerRadius
	}
	if s.Opacity != nil {
		style.Opacity = *s.Opacity
	}
	var err error
	if style.LineColor, err = parseColor(s.LineColor, style.LineColor); err != nil {
		return style, err
	}
	if style.FillColor, err = parseColor(s.FillColor, style.FillColor); err != nil {
		return style, err
	}
	return style, nil
}

func (t TextSpec) text() (blueprint.Text, error) {
	c, err := parseColor(t.Color, blueprint.Black)
	if err != nil {
		return blueprint.Text{}, err
	}
	return blueprint.Text{Text: t.Text, Color: c, FontSize: t.Size}, nil
}

func (a AnnotationSpec) annotation() (blueprint.Annotation, error) {
	style := blueprint.DefaultAnnotationStyle()
	var err error
	if style.Size, err = parseSize(a.Size); err != nil {
		return blueprint.Annotation{}, err
	}
	if style.Position, err = parsePosition(a.Position); err != nil {
		return blueprint.Annotation{}, err
	}
	if style.Alignment, err = parseAlignment(a.Alignment); err != nil {
		return blueprint.Annotation{}, err
	}
	return blueprint.Annotation{Text: a.Text, Style: style}, nil
}

func (l LineSpec) line() (blueprint.Line, error) {
	line := blueprint.NewLine(geometry.Point{X: l.From.X, Y: l.From.Y}, geometry.Point{X: l.To.X, Y: l.To.Y})
	if l.Style == nil {
		return line, nil
	}
	if l.Style.LineWidth != nil {
		line.Style.LineWidth = *l.Style.LineWidth
	}
	if l.Style.Opacity != nil {
		line.Style.Opacity = *l.Style.Opacity
	}
	c, err := parseColor(l.Style.LineColor, line.Style.LineColor)
	if err != nil {
		return blueprint.Line{}, err
	}
	line.Style.LineColor = c
	return line, nil
}

func parseColor(s string, fallback blueprint.Color) (blueprint.Color, error) {
	if s == "" {
		return fallback, nil
	}
	c, err := blueprint.ParseColor(s)
	if err != nil {
		return fallback, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c, nil
}

func parseAlignment(s string) (blueprint.Alignment, error) {
	switch strings.ToLower(s) {
	case "", "leading":
		return blueprint.Leading, nil
	case "center":
		return blueprint.Center, nil
	case "trailing":
		return blueprint.Trailing, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidScene, "invalid alignment %q (want leading, center or trailing)", s)
}

var sizes = map[string]blueprint.AnnotationSize{
	"tiny":   blueprint.SizeTiny,
	"small":  blueprint.SizeSmall,
	"normal": blueprint.SizeNormal,
	"large":  blueprint.SizeLarge,
}

func parseSize(s string) (blueprint.AnnotationSize, error) {
	if s == "" {
		return blueprint.SizeNormal, nil
	}
	if size, ok := sizes[strings.ToLower(s)]; ok {
		return size, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidScene, "invalid annotation size %q (want tiny, small, normal or large)", s)
}

func sizeName(size blueprint.AnnotationSize) string {
	for name, s := range sizes {
		if s == size {
			return name
		}
	}
	return ""
}

func parsePosition(s string) (blueprint.AnnotationPosition, error) {
	switch strings.ToLower(s) {
	case "", "top":
		return blueprint.PositionTop, nil
	case "bottom":
		return blueprint.PositionBottom, nil
	case "left":
		return blueprint.PositionLeft, nil
	case "right":
		return blueprint.PositionRight, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidScene, "invalid annotation position %q (want top, bottom, left or right)", s)
}

// SpecOf converts a blueprint back into its encoded form. Images cannot be
// referenced by path after loading; they are written with an empty path and
// their pixel size.
func SpecOf(b blueprint.Blueprint) BlueprintSpec {
	spec := BlueprintSpec{ID: string(b.ID), Contents: make([]ContentSpec, 0, len(b.Contents))}
	for _, c := range b.Contents {
		switch c := c.(type) {
		case blueprint.Frame:
			spec.Contents = append(spec.Contents, ContentSpec{Frame: frameSpec(c)})
		case blueprint.Line:
			spec.Contents = append(spec.Contents, ContentSpec{Line: lineSpec(c)})
		}
	}
	return spec
}

func frameSpec(f blueprint.Frame) *FrameSpec {
	lineWidth, radius, opacity := f.Style.LineWidth, f.Style.CornerRadius, f.Style.Opacity
	spec := &FrameSpec{
		X: f.X, Y: f.Y, Width: f.Width, Height: f.Height,
		Style: &FrameStyleSpec{
			LineWidth:    &lineWidth,
			LineColor:    f.Style.LineColor.Hex(),
			FillColor:    f.Style.FillColor.Hex(),
			CornerRadius: &radius,
			Opacity:      &opacity,
		},
	}
	if c := f.Content; c != nil {
		spec.HAlign = c.HorizontalAlignment.String()
		spec.VAlign = c.VerticalAlignment.String()
		switch p := c.Payload.(type) {
		case blueprint.Text:
			spec.Text = &TextSpec{Text: p.Text, Color: p.Color.Hex(), Size: p.FontSize}
		case blueprint.Image:
			img := &ImageSpec{}
			if p.Image != nil {
				b := p.Image.Bounds()
				img.Width, img.Height = b.Dx(), b.Dy()
			}
			spec.Image = img
		}
	}
	if a := f.Annotation; a != nil {
		spec.Annotation = &AnnotationSpec{
			Text:      a.Text,
			Size:      sizeName(a.Style.Size),
			Position:  a.Style.Position.String(),
			Alignment: a.Style.Alignment.String(),
		}
	}
	return spec
}

func lineSpec(l blueprint.Line) *LineSpec {
	width, opacity := l.Style.LineWidth, l.Style.Opacity
	return &LineSpec{
		From: PointSpec{X: l.From.X, Y: l.From.Y},
		To:   PointSpec{X: l.To.X, Y: l.To.Y},
		Style: &LineStyleSpec{
			LineWidth: &width,
			LineColor: l.Style.LineColor.Hex(),
			Opacity:   &opacity,
		},
	}
}
