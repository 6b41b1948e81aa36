package geometry

// HorizontalAlignment anchors a rectangle along the X axis.
type HorizontalAlignment int

const (
	AlignLeft HorizontalAlignment = iota
	AlignCenter
	AlignRight
)

func (h HorizontalAlignment) String() string {
	switch h {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// VerticalAlignment anchors a rectangle along the Y axis.
type VerticalAlignment int

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
)

func (v VerticalAlignment) String() string {
	switch v {
	case AlignMiddle:
		return "middle"
	case AlignBottom:
		return "bottom"
	default:
		return "top"
	}
}

// InsideAlignment names one of the nine anchor points of a rectangle.
type InsideAlignment int

const (
	TopLeft InsideAlignment = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

// InsideAlignments lists all nine anchors in row-major order.
var InsideAlignments = []InsideAlignment{
	TopLeft, TopCenter, TopRight,
	MiddleLeft, MiddleCenter, MiddleRight,
	BottomLeft, BottomCenter, BottomRight,
}

// Inside combines a horizontal and a vertical alignment into an anchor.
func Inside(h HorizontalAlignment, v VerticalAlignment) InsideAlignment {
	return InsideAlignment(int(v)*3 + int(h))
}

// Horizontal returns the horizontal component of the anchor.
func (a InsideAlignment) Horizontal() HorizontalAlignment { return HorizontalAlignment(int(a) % 3) }

// Vertical returns the vertical component of the anchor.
func (a InsideAlignment) Vertical() VerticalAlignment { return VerticalAlignment(int(a) / 3) }

func (a InsideAlignment) String() string {
	switch a {
	case TopLeft:
		return "top-left"
	case TopCenter:
		return "top-center"
	case TopRight:
		return "top-right"
	case MiddleLeft:
		return "middle-left"
	case MiddleCenter:
		return "middle-center"
	case MiddleRight:
		return "middle-right"
	case BottomLeft:
		return "bottom-left"
	case BottomCenter:
		return "bottom-center"
	case BottomRight:
		return "bottom-right"
	}
	return "unknown"
}

// Anchor returns the point of r named by a.
func (r Rect) Anchor(a InsideAlignment) Point {
	return Point{X: r.anchorX(a.Horizontal()), Y: r.anchorY(a.Vertical())}
}

func (r Rect) anchorX(h HorizontalAlignment) float64 {
	switch h {
	case AlignCenter:
		return r.MidX()
	case AlignRight:
		return r.MaxX()
	default:
		return r.MinX()
	}
}

func (r Rect) anchorY(v VerticalAlignment) float64 {
	switch v {
	case AlignMiddle:
		return r.MidY()
	case AlignBottom:
		return r.MaxY()
	default:
		return r.MinY()
	}
}

// alignedX returns the X origin that puts r's h-anchor on container's h-anchor.
func (r Rect) alignedX(container Rect, h HorizontalAlignment) float64 {
	switch h {
	case AlignCenter:
		return container.MidX() - r.Width/2
	case AlignRight:
		return container.MaxX() - r.Width
	default:
		return container.MinX()
	}
}

func (r Rect) alignedY(container Rect, v VerticalAlignment) float64 {
	switch v {
	case AlignMiddle:
		return container.MidY() - r.Height/2
	case AlignBottom:
		return container.MaxY() - r.Height
	default:
		return container.MinY()
	}
}

// PutInside returns a rectangle of r's size positioned so that its anchor
// point coincides with the same anchor point of container.
func (r Rect) PutInside(container Rect, anchor InsideAlignment) Rect {
	return Rect{
		X:      r.alignedX(container, anchor.Horizontal()),
		Y:      r.alignedY(container, anchor.Vertical()),
		Width:  r.Width,
		Height: r.Height,
	}
}

// PutAbove places r directly above container's top edge.
func (r Rect) PutAbove(container Rect, h HorizontalAlignment) Rect {
	return Rect{
		X:      r.alignedX(container, h),
		Y:      container.MinY() - r.Height,
		Width:  r.Width,
		Height: r.Height,
	}
}

// PutBelow places r directly below container's bottom edge.
func (r Rect) PutBelow(container Rect, h HorizontalAlignment) Rect {
	return Rect{
		X:      r.alignedX(container, h),
		Y:      container.MaxY(),
		Width:  r.Width,
		Height: r.Height,
	}
}

// PutOnLeft places r directly left of container's left edge.
func (r Rect) PutOnLeft(container Rect, v VerticalAlignment) Rect {
	return Rect{
		X:      container.MinX() - r.Width,
		Y:      r.alignedY(container, v),
		Width:  r.Width,
		Height: r.Height,
	}
}

// PutOnRight places r directly right of container's right edge.
func (r Rect) PutOnRight(container Rect, v VerticalAlignment) Rect {
	return Rect{
		X:      container.MaxX(),
		Y:      r.alignedY(container, v),
		Width:  r.Width,
		Height: r.Height,
	}
}
