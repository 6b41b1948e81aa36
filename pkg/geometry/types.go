// Package geometry provides the rectangle arithmetic used to lay out
// blueprint content and annotations.
//
// All operations are pure value transformations. Placement functions compute
// every coordinate with a single addition or subtraction of input values, so
// results are exact to the precision of the inputs:
//
//	label := geometry.Rect{Width: 40, Height: 12}
//	label = label.PutAbove(frame, geometry.AlignCenter)
//
// Negative sizes are never produced by this package: [Rect.Inset] clamps at
// zero and [Rect.Standardized] clamps sizes supplied by callers.
package geometry

import "math"

// Point represents a 2D point in canvas units.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Size represents a 2D extent in canvas units.
type Size struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// IsZero reports whether either dimension is non-positive.
func (s Size) IsZero() bool { return s.Width <= 0 || s.Height <= 0 }

// Rect represents an axis-aligned rectangle with its origin at the top-left
// corner. The Y axis grows downwards.
type Rect struct {
	X      float64 `json:"x" yaml:"x" toml:"x"`
	Y      float64 `json:"y" yaml:"y" toml:"y"`
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// OfSize returns a rectangle of the given size at the origin.
func OfSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MidX() float64 { return r.X + r.Width/2 }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Standardized returns r with negative width or height clamped to zero.
// The origin is kept, so a frame declared with a negative size collapses
// to an empty rectangle at its declared position.
func (r Rect) Standardized() Rect {
	r.Width = math.Max(0, r.Width)
	r.Height = math.Max(0, r.Height)
	return r
}

// OffsetBy returns r translated by (dx, dy).
func (r Rect) OffsetBy(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Inset shrinks r by fixed margins on each side. When the margins exceed the
// extent on an axis, that dimension clamps to zero and the origin stays at the
// inset position.
func (r Rect) Inset(top, left, bottom, right float64) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  math.Max(0, r.Width-left-right),
		Height: math.Max(0, r.Height-top-bottom),
	}
}

// Intersects reports whether r and other overlap with a positive area.
// Rectangles that only share an edge, and empty rectangles, never intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.MaxX() && r.MaxX() > other.X &&
		r.Y < other.MaxY() && r.MaxY() > other.Y
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() &&
		p.Y >= r.Y && p.Y <= r.MaxY()
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x2 := math.Max(r.MaxX(), other.MaxX())
	y2 := math.Max(r.MaxY(), other.MaxY())
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}
