// Package fonts provides the font faces and text measurement used to draw
// blueprint text and annotations.
//
// Text is set in Go Regular, which ships with golang.org/x/image, so
// measurement and drawing agree on every platform without system fonts.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is used when a caller asks for a non-positive font size.
const DefaultSize = 12.0

// DPI at which faces are created; one point maps to one canvas unit.
const DPI = 72

// Parsed font (computed once on first access).
var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns the parsed Go Regular font.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Source hands out faces of the regular font by point size. Faces are cached
// per size. A Source is not safe for concurrent use, matching the faces it
// returns.
type Source struct {
	faces map[float64]font.Face
}

// NewSource creates an empty face cache.
func NewSource() *Source {
	return &Source{faces: make(map[float64]font.Face)}
}

// Face returns the face for size, creating it on first use.
func (s *Source) Face(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if f, ok := s.faces[size]; ok {
		return f, nil
	}
	fnt, err := Regular()
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("face %.1fpt: %w", size, err)
	}
	s.faces[size] = f
	return f, nil
}

// Metrics describes the vertical layout of a face in canvas units.
type Metrics struct {
	Ascent     float64
	Descent    float64
	LineHeight float64
}

// FaceMetrics returns the vertical metrics of f.
func FaceMetrics(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:     toFloat(m.Ascent),
		Descent:    toFloat(m.Descent),
		LineHeight: toFloat(m.Height),
	}
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Close releases all cached faces.
func (s *Source) Close() error {
	for size, f := range s.faces {
		_ = f.Close()
		delete(s.faces, size)
	}
	return nil
}
