package fonts

import (
	"math"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/framer/pkg/geometry"
)

// Measurer measures text set in the regular font. It is safe for concurrent
// use.
type Measurer struct {
	mu     sync.Mutex
	source *Source
	dc     *gg.Context
}

// NewMeasurer creates a measurer with its own face cache.
func NewMeasurer() *Measurer {
	return &Measurer{source: NewSource(), dc: gg.NewContext(1, 1)}
}

// Measure returns the size of text set on unwrapped lines. Explicit line
// breaks start new lines. Empty text and font failures measure as zero.
func (m *Measurer) Measure(text string, size float64) geometry.Size {
	if text == "" {
		return geometry.Size{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.source.Face(size)
	if err != nil {
		return geometry.Size{}
	}
	return measureLines(face, strings.Split(text, "\n"))
}

// BoundingRect returns the rectangle occupied by text word-wrapped to the
// constrained width. The rectangle's origin is zero. A non-positive width
// yields an empty rectangle.
func (m *Measurer) BoundingRect(text string, size float64, constrainedTo geometry.Size) geometry.Rect {
	if text == "" || constrainedTo.Width <= 0 {
		return geometry.Rect{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.source.Face(size)
	if err != nil {
		return geometry.Rect{}
	}
	m.dc.SetFontFace(face)
	lines := m.dc.WordWrap(text, constrainedTo.Width)
	s := measureLines(face, lines)
	return geometry.Rect{Width: math.Min(s.Width, constrainedTo.Width), Height: s.Height}
}

// Wrap splits text into the lines it occupies at the given width.
func (m *Measurer) Wrap(text string, size, width float64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.source.Face(size)
	if err != nil {
		return nil
	}
	m.dc.SetFontFace(face)
	return m.dc.WordWrap(text, width)
}

// Metrics returns the vertical metrics of the face at size, or zero metrics
// when the face cannot be created.
func (m *Measurer) Metrics(size float64) Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.source.Face(size)
	if err != nil {
		return Metrics{}
	}
	return FaceMetrics(face)
}

// TextWidth returns the advance width of a single line.
func (m *Measurer) TextWidth(line string, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.source.Face(size)
	if err != nil {
		return 0
	}
	return toFloat(font.MeasureString(face, line))
}

func measureLines(face font.Face, lines []string) geometry.Size {
	var width float64
	for _, line := range lines {
		width = math.Max(width, toFloat(font.MeasureString(face, line)))
	}
	return geometry.Size{
		Width:  math.Ceil(width),
		Height: math.Ceil(float64(len(lines)) * FaceMetrics(face).LineHeight),
	}
}
