package render

import (
	"image"
	"math"
	"testing"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/geometry"
)

// recorder is a Surface that records every call together with the alpha in
// effect when it was made.
type recorder struct {
	alpha float64
	ops   []op
}

type op struct {
	kind  string
	rect  geometry.Rect
	color blueprint.Color
	width float64
	alpha float64
	run   TextRun
	img   image.Image
}

func newRecorder() *recorder { return &recorder{alpha: 1} }

func (r *recorder) Size() geometry.Size { return geometry.Size{Width: 400, Height: 400} }
func (r *recorder) SetAlpha(a float64)  { r.alpha = a }

func (r *recorder) FillRoundedRect(rect geometry.Rect, _ float64, c blueprint.Color) {
	r.ops = append(r.ops, op{kind: "fillRounded", rect: rect, color: c, alpha: r.alpha})
}

func (r *recorder) StrokeRoundedRect(rect geometry.Rect, _, width float64, c blueprint.Color) {
	r.ops = append(r.ops, op{kind: "strokeRounded", rect: rect, color: c, width: width, alpha: r.alpha})
}

func (r *recorder) FillRect(rect geometry.Rect, c blueprint.Color) {
	r.ops = append(r.ops, op{kind: "fill", rect: rect, color: c, alpha: r.alpha})
}

func (r *recorder) StrokeRect(rect geometry.Rect, width float64, c blueprint.Color) {
	r.ops = append(r.ops, op{kind: "stroke", rect: rect, color: c, width: width, alpha: r.alpha})
}

func (r *recorder) StrokeLine(from, to geometry.Point, width float64, c blueprint.Color) {
	rect := geometry.NewRect(from.X, from.Y, to.X-from.X, to.Y-from.Y)
	r.ops = append(r.ops, op{kind: "line", rect: rect, color: c, width: width, alpha: r.alpha})
}

func (r *recorder) DrawText(run TextRun) {
	r.ops = append(r.ops, op{kind: "text", rect: run.Rect, color: run.Color, run: run, alpha: r.alpha})
}

func (r *recorder) DrawImage(img image.Image, rect geometry.Rect) {
	r.ops = append(r.ops, op{kind: "image", rect: rect, img: img, alpha: r.alpha})
}

func (r *recorder) kinds(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// fixedMeasurer gives every character the same advance and every line the
// font size as its height.
type fixedMeasurer struct {
	charWidth float64
}

func (m fixedMeasurer) Measure(text string, size float64) geometry.Size {
	if text == "" {
		return geometry.Size{}
	}
	return geometry.Size{Width: float64(len(text)) * m.charWidth, Height: size}
}

func (m fixedMeasurer) BoundingRect(text string, size float64, c geometry.Size) geometry.Rect {
	if text == "" || c.Width <= 0 {
		return geometry.Rect{}
	}
	total := float64(len(text)) * m.charWidth
	lines := math.Ceil(total / c.Width)
	return geometry.NewRect(0, 0, math.Min(total, c.Width), lines*size)
}

// zeroMeasurer simulates a text service that could not measure anything.
type zeroMeasurer struct{}

func (zeroMeasurer) Measure(string, float64) geometry.Size { return geometry.Size{} }
func (zeroMeasurer) BoundingRect(string, float64, geometry.Size) geometry.Rect {
	return geometry.Rect{}
}

func testRenderer() *Renderer {
	return New(WithMeasurer(fixedMeasurer{charWidth: 6}))
}

func annotatedFrame(x, y, w, h float64, text string) blueprint.Frame {
	f := blueprint.NewFrame(x, y, w, h)
	f.Annotation = &blueprint.Annotation{Text: text, Style: blueprint.DefaultAnnotationStyle()}
	return f
}

func TestRenderDrawsFrameFillThenStroke(t *testing.T) {
	f := blueprint.NewFrame(10, 10, 100, 50)
	f.Style.FillColor = blueprint.Blue
	f.Style.Opacity = 0.5

	rec := newRecorder()
	pass := testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("b1", f)})

	if len(rec.ops) != 2 {
		t.Fatalf("ops = %d, want 2", len(rec.ops))
	}
	if rec.ops[0].kind != "fillRounded" || rec.ops[1].kind != "strokeRounded" {
		t.Errorf("order = %s, %s; want fill then stroke", rec.ops[0].kind, rec.ops[1].kind)
	}
	for _, o := range rec.ops {
		if o.alpha != 0.5 {
			t.Errorf("%s alpha = %v, want 0.5", o.kind, o.alpha)
		}
		if o.rect != f.Rect() {
			t.Errorf("%s rect = %+v, want %+v", o.kind, o.rect, f.Rect())
		}
	}
	if pass.Blueprints != 1 || pass.Contents != 1 {
		t.Errorf("pass = %+v", pass)
	}
	if rec.alpha != 1 {
		t.Errorf("alpha left at %v, want 1", rec.alpha)
	}
}

func TestRenderAnnotationIgnoresFrameOpacity(t *testing.T) {
	f := annotatedFrame(10, 40, 100, 50, "label")
	f.Style.Opacity = 0.2

	rec := newRecorder()
	testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("b1", f)})

	fills := rec.kinds("fill")
	texts := rec.kinds("text")
	if len(fills) != 1 || len(texts) != 1 {
		t.Fatalf("fills = %d, texts = %d; want 1 each", len(fills), len(texts))
	}
	if fills[0].alpha != 1 || texts[0].alpha != 1 {
		t.Errorf("annotation alpha = %v/%v, want 1", fills[0].alpha, texts[0].alpha)
	}
}

func TestRenderAnnotationsAfterAllContent(t *testing.T) {
	a := annotatedFrame(10, 40, 100, 50, "first")
	b := blueprint.NewFrame(200, 40, 100, 50)

	rec := newRecorder()
	testRenderer().Render(rec, []blueprint.Blueprint{
		blueprint.New("a", a),
		blueprint.New("b", b),
	})

	lastPrimary, firstAnnotation := -1, -1
	for i, o := range rec.ops {
		switch o.kind {
		case "fillRounded", "strokeRounded":
			lastPrimary = i
		case "fill":
			if firstAnnotation < 0 {
				firstAnnotation = i
			}
		}
	}
	if firstAnnotation < lastPrimary {
		t.Errorf("annotation drawn at op %d before primary content at op %d", firstAnnotation, lastPrimary)
	}
}

func TestRenderAnnotationPlacement(t *testing.T) {
	frame := geometry.NewRect(100, 100, 100, 50)
	// "abcd" measures 24x12 at the normal size.
	tests := []struct {
		name     string
		position blueprint.AnnotationPosition
		align    blueprint.Alignment
		want     geometry.Rect
	}{
		{"top leading", blueprint.PositionTop, blueprint.Leading, geometry.NewRect(100, 88, 24, 12)},
		{"top center", blueprint.PositionTop, blueprint.Center, geometry.NewRect(138, 88, 24, 12)},
		{"top trailing", blueprint.PositionTop, blueprint.Trailing, geometry.NewRect(176, 88, 24, 12)},
		{"bottom leading", blueprint.PositionBottom, blueprint.Leading, geometry.NewRect(100, 150, 24, 12)},
		{"left leading", blueprint.PositionLeft, blueprint.Leading, geometry.NewRect(76, 100, 24, 12)},
		{"left center", blueprint.PositionLeft, blueprint.Center, geometry.NewRect(76, 119, 24, 12)},
		{"right trailing", blueprint.PositionRight, blueprint.Trailing, geometry.NewRect(200, 138, 24, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := blueprint.FrameFromRect(frame, blueprint.DefaultFrameStyle())
			f.Annotation = &blueprint.Annotation{
				Text:  "abcd",
				Style: blueprint.AnnotationStyle{Size: blueprint.SizeNormal, Position: tt.position, Alignment: tt.align},
			}

			pass := testRenderer().Render(newRecorder(), []blueprint.Blueprint{blueprint.New("b", f)})
			if len(pass.Annotations) != 1 {
				t.Fatalf("annotations = %d, want 1", len(pass.Annotations))
			}
			if got := pass.Annotations[0].Rect; got != tt.want {
				t.Errorf("rect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderCollisionIsOrderSensitive(t *testing.T) {
	a := annotatedFrame(0, 20, 100, 50, "AAAA")
	b := annotatedFrame(10, 20, 100, 50, "BBBB")

	tests := []struct {
		name  string
		order []blueprint.Blueprint
		want  []bool
	}{
		{"a then b", []blueprint.Blueprint{blueprint.New("a", a), blueprint.New("b", b)}, []bool{false, true}},
		{"b then a", []blueprint.Blueprint{blueprint.New("b", b), blueprint.New("a", a)}, []bool{false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			pass := testRenderer().Render(rec, tt.order)

			for i, mark := range pass.Annotations {
				if mark.Collides != tt.want[i] {
					t.Errorf("annotation %d (%s) collides = %v, want %v", i, mark.Text, mark.Collides, tt.want[i])
				}
			}
			if got := pass.Collisions(); got != 1 {
				t.Errorf("Collisions() = %d, want 1", got)
			}

			strokes := rec.kinds("stroke")
			if len(strokes) != 1 {
				t.Fatalf("collision outlines = %d, want 1", len(strokes))
			}
			if strokes[0].color != blueprint.Red || strokes[0].width != 2 {
				t.Errorf("outline = %v width %v, want red width 2", strokes[0].color, strokes[0].width)
			}
			if strokes[0].rect != pass.Annotations[1].Rect {
				t.Errorf("outline rect = %+v, want %+v", strokes[0].rect, pass.Annotations[1].Rect)
			}
		})
	}
}

func TestRenderTouchingAnnotationsDoNotCollide(t *testing.T) {
	// Labels are 24 wide; the second starts exactly where the first ends.
	a := annotatedFrame(0, 20, 100, 50, "AAAA")
	b := annotatedFrame(24, 20, 100, 50, "BBBB")

	pass := testRenderer().Render(newRecorder(), []blueprint.Blueprint{
		blueprint.New("a", a),
		blueprint.New("b", b),
	})
	if pass.Collisions() != 0 {
		t.Errorf("Collisions() = %d, want 0", pass.Collisions())
	}
}

func TestRenderCollisionsDoNotCarryAcrossPasses(t *testing.T) {
	r := testRenderer()
	bps := []blueprint.Blueprint{blueprint.New("a", annotatedFrame(0, 20, 100, 50, "AAAA"))}

	for i := range 3 {
		if pass := r.Render(newRecorder(), bps); pass.Collisions() != 0 {
			t.Errorf("pass %d: Collisions() = %d, want 0", i, pass.Collisions())
		}
	}
}

func TestAnnotationColors(t *testing.T) {
	tests := []struct {
		name   string
		fill   blueprint.Color
		line   blueprint.Color
		wantBg blueprint.Color
	}{
		{"fill wins", blueprint.Blue, blueprint.Red, blueprint.Blue},
		{"line when fill clear", blueprint.Clear, blueprint.Red, blueprint.Red},
		{"line when fill faint", blueprint.Blue.WithAlpha(0.1), blueprint.Red, blueprint.Red},
		{"neutral fallback", blueprint.Clear, blueprint.Clear, blueprint.LightGray},
		{"neutral at threshold", blueprint.Blue.WithAlpha(0.1), blueprint.Red.WithAlpha(0.1), blueprint.LightGray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := blueprint.DefaultFrameStyle()
			style.FillColor = tt.fill
			style.LineColor = tt.line

			bg, fg := AnnotationColors(style)
			if bg != tt.wantBg {
				t.Errorf("background = %v, want %v", bg, tt.wantBg)
			}
			if tt.wantBg == blueprint.LightGray {
				if fg != blueprint.Gray {
					t.Errorf("foreground = %v, want gray", fg)
				}
			} else if fg != tt.wantBg.HighContrast() {
				t.Errorf("foreground = %v, want %v", fg, tt.wantBg.HighContrast())
			}
		})
	}
}

func TestRenderNegativeFrameDrawsOnlyAnnotation(t *testing.T) {
	f := annotatedFrame(50, 50, -20, 30, "neg")

	rec := newRecorder()
	pass := testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("n", f)})

	if n := len(rec.kinds("fillRounded")) + len(rec.kinds("strokeRounded")); n != 0 {
		t.Errorf("primary ops = %d, want 0", n)
	}
	if len(pass.Annotations) != 1 {
		t.Fatalf("annotations = %d, want 1", len(pass.Annotations))
	}
	// The clamped frame is (50, 50, 0, 30); the label sits above its origin.
	if want := geometry.NewRect(50, 38, 18, 12); pass.Annotations[0].Rect != want {
		t.Errorf("rect = %+v, want %+v", pass.Annotations[0].Rect, want)
	}
}

func TestRenderImagePlacement(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	tests := []struct {
		h, v blueprint.Alignment
		want geometry.Rect
	}{
		{blueprint.Leading, blueprint.Leading, geometry.NewRect(0, 0, 20, 10)},
		{blueprint.Leading, blueprint.Center, geometry.NewRect(0, 45, 20, 10)},
		{blueprint.Leading, blueprint.Trailing, geometry.NewRect(0, 90, 20, 10)},
		{blueprint.Center, blueprint.Leading, geometry.NewRect(40, 0, 20, 10)},
		{blueprint.Center, blueprint.Center, geometry.NewRect(40, 45, 20, 10)},
		{blueprint.Center, blueprint.Trailing, geometry.NewRect(40, 90, 20, 10)},
		{blueprint.Trailing, blueprint.Leading, geometry.NewRect(80, 0, 20, 10)},
		{blueprint.Trailing, blueprint.Center, geometry.NewRect(80, 45, 20, 10)},
		{blueprint.Trailing, blueprint.Trailing, geometry.NewRect(80, 90, 20, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.h.String()+"/"+tt.v.String(), func(t *testing.T) {
			f := blueprint.NewFrame(0, 0, 100, 100)
			f.Content = &blueprint.FrameContent{
				Payload:             blueprint.Image{Image: img},
				HorizontalAlignment: tt.h,
				VerticalAlignment:   tt.v,
			}

			rec := newRecorder()
			testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("img", f)})

			images := rec.kinds("image")
			if len(images) != 1 {
				t.Fatalf("images = %d, want 1", len(images))
			}
			if images[0].rect != tt.want {
				t.Errorf("rect = %+v, want %+v", images[0].rect, tt.want)
			}
		})
	}
}

func TestRenderTextVerticalAlignment(t *testing.T) {
	// "hello" is 30 wide, one 10pt line inside a 100x50 frame at (0, 100).
	tests := []struct {
		v     blueprint.Alignment
		wantY float64
	}{
		{blueprint.Leading, 100},
		{blueprint.Center, 120},
		{blueprint.Trailing, 140},
	}
	for _, tt := range tests {
		t.Run(tt.v.String(), func(t *testing.T) {
			f := blueprint.NewFrame(0, 100, 100, 50)
			f.Content = &blueprint.FrameContent{
				Payload:             blueprint.Text{Text: "hello", Color: blueprint.Black, FontSize: 10},
				HorizontalAlignment: blueprint.Trailing,
				VerticalAlignment:   tt.v,
			}

			rec := newRecorder()
			testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("t", f)})

			texts := rec.kinds("text")
			if len(texts) != 1 {
				t.Fatalf("texts = %d, want 1", len(texts))
			}
			run := texts[0].run
			if want := geometry.NewRect(0, tt.wantY, 100, 10); run.Rect != want {
				t.Errorf("rect = %+v, want %+v", run.Rect, want)
			}
			if run.Align != geometry.AlignRight {
				t.Errorf("align = %v, want right", run.Align)
			}
			if !run.Wrap {
				t.Error("frame text should wrap")
			}
			if texts[0].alpha != f.Style.Opacity {
				t.Errorf("text alpha = %v, want frame opacity %v", texts[0].alpha, f.Style.Opacity)
			}
		})
	}
}

func TestRenderZeroMeasurementDrawsNoText(t *testing.T) {
	f := annotatedFrame(0, 50, 100, 50, "label")
	f.Content = &blueprint.FrameContent{Payload: blueprint.Text{Text: "body"}}

	rec := newRecorder()
	pass := New(WithMeasurer(zeroMeasurer{})).Render(rec, []blueprint.Blueprint{blueprint.New("z", f)})

	// Only the annotation's (empty) text run is issued.
	if n := len(rec.kinds("text")); n != 1 {
		t.Errorf("text runs = %d, want 1", n)
	}
	if len(pass.Annotations) != 1 || !pass.Annotations[0].Rect.IsEmpty() {
		t.Errorf("annotations = %+v, want one empty rect", pass.Annotations)
	}
}

func TestRenderNilImageDrawsNothing(t *testing.T) {
	f := blueprint.NewFrame(0, 0, 100, 100)
	f.Content = &blueprint.FrameContent{Payload: blueprint.Image{}}

	rec := newRecorder()
	testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("img", f)})
	if n := len(rec.kinds("image")); n != 0 {
		t.Errorf("images = %d, want 0", n)
	}
}

func TestRenderLine(t *testing.T) {
	l := blueprint.NewLine(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 20})
	l.Style.LineWidth = 3
	l.Style.LineColor = blueprint.Green

	rec := newRecorder()
	pass := testRenderer().Render(rec, []blueprint.Blueprint{blueprint.New("l", l)})

	lines := rec.kinds("line")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if lines[0].alpha != 0.75 || lines[0].width != 3 || lines[0].color != blueprint.Green {
		t.Errorf("line = %+v", lines[0])
	}
	if pass.Contents != 1 || len(pass.Annotations) != 0 {
		t.Errorf("pass = %+v", pass)
	}
}
