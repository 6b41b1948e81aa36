// Package render draws blueprints onto a [Surface].
//
// # Overview
//
// A [Renderer] walks blueprints in order and draws every frame and line,
// then makes a second pass that places annotations around their frames:
//
//	r := render.New(render.WithMeasurer(fonts.NewMeasurer()))
//	pass := r.Render(surface, state.Visible())
//
// The renderer never filters by visibility and never rejects input: negative
// frame sizes draw nothing, zero measurements produce empty text regions.
//
// # Annotations
//
// Annotations are drawn after all primary content so that no primitive can
// cover a label. Each annotation is checked against every annotation already
// drawn in the same pass. When it overlaps one, it is outlined in red. The
// check is order dependent: of two overlapping labels only the later one is
// marked. The returned [Pass] lists every placement and its collision flag.
//
// # Surfaces
//
// [Surface] is a minimal immediate-mode drawing target. Implementations for
// raster images, PDF and SVG live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/framer/pkg/render/sink
package render
