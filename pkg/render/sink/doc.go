// Package sink provides the drawing surfaces blueprints are rendered onto.
//
// # Overview
//
// A sink implements [render.Surface] for one output format:
//
//   - [Raster]: an RGBA image drawn with fogleman/gg, optionally at a device
//     scale factor, encodable as PNG
//   - [PDF]: a single page sized to the canvas, drawn with jung-kurt/gofpdf
//   - [SVG]: an SVG document with images embedded as PNG data URIs
//
// All sinks share the [Canvas] description (size in canvas units, scale and
// background) and set text in the Go Regular font from [fonts], so text
// wraps identically in every format.
//
// # Usage
//
// [Write] renders blueprints in a given [Format]:
//
//	pass, err := sink.Write(w, sink.FormatPNG, render.New(), sink.Canvas{
//	    Size:  geometry.Size{Width: 800, Height: 600},
//	    Scale: 2,
//	}, blueprints)
//
// [RenderImage] returns the raster image directly, which is what an overlay
// host composites over its window.
//
// [fonts]: github.com/matzehuels/framer/pkg/fonts
package sink
