// Package blueprint defines the drawable overlay model.
//
// # Overview
//
// A [Blueprint] is a named, ordered group of primitives. Each element of
// [Blueprint.Contents] is a [Content], a closed sum type implemented only by
// [Frame] and [Line]. Consumers switch over the concrete types:
//
//	for _, c := range bp.Contents {
//	    switch c := c.(type) {
//	    case blueprint.Frame:
//	        drawFrame(c)
//	    case blueprint.Line:
//	        drawLine(c)
//	    }
//	}
//
// Order within a blueprint is draw order: later items paint over earlier
// ones.
//
// # Frames
//
// A [Frame] is a styled rectangle that may carry inline [FrameContent] (text
// or an image, see [Payload]) and an [Annotation] label. Both are optional and
// independent of each other.
//
//	frame := blueprint.NewFrame(10, 10, 100, 50)
//	frame.Style.LineColor = blueprint.Red
//	frame.Annotation = &blueprint.Annotation{Text: "header", Style: blueprint.DefaultAnnotationStyle()}
//
// Constructors return values populated with the defaults the overlay has
// always used: 1-unit black strokes, clear fill and 0.75 opacity.
//
// # Identity
//
// Blueprints are keyed by [ID]. Redrawing a blueprint with an existing ID
// replaces it in place. [New] generates a random UUID when no ID is supplied.
package blueprint
