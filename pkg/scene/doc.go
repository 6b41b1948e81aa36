// Package scene reads and writes blueprint scenes as JSON, YAML or TOML.
//
// # Overview
//
// A scene describes a canvas and the blueprints drawn onto it. It is the
// file format of the framer CLI and the request body of the preview server.
// All three encodings share one schema:
//
//	{
//	  "width": 320, "height": 200, "scale": 2, "background": "#ffffff",
//	  "blueprints": [
//	    {
//	      "id": "login",
//	      "contents": [
//	        {"frame": {
//	          "x": 10, "y": 20, "width": 300, "height": 44,
//	          "style": {"line_color": "blue", "fill_color": "#0000ff20", "corner_radius": 6},
//	          "text": {"text": "Sign in", "size": 14},
//	          "halign": "center", "valign": "center",
//	          "annotation": {"text": "button", "size": "small", "position": "bottom"}
//	        }},
//	        {"line": {"from": {"x": 10, "y": 70}, "to": {"x": 310, "y": 70}}}
//	      ]
//	    }
//	  ]
//	}
//
// # Fields
//
// Colors are palette names ("red", "lightgray", ...) or #rgb, #rrggbb and
// #rrggbbaa hex strings. Omitted styles take the blueprint defaults: a
// 1-unit black outline without fill at 0.75 opacity. A frame holds either
// "text" or "image" content; images reference files relative to the scene
// and may be PNG, JPEG, GIF, WebP, TIFF or BMP.
//
// Blueprints without an id get a generated one. Ids must be unique within a
// scene.
//
// # Reading
//
// [ReadFile] picks the encoding from the file extension and resolves image
// paths against the file's directory:
//
//	s, err := scene.ReadFile("login.yaml")
//	state := s.State() // every blueprint drawn and shown
//
// [Read] decodes from any reader. [Decode] stops at the [Document] level,
// which [Write] encodes back.
package scene
