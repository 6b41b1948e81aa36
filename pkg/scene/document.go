package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/framer/pkg/errors"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath returns the encoding implied by a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format from %q (want .json, .yaml or .toml)", path)
}

// Document is the encoded form of a scene.
type Document struct {
	Width      float64         `json:"width" yaml:"width" toml:"width"`
	Height     float64         `json:"height" yaml:"height" toml:"height"`
	Scale      float64         `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Background string          `json:"background,omitempty" yaml:"background,omitempty" toml:"background,omitempty"`
	Blueprints []BlueprintSpec `json:"blueprints" yaml:"blueprints" toml:"blueprints"`
}

// BlueprintSpec is the encoded form of a blueprint.
type BlueprintSpec struct {
	ID       string        `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Contents []ContentSpec `json:"contents" yaml:"contents" toml:"contents"`
}

// ContentSpec holds exactly one of Frame or Line.
type ContentSpec struct {
	Frame *FrameSpec `json:"frame,omitempty" yaml:"frame,omitempty" toml:"frame,omitempty"`
	Line  *LineSpec  `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
}

type FrameSpec struct {
	X          float64         `json:"x" yaml:"x" toml:"x"`
	Y          float64         `json:"y" yaml:"y" toml:"y"`
	Width      float64         `json:"width" yaml:"width" toml:"width"`
	Height     float64         `json:"height" yaml:"height" toml:"height"`
	Style      *FrameStyleSpec `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
	Text       *TextSpec       `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Image      *ImageSpec      `json:"image,omitempty" yaml:"image,omitempty" toml:"image,omitempty"`
	HAlign     string          `json:"halign,omitempty" yaml:"halign,omitempty" toml:"halign,omitempty"`
	VAlign     string          `json:"valign,omitempty" yaml:"valign,omitempty" toml:"valign,omitempty"`
	Annotation *AnnotationSpec `json:"annotation,omitempty" yaml:"annotation,omitempty" toml:"annotation,omitempty"`
}

// FrameStyleSpec overrides the default frame style field by field.
type FrameStyleSpec struct {
	LineWidth    *float64 `json:"line_width,omitempty" yaml:"line_width,omitempty" toml:"line_width,omitempty"`
	LineColor    string   `json:"line_color,omitempty" yaml:"line_color,omitempty" toml:"line_color,omitempty"`
	FillColor    string   `json:"fill_color,omitempty" yaml:"fill_color,omitempty" toml:"fill_color,omitempty"`
	CornerRadius *float64 `json:"corner_radius,omitempty" yaml:"corner_radius,omitempty" toml:"corner_radius,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
}

type TextSpec struct {
	Text  string  `json:"text" yaml:"text" toml:"text"`
	Color string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Size  float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
}

// ImageSpec references an image file. Width and Height are informational
// and written on export.
type ImageSpec struct {
	Path   string `json:"path" yaml:"path" toml:"path"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
}

type AnnotationSpec struct {
	Text      string `json:"text" yaml:"text" toml:"text"`
	Size      string `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Position  string `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
	Alignment string `json:"alignment,omitempty" yaml:"alignment,omitempty" toml:"alignment,omitempty"`
}

type LineSpec struct {
	From  PointSpec      `json:"from" yaml:"from" toml:"from"`
	To    PointSpec      `json:"to" yaml:"to" toml:"to"`
	Style *LineStyleSpec `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
}

type PointSpec struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

type LineStyleSpec struct {
	LineWidth *float64 `json:"line_width,omitempty" yaml:"line_width,omitempty" toml:"line_width,omitempty"`
	LineColor string   `json:"line_color,omitempty" yaml:"line_color,omitempty" toml:"line_color,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty" toml:"opacity,omitempty"`
}

// ImagePaths returns the image paths referenced by the document, in order
// of appearance, without duplicates.
func (d Document) ImagePaths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, b := range d.Blueprints {
		for _, c := range b.Contents {
			if c.Frame == nil || c.Frame.Image == nil || seen[c.Frame.Image.Path] {
				continue
			}
			seen[c.Frame.Image.Path] = true
			paths = append(paths, c.Frame.Image.Path)
		}
	}
	return paths
}

// Decode reads a document in format f. Unknown fields are rejected.
func Decode(r io.Reader, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return Document{}, errors.New(errors.ErrCodeInvalidScene, "empty yaml document")
			}
			return Document{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode yaml")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Document{}, errors.New(errors.ErrCodeInvalidScene, "decode toml: unknown field %q", undecoded[0].String())
		}
	default:
		return Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	return doc, nil
}

// Write encodes doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	return nil
}
