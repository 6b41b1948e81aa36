package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/errors"
	"github.com/matzehuels/framer/pkg/geometry"
	"github.com/matzehuels/framer/pkg/render/sink"
	"github.com/matzehuels/framer/pkg/window"
)

// Scene is a decoded document: a canvas and the blueprints drawn onto it.
type Scene struct {
	Canvas     sink.Canvas
	Blueprints []blueprint.Blueprint
}

// Actions returns the draw actions that build the scene, in order.
func (s Scene) Actions() []window.Action {
	actions := make([]window.Action, len(s.Blueprints))
	for i, b := range s.Blueprints {
		actions[i] = window.Draw{Blueprint: b}
	}
	return actions
}

// State reduces the scene's actions into a state that shows every
// blueprint.
func (s Scene) State() window.State {
	return window.ReduceAll(window.State{IsShowingBlueprints: true}, s.Actions()...)
}

// Document converts the scene back into its encoded form.
func (s Scene) Document() Document {
	doc := Document{
		Width:      s.Canvas.Size.Width,
		Height:     s.Canvas.Size.Height,
		Scale:      s.Canvas.Scale,
		Blueprints: make([]BlueprintSpec, len(s.Blueprints)),
	}
	if s.Canvas.Background.A > 0 {
		doc.Background = s.Canvas.Background.Hex()
	}
	for i, b := range s.Blueprints {
		doc.Blueprints[i] = SpecOf(b)
	}
	return doc
}

// Scene validates the document and converts it, resolving images with load.
func (d Document) Scene(load ImageLoader) (Scene, error) {
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	if err := errors.ValidateCanvas(d.Width, d.Height, scale); err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "invalid canvas")
	}
	background, err := parseColor(d.Background, blueprint.Clear)
	if err != nil {
		return Scene{}, err
	}

	s := Scene{
		Canvas: sink.Canvas{
			Size:       geometry.Size{Width: d.Width, Height: d.Height},
			Scale:      scale,
			Background: background,
		},
		Blueprints: make([]blueprint.Blueprint, 0, len(d.Blueprints)),
	}
	seen := make(map[blueprint.ID]bool, len(d.Blueprints))
	for i, spec := range d.Blueprints {
		b, err := spec.Blueprint(load)
		if err != nil {
			return Scene{}, fmt.Errorf("blueprint %d: %w", i, err)
		}
		if seen[b.ID] {
			return Scene{}, errors.New(errors.ErrCodeInvalidScene, "blueprint %d: duplicate id %q", i, b.ID)
		}
		seen[b.ID] = true
		s.Blueprints = append(s.Blueprints, b)
	}
	return s, nil
}

// Read decodes a scene in format f. Image paths resolve against dir.
func Read(r io.Reader, f Format, dir string) (Scene, error) {
	doc, err := Decode(r, f)
	if err != nil {
		return Scene{}, err
	}
	return doc.Scene(DirLoader(dir))
}

// ReadFile reads the scene at path, inferring the format from its
// extension.
func ReadFile(path string) (Scene, error) {
	data, err := ReadBytes(path)
	if err != nil {
		return Scene{}, err
	}
	return Parse(data, path)
}

// ReadBytes returns the raw contents of the scene file at path.
func ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", path)
	}
	return data, nil
}

// Parse decodes scene data read from path. The path picks the format and
// the directory images resolve against.
func Parse(data []byte, path string) (Scene, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return Scene{}, err
	}
	s, err := Read(bytes.NewReader(data), f, filepath.Dir(path))
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
