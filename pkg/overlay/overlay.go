// Package overlay owns the state of a debug overlay and renders it.
//
// An [Overlay] is the single owner of a [window.State]. Every mutation is an
// action applied with [window.Reduce] under a mutex, so callers on any
// goroutine see a consistent sequence of states. The rendered image is
// memoized per state version; reading it repeatedly between actions costs
// nothing.
//
// Hosts typically keep one Overlay per window:
//
//	o := overlay.New(overlay.WithCanvas(sink.Canvas{Size: size, Scale: 2}))
//	o.Draw(blueprint.New("login", frames...))
//	img := o.CurrentImage() // composite over the window
package overlay

import (
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framer/pkg/blueprint"
	"github.com/matzehuels/framer/pkg/observability"
	"github.com/matzehuels/framer/pkg/render"
	"github.com/matzehuels/framer/pkg/render/sink"
	"github.com/matzehuels/framer/pkg/window"
)

// Option configures an Overlay.
type Option func(*Overlay)

// WithCanvas sets the canvas the overlay renders onto.
func WithCanvas(c sink.Canvas) Option { return func(o *Overlay) { o.canvas = c } }

// WithRenderer sets the renderer used by [Overlay.CurrentImage].
func WithRenderer(r *render.Renderer) Option { return func(o *Overlay) { o.renderer = r } }

// WithLogger sets the logger that receives dispatched actions at debug level.
func WithLogger(l *log.Logger) Option { return func(o *Overlay) { o.logger = l } }

// WithState seeds the overlay with an existing state.
func WithState(s window.State) Option { return func(o *Overlay) { o.state = s } }

// Overlay serializes actions on a window state and renders the result.
// It is safe for concurrent use.
type Overlay struct {
	mu       sync.Mutex
	state    window.State
	version  uint64
	canvas   sink.Canvas
	renderer *render.Renderer
	logger   *log.Logger

	frame *snapshot // last rendered version
}

type snapshot struct {
	version uint64
	image   image.Image
	pass    render.Pass
}

// New creates an overlay that shows blueprints.
func New(opts ...Option) *Overlay {
	o := &Overlay{state: window.State{IsShowingBlueprints: true}}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.renderer == nil {
		o.renderer = render.New(render.WithLogger(o.logger))
	}
	return o
}

// Dispatch applies an action to the state.
func (o *Overlay) Dispatch(a window.Action) { o.apply(nil, a) }

// DispatchAll applies actions in order as one step: readers see the state
// before the first action or after the last, never in between.
func (o *Overlay) DispatchAll(actions ...window.Action) { o.apply(nil, actions...) }

// Load switches to canvas c and applies actions as one step, so a render
// never pairs the new canvas with a partially applied batch.
func (o *Overlay) Load(c sink.Canvas, actions ...window.Action) { o.apply(&c, actions...) }

func (o *Overlay) apply(c *sink.Canvas, actions ...window.Action) {
	o.mu.Lock()
	if c != nil {
		o.canvas = *c
		o.frame = nil
	}
	o.state = window.ReduceAll(o.state, actions...)
	o.version += uint64(len(actions))
	entries := len(o.state.Blueprints)
	o.mu.Unlock()

	for _, a := range actions {
		// fmt recovers from a nil action pointer's String.
		name := fmt.Sprint(a)
		o.logger.Debug("overlay action", "action", name, "entries", entries)
		observability.State().OnAction(name, entries)
	}
}

// Draw adds b, or replaces the blueprint with the same id in place.
func (o *Overlay) Draw(b blueprint.Blueprint) { o.Dispatch(window.Draw{Blueprint: b}) }

// Erase removes the blueprint with the given id, if present.
func (o *Overlay) Erase(id blueprint.ID) { o.Dispatch(window.Erase{ID: id}) }

// EraseAll removes every blueprint.
func (o *Overlay) EraseAll() { o.Dispatch(window.EraseAll{}) }

// Show makes blueprints visible.
func (o *Overlay) Show() { o.Dispatch(window.ShowBlueprints{}) }

// Hide hides all blueprints without erasing them.
func (o *Overlay) Hide() { o.Dispatch(window.HideBlueprints{}) }

// AddButton appends a button. Titles need not be unique.
func (o *Overlay) AddButton(title string, action func()) {
	o.Dispatch(window.AddButton{Button: window.Button{Title: title, Action: action}})
}

// PressButton runs the action of the first button with the given title and
// reports whether one was found. The action runs without the overlay locked,
// so it may dispatch further actions.
func (o *Overlay) PressButton(title string) bool {
	o.mu.Lock()
	var action func()
	found := false
	for _, b := range o.state.Buttons {
		if b.Title == title {
			action, found = b.Action, true
			break
		}
	}
	o.mu.Unlock()

	if !found {
		return false
	}
	o.logger.Debug("button pressed", "title", title)
	if action != nil {
		action()
	}
	return true
}

// State returns the current state. The reducer never mutates a state it has
// returned, so the snapshot stays valid after further actions.
func (o *Overlay) State() window.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Version counts the actions applied so far.
func (o *Overlay) Version() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.version
}

// Canvas returns the canvas the overlay renders onto.
func (o *Overlay) Canvas() sink.Canvas {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.canvas
}

// Resize changes the canvas and invalidates the rendered image.
func (o *Overlay) Resize(c sink.Canvas) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.canvas = c
	o.frame = nil
}

// CurrentImage returns the rendered overlay: the visible blueprints when
// showing, a transparent image otherwise.
func (o *Overlay) CurrentImage() image.Image {
	return o.current().image
}

// CurrentPass returns what the last render of the current state drew,
// including annotation collisions.
func (o *Overlay) CurrentPass() render.Pass {
	return o.current().pass
}

func (o *Overlay) current() *snapshot {
	o.mu.Lock()
	if o.frame != nil && o.frame.version == o.version {
		frame := o.frame
		o.mu.Unlock()
		return frame
	}
	state, version, canvas := o.state, o.version, o.canvas
	o.mu.Unlock()

	img, pass := sink.RenderImage(o.renderer, canvas, state.Visible())
	frame := &snapshot{version: version, image: img, pass: pass}

	o.mu.Lock()
	if o.version == version && o.canvas == canvas {
		o.frame = frame
	}
	o.mu.Unlock()
	return frame
}
