// Package window holds the overlay's state and the reducer that evolves it.
//
// [Reduce] is a pure function: it never mutates its input, never fails, and
// has no side effects. Callers that share a [State] across goroutines must
// serialize transitions themselves (see package overlay).
package window

import (
	"github.com/matzehuels/framer/pkg/blueprint"
)

// State is a snapshot of everything the overlay displays.
type State struct {
	// Blueprints holds one entry per blueprint id, in first-draw order.
	Blueprints []Entry
	// Buttons are append-only UI affordances.
	Buttons []Button
	// IsShowingBlueprints toggles the whole overlay independently of
	// per-entry visibility.
	IsShowingBlueprints bool
}

// Entry pairs a blueprint with its own visibility.
type Entry struct {
	Blueprint blueprint.Blueprint
	IsVisible bool
}

// Button is a titled action shown next to the overlay.
//
// Buttons compare by title only: the callback is excluded from equality.
type Button struct {
	Title  string
	Action func()
}

// Equal reports whether two buttons have the same title.
func (b Button) Equal(other Button) bool { return b.Title == other.Title }

// Index returns the position of the entry with the given id, or -1.
func (s State) Index(id blueprint.ID) int {
	for i, e := range s.Blueprints {
		if e.Blueprint.ID == id {
			return i
		}
	}
	return -1
}

// Visible returns the blueprints that should be rendered, in order. It is
// empty while the overlay is hidden.
func (s State) Visible() []blueprint.Blueprint {
	if !s.IsShowingBlueprints {
		return nil
	}
	out := make([]blueprint.Blueprint, 0, len(s.Blueprints))
	for _, e := range s.Blueprints {
		if e.IsVisible {
			out = append(out, e.Blueprint)
		}
	}
	return out
}
