package window

import (
	"fmt"

	"github.com/matzehuels/framer/pkg/blueprint"
)

// Action is a state transition accepted by [Reduce]. The set of actions is
// closed: Draw, Erase, EraseAll, AddButton, ShowBlueprints, HideBlueprints.
type Action interface {
	fmt.Stringer
	isAction()
}

// Draw draws a new blueprint or replaces an existing one with the same id.
type Draw struct{ Blueprint blueprint.Blueprint }

// Erase removes the blueprint with the given id.
type Erase struct{ ID blueprint.ID }

// EraseAll removes every blueprint.
type EraseAll struct{}

// AddButton appends a button.
type AddButton struct{ Button Button }

// ShowBlueprints shows the overlay.
type ShowBlueprints struct{}

// HideBlueprints hides the overlay.
type HideBlueprints struct{}

func (Draw) isAction()           {}
func (Erase) isAction()          {}
func (EraseAll) isAction()       {}
func (AddButton) isAction()      {}
func (ShowBlueprints) isAction() {}
func (HideBlueprints) isAction() {}

func (a Draw) String() string         { return fmt.Sprintf("draw(%s)", a.Blueprint.ID) }
func (a Erase) String() string        { return fmt.Sprintf("erase(%s)", a.ID) }
func (EraseAll) String() string       { return "eraseAll" }
func (a AddButton) String() string    { return fmt.Sprintf("addButton(%q)", a.Button.Title) }
func (ShowBlueprints) String() string { return "showBlueprints" }
func (HideBlueprints) String() string { return "hideBlueprints" }
