package window

import "slices"

// Reduce returns the state that results from applying action to state.
//
// The input is never modified: every transition that changes a list builds a
// new one, so earlier snapshots stay valid for readers such as a renderer.
//
// Pointers to actions are accepted and treated like the values they point to;
// a nil pointer leaves the state unchanged.
func Reduce(state State, action Action) State {
	switch a := deref(action).(type) {
	case Draw:
		if i := state.Index(a.Blueprint.ID); i >= 0 {
			entries := slices.Clone(state.Blueprints)
			entries[i].Blueprint = a.Blueprint
			state.Blueprints = entries
		} else {
			state.Blueprints = append(slices.Clip(state.Blueprints), Entry{Blueprint: a.Blueprint, IsVisible: true})
		}
	case Erase:
		if i := state.Index(a.ID); i >= 0 {
			state.Blueprints = slices.Delete(slices.Clone(state.Blueprints), i, i+1)
		}
	case EraseAll:
		state.Blueprints = []Entry{}
	case AddButton:
		state.Buttons = append(slices.Clip(state.Buttons), a.Button)
	case ShowBlueprints:
		state.IsShowingBlueprints = true
	case HideBlueprints:
		state.IsShowingBlueprints = false
	}
	return state
}

func deref(action Action) Action {
	switch a := action.(type) {
	case *Draw:
		if a != nil {
			return *a
		}
	case *Erase:
		if a != nil {
			return *a
		}
	case *EraseAll:
		if a != nil {
			return *a
		}
	case *AddButton:
		if a != nil {
			return *a
		}
	case *ShowBlueprints:
		if a != nil {
			return *a
		}
	case *HideBlueprints:
		if a != nil {
			return *a
		}
	default:
		return action
	}
	return nil
}

// ReduceAll folds actions over state in order.
func ReduceAll(state State, actions ...Action) State {
	for _, a := range actions {
		state = Reduce(state, a)
	}
	return state
}
