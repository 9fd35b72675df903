// Package adventure holds the adventure state machine: pure reducers over
// types.AdventureState and the Store container that applies them.
package adventure

import (
	"slices"

	"github.com/azyu/adventurecrafter/pkg/types"
)

// Every reducer returns a new state and leaves its input untouched. Lookup
// misses return the input state as-is.

// AddAdventure appends adv verbatim. The caller guarantees id uniqueness.
func AddAdventure(state types.AdventureState, adv types.Adventure) types.AdventureState {
	next := state.Clone()
	next.Adventures = append(next.Adventures, adv.Clone())
	return next
}

// NewAdventure appends a blank adventure with the next free id and selects it.
func NewAdventure(state types.AdventureState) types.AdventureState {
	adv := types.NewBlankAdventure(NextAdventureID(state))
	next := state.Clone()
	next.Adventures = append(next.Adventures, adv)
	next.SelectedAdventureID = types.IntPtr(adv.ID)
	return next
}

// SetSelectedAdventure sets the selection without checking that id exists.
func SetSelectedAdventure(state types.AdventureState, id *int) types.AdventureState {
	next := state.Clone()
	next.SelectedAdventureID = nil
	if id != nil {
		next.SelectedAdventureID = types.IntPtr(*id)
	}
	return next
}

// UpdateAdventure replaces the adventure with adv.ID wholesale.
func UpdateAdventure(state types.AdventureState, adv types.Adventure) types.AdventureState {
	idx := indexOfAdventure(state.Adventures, adv.ID)
	if idx == -1 {
		return state
	}
	next := state.Clone()
	next.Adventures[idx] = adv.Clone()
	return next
}

// DeleteAdventure removes the adventure with the given id. Deleting the sole
// adventure replaces it with a fresh one whose id is computed against the
// pre-deletion ids, so the collection never becomes empty.
func DeleteAdventure(state types.AdventureState, id int) types.AdventureState {
	idx := indexOfAdventure(state.Adventures, id)
	if idx == -1 {
		return state
	}

	next := state.Clone()
	if len(next.Adventures) == 1 {
		replacement := types.NewBlankAdventure(NextAdventureID(state))
		next.Adventures = []types.Adventure{replacement}
		next.SelectedAdventureID = types.IntPtr(replacement.ID)
		return next
	}

	deletingSelected := state.SelectedAdventureID != nil && *state.SelectedAdventureID == id
	next.Adventures = slices.Delete(next.Adventures, idx, idx+1)

	if deletingSelected {
		next.SelectedAdventureID = nil
		if len(next.Adventures) > 0 {
			next.SelectedAdventureID = types.IntPtr(next.Adventures[0].ID)
		}
	}
	return next
}

// AddTurningPoint appends tp to the turning points of the given adventure.
func AddTurningPoint(state types.AdventureState, adventureID int, tp types.TurningPoint) types.AdventureState {
	idx := indexOfAdventure(state.Adventures, adventureID)
	if idx == -1 {
		return state
	}
	next := state.Clone()
	adv := &next.Adventures[idx]
	adv.TurningPoints = append(adv.TurningPoints, tp.Clone())
	return next
}

// UpdateTurningPoint replaces the turning point turningPointID inside the
// given adventure with tp. The id carried by tp is stored as given and is
// not required to match turningPointID.
func UpdateTurningPoint(state types.AdventureState, adventureID, turningPointID int, tp types.TurningPoint) types.AdventureState {
	advIdx := indexOfAdventure(state.Adventures, adventureID)
	if advIdx == -1 {
		return state
	}
	tpIdx := slices.IndexFunc(state.Adventures[advIdx].TurningPoints, func(existing types.TurningPoint) bool {
		return existing.ID == turningPointID
	})
	if tpIdx == -1 {
		return state
	}
	next := state.Clone()
	next.Adventures[advIdx].TurningPoints[tpIdx] = tp.Clone()
	return next
}

// NextAdventureID returns max(existing ids, 0) + 1.
func NextAdventureID(state types.AdventureState) int {
	maxID := 0
	for _, adv := range state.Adventures {
		maxID = max(maxID, adv.ID)
	}
	return maxID + 1
}

// NextTurningPointID returns max(turning point ids, 0) + 1 for adv.
func NextTurningPointID(adv types.Adventure) int {
	maxID := 0
	for _, tp := range adv.TurningPoints {
		maxID = max(maxID, tp.ID)
	}
	return maxID + 1
}

// FindAdventure returns the adventure with the given id.
func FindAdventure(state types.AdventureState, id int) (types.Adventure, bool) {
	idx := indexOfAdventure(state.Adventures, id)
	if idx == -1 {
		return types.Adventure{}, false
	}
	return state.Adventures[idx].Clone(), true
}

// SelectedAdventure returns the currently selected adventure, if the
// selection is set and still points at an existing adventure.
func SelectedAdventure(state types.AdventureState) (types.Adventure, bool) {
	if state.SelectedAdventureID == nil {
		return types.Adventure{}, false
	}
	return FindAdventure(state, *state.SelectedAdventureID)
}

func indexOfAdventure(adventures []types.Adventure, id int) int {
	return slices.IndexFunc(adventures, func(adv types.Adventure) bool {
		return adv.ID == id
	})
}
