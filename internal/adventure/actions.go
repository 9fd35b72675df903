package adventure

import "github.com/azyu/adventurecrafter/pkg/types"

// Action is a named intent the Store reduces into a new state.
type Action interface {
	Type() string
	Apply(state types.AdventureState) types.AdventureState
}

// AddAdventureAction appends a caller-supplied adventure.
type AddAdventureAction struct {
	Adventure types.Adventure
}

func (AddAdventureAction) Type() string { return "adventure/addAdventure" }

func (a AddAdventureAction) Apply(state types.AdventureState) types.AdventureState {
	return AddAdventure(state, a.Adventure)
}

// NewAdventureAction creates and selects a blank adventure.
type NewAdventureAction struct{}

func (NewAdventureAction) Type() string { return "adventure/newAdventure" }

func (NewAdventureAction) Apply(state types.AdventureState) types.AdventureState {
	return NewAdventure(state)
}

// SetSelectedAdventureAction changes the selection. A nil ID clears it.
type SetSelectedAdventureAction struct {
	ID *int
}

func (SetSelectedAdventureAction) Type() string { return "adventure/setSelectedAdventure" }

func (a SetSelectedAdventureAction) Apply(state types.AdventureState) types.AdventureState {
	return SetSelectedAdventure(state, a.ID)
}

// UpdateAdventureAction overwrites the adventure with the same id.
type UpdateAdventureAction struct {
	Adventure types.Adventure
}

func (UpdateAdventureAction) Type() string { return "adventure/updateAdventure" }

func (a UpdateAdventureAction) Apply(state types.AdventureState) types.AdventureState {
	return UpdateAdventure(state, a.Adventure)
}

// DeleteAdventureAction removes an adventure by id.
type DeleteAdventureAction struct {
	ID int
}

func (DeleteAdventureAction) Type() string { return "adventure/deleteAdventure" }

func (a DeleteAdventureAction) Apply(state types.AdventureState) types.AdventureState {
	return DeleteAdventure(state, a.ID)
}

// AddTurningPointAction appends a turning point to an adventure.
type AddTurningPointAction struct {
	AdventureID  int
	TurningPoint types.TurningPoint
}

func (AddTurningPointAction) Type() string { return "adventure/addTurningPoint" }

func (a AddTurningPointAction) Apply(state types.AdventureState) types.AdventureState {
	return AddTurningPoint(state, a.AdventureID, a.TurningPoint)
}

// UpdateTurningPointAction overwrites one turning point of an adventure.
type UpdateTurningPointAction struct {
	AdventureID    int
	TurningPointID int
	TurningPoint   types.TurningPoint
}

func (UpdateTurningPointAction) Type() string { return "adventure/updateTurningPoint" }

func (a UpdateTurningPointAction) Apply(state types.AdventureState) types.AdventureState {
	return UpdateTurningPoint(state, a.AdventureID, a.TurningPointID, a.TurningPoint)
}

// Reduce applies action to state. A nil action leaves state unchanged.
func Reduce(state types.AdventureState, action Action) types.AdventureState {
	if action == nil {
		return state
	}
	return action.Apply(state)
}
