// Package migrate upgrades persisted adventure documents to the current
// schema version.
package migrate

import (
	"slices"

	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/rs/zerolog"
)

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 2

// Step upgrades a state to Version. It runs only for documents whose stored
// version is strictly below Version.
type Step struct {
	Version int
	Name    string
	Apply   func(state types.AdventureState) types.AdventureState
}

// Engine applies an ordered set of steps.
type Engine struct {
	steps  []Step
	logger zerolog.Logger
}

// New creates an engine. Steps are applied in ascending Version order
// regardless of the order given.
func New(steps ...Step) *Engine {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b Step) int {
		return a.Version - b.Version
	})
	return &Engine{
		steps:  sorted,
		logger: zerolog.Nop(),
	}
}

// Default returns the engine holding every production step.
func Default() *Engine {
	return New(
		Step{Version: 1, Name: "baseline", Apply: baseline},
		Step{Version: 2, Name: "repair-themes", Apply: repairThemes},
	)
}

// WithLogger returns e with logger attached.
func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.logger = logger
	return e
}

// Migrate runs every step above doc.Version and stamps the document with the
// highest version applied. Documents already at or past the last step are
// returned unchanged.
func (e *Engine) Migrate(doc types.Document) types.Document {
	out := types.Document{
		Key:     doc.Key,
		Version: doc.Version,
		State:   doc.State.Clone(),
	}

	for _, step := range e.steps {
		if out.Version >= step.Version {
			continue
		}
		out.State = step.Apply(out.State)
		e.logger.Debug().
			Int("from", out.Version).
			Int("to", step.Version).
			Str("step", step.Name).
			Msg("applied migration")
		out.Version = step.Version
	}
	return out
}

// LatestVersion returns the version of the last step, or 0 without steps.
func (e *Engine) LatestVersion() int {
	if len(e.steps) == 0 {
		return 0
	}
	return e.steps[len(e.steps)-1].Version
}

func baseline(state types.AdventureState) types.AdventureState {
	return state
}

// repairThemes drops empty and unknown theme tokens. An adventure left with
// no themes gets the default ranking back; a shorter non-empty list is kept
// as it is and not padded back to five entries.
func repairThemes(state types.AdventureState) types.AdventureState {
	for i := range state.Adventures {
		adv := &state.Adventures[i]
		filtered := make([]types.Theme, 0, len(adv.Themes))
		for _, theme := range adv.Themes {
			if theme.Valid() {
				filtered = append(filtered, theme)
			}
		}
		if len(filtered) == 0 {
			filtered = types.DefaultThemes()
		}
		adv.Themes = filtered
	}
	return state
}
