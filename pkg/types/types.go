// Package types provides shared data models for adventurecrafter.
package types

import "slices"

// Theme is one of the five narrative theme tokens an adventure ranks.
type Theme string

const (
	ThemeTension  Theme = "tension"
	ThemeAction   Theme = "action"
	ThemeMystery  Theme = "mystery"
	ThemeSocial   Theme = "social"
	ThemePersonal Theme = "personal"
)

var defaultThemes = []Theme{ThemeTension, ThemeAction, ThemeMystery, ThemeSocial, ThemePersonal}

// DefaultThemes returns the canonical theme ranking. The slice is a fresh copy.
func DefaultThemes() []Theme {
	return slices.Clone(defaultThemes)
}

// Valid reports whether t is a member of the theme enumeration.
func (t Theme) Valid() bool {
	return t != "" && slices.Contains(defaultThemes, t)
}

// TurningPoint is a plot milestone owned by a single adventure.
type TurningPoint struct {
	ID                 int      `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	Notes              string   `json:"notes" yaml:"notes"`
	PlotLine           string   `json:"plotLine" yaml:"plot_line"`
	CharactersInvolved []string `json:"charactersInvolved" yaml:"characters_involved"`
	PlotPoints         []string `json:"plotPoints" yaml:"plot_points"`
}

// Clone returns a deep copy of the turning point.
func (tp TurningPoint) Clone() TurningPoint {
	tp.CharactersInvolved = cloneStrings(tp.CharactersInvolved)
	tp.PlotPoints = cloneStrings(tp.PlotPoints)
	return tp
}

// Adventure is one creative-writing project.
type Adventure struct {
	ID            int            `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Description   string         `json:"description" yaml:"description"`
	Characters    []string       `json:"characters" yaml:"characters"`
	PlotLines     []string       `json:"plotLines" yaml:"plot_lines"`
	Themes        []Theme        `json:"themes" yaml:"themes"`
	Notes         string         `json:"notes" yaml:"notes"`
	TurningPoints []TurningPoint `json:"turningPoints" yaml:"turning_points"`
}

// NewBlankAdventure returns an adventure with the given id, empty text and
// list fields, and the default theme ranking.
func NewBlankAdventure(id int) Adventure {
	return Adventure{
		ID:            id,
		Characters:    []string{},
		PlotLines:     []string{},
		Themes:        DefaultThemes(),
		TurningPoints: []TurningPoint{},
	}
}

// Clone returns a deep copy of the adventure, including its turning points.
func (a Adventure) Clone() Adventure {
	a.Characters = cloneStrings(a.Characters)
	a.PlotLines = cloneStrings(a.PlotLines)
	if a.Themes != nil {
		a.Themes = slices.Clone(a.Themes)
	}
	if a.TurningPoints != nil {
		tps := make([]TurningPoint, len(a.TurningPoints))
		for i, tp := range a.TurningPoints {
			tps[i] = tp.Clone()
		}
		a.TurningPoints = tps
	}
	return a
}

// AdventureState is the whole persisted document payload.
type AdventureState struct {
	Adventures          []Adventure `json:"adventures"`
	SelectedAdventureID *int        `json:"selectedAdventureId"`
}

// InitialState is the state used when nothing has been persisted yet.
func InitialState() AdventureState {
	return AdventureState{
		Adventures:          []Adventure{NewBlankAdventure(1)},
		SelectedAdventureID: IntPtr(1),
	}
}

// Clone returns a deep copy of the state.
func (s AdventureState) Clone() AdventureState {
	out := AdventureState{}
	if s.Adventures != nil {
		out.Adventures = make([]Adventure, len(s.Adventures))
		for i, adv := range s.Adventures {
			out.Adventures[i] = adv.Clone()
		}
	}
	if s.SelectedAdventureID != nil {
		out.SelectedAdventureID = IntPtr(*s.SelectedAdventureID)
	}
	return out
}

// Document is the envelope written to storage. A document without a
// version field decodes as version 0.
type Document struct {
	Key     string         `json:"key"`
	Version int            `json:"version"`
	State   AdventureState `json:"state"`
}

// GlobalConfig is the user-wide configuration at ~/.config/adventurecrafter/config.yaml.
type GlobalConfig struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and tunes the persistence medium.
type StorageConfig struct {
	Backend  string `yaml:"backend"` // file, sqlite
	Dir      string `yaml:"dir"`
	Key      string `yaml:"key"`
	Throttle string `yaml:"throttle"`
}

// LoggingConfig specifies logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultGlobalConfig returns a new GlobalConfig with sensible defaults.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Version: 1,
		Storage: StorageConfig{
			Backend:  "file",
			Dir:      "~/.local/share/adventurecrafter",
			Key:      "adventure-crafter-root",
			Throttle: "1s",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}
