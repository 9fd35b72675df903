package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultThemes(t *testing.T) {
	themes := DefaultThemes()
	assert.Equal(t, []Theme{"tension", "action", "mystery", "social", "personal"}, themes)

	// Mutating the returned slice must not leak into later calls
	themes[0] = "bogus"
	assert.Equal(t, ThemeTension, DefaultThemes()[0])
}

func TestThemeValid(t *testing.T) {
	tests := []struct {
		theme Theme
		want  bool
	}{
		{ThemeTension, true},
		{ThemeAction, true},
		{ThemeMystery, true},
		{ThemeSocial, true},
		{ThemePersonal, true},
		{"", false},
		{"bogus", false},
		{"Tension", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.theme), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.theme.Valid())
		})
	}
}

func TestNewBlankAdventure(t *testing.T) {
	adv := NewBlankAdventure(7)

	assert.Equal(t, 7, adv.ID)
	assert.Empty(t, adv.Title)
	assert.Empty(t, adv.Description)
	assert.Empty(t, adv.Notes)
	assert.NotNil(t, adv.Characters)
	assert.Empty(t, adv.Characters)
	assert.NotNil(t, adv.PlotLines)
	assert.Empty(t, adv.PlotLines)
	assert.NotNil(t, adv.TurningPoints)
	assert.Empty(t, adv.TurningPoints)
	assert.Equal(t, DefaultThemes(), adv.Themes)
}

func TestInitialState(t *testing.T) {
	state := InitialState()

	require.Len(t, state.Adventures, 1)
	assert.Equal(t, 1, state.Adventures[0].ID)
	require.NotNil(t, state.SelectedAdventureID)
	assert.Equal(t, 1, *state.SelectedAdventureID)
}

func TestAdventureStateClone(t *testing.T) {
	original := AdventureState{
		Adventures: []Adventure{
			{
				ID:         1,
				Characters: []string{"Hero"},
				Themes:     DefaultThemes(),
				TurningPoints: []TurningPoint{
					{ID: 1, PlotPoints: []string{"ambush"}},
				},
			},
		},
		SelectedAdventureID: IntPtr(1),
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	clone.Adventures[0].Characters[0] = "Villain"
	clone.Adventures[0].Themes[0] = ThemeSocial
	clone.Adventures[0].TurningPoints[0].PlotPoints[0] = "escape"
	*clone.SelectedAdventureID = 2

	assert.Equal(t, "Hero", original.Adventures[0].Characters[0])
	assert.Equal(t, ThemeTension, original.Adventures[0].Themes[0])
	assert.Equal(t, "ambush", original.Adventures[0].TurningPoints[0].PlotPoints[0])
	assert.Equal(t, 1, *original.SelectedAdventureID)
}

func TestAdventureClone_PreservesNilSlices(t *testing.T) {
	adv := Adventure{ID: 3}
	clone := adv.Clone()

	assert.Nil(t, clone.Characters)
	assert.Nil(t, clone.PlotLines)
	assert.Nil(t, clone.Themes)
	assert.Nil(t, clone.TurningPoints)
}

func TestDefaultGlobalConfig(t *testing.T) {
	tests := []struct {
		name         string
		wantVersion  int
		wantBackend  string
		wantDir      string
		wantKey      string
		wantThrottle string
		wantLogLevel string
	}{
		{
			name:         "creates global config with defaults",
			wantVersion:  1,
			wantBackend:  "file",
			wantDir:      "~/.local/share/adventurecrafter",
			wantKey:      "adventure-crafter-root",
			wantThrottle: "1s",
			wantLogLevel: "warn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGlobalConfig()

			assert.Equal(t, tt.wantVersion, cfg.Version)
			assert.Equal(t, tt.wantBackend, cfg.Storage.Backend)
			assert.Equal(t, tt.wantDir, cfg.Storage.Dir)
			assert.Equal(t, tt.wantKey, cfg.Storage.Key)
			assert.Equal(t, tt.wantThrottle, cfg.Storage.Throttle)
			assert.Equal(t, tt.wantLogLevel, cfg.Logging.Level)
		})
	}
}
