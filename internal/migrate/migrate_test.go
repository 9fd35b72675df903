package migrate

import (
	"encoding/json"
	"testing"

	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithThemes(version int, themes ...types.Theme) types.Document {
	adv := types.NewBlankAdventure(1)
	adv.Themes = themes
	return types.Document{
		Key:     "adventure-crafter-root",
		Version: version,
		State: types.AdventureState{
			Adventures:          []types.Adventure{adv},
			SelectedAdventureID: types.IntPtr(1),
		},
	}
}

func TestMigrate_RepairThemes(t *testing.T) {
	tests := []struct {
		name    string
		version int
		themes  []types.Theme
		want    []types.Theme
	}{
		{
			name:    "drops empty and unknown tokens, keeps duplicates",
			version: 1,
			themes:  []types.Theme{"tension", "", "tension", "bogus", "social"},
			want:    []types.Theme{"tension", "tension", "social"},
		},
		{
			name:    "all empty resets to default ranking",
			version: 1,
			themes:  []types.Theme{"", "", "", "", ""},
			want:    types.DefaultThemes(),
		},
		{
			name:    "nil themes reset to default ranking",
			version: 0,
			themes:  nil,
			want:    types.DefaultThemes(),
		},
		{
			name:    "valid custom ranking is kept",
			version: 1,
			themes:  []types.Theme{"personal", "social", "mystery", "action", "tension"},
			want:    []types.Theme{"personal", "social", "mystery", "action", "tension"},
		},
		{
			name:    "short list is not padded",
			version: 1,
			themes:  []types.Theme{"mystery", "bogus"},
			want:    []types.Theme{"mystery"},
		},
		{
			name:    "current version is left alone",
			version: 2,
			themes:  []types.Theme{"", "bogus"},
			want:    []types.Theme{"", "bogus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Default().Migrate(docWithThemes(tt.version, tt.themes...))

			assert.Equal(t, tt.want, got.State.Adventures[0].Themes)
			assert.Equal(t, CurrentVersion, got.Version)
		})
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	engine := Default()
	doc := docWithThemes(0, "tension", "", "bogus", "social")

	once := engine.Migrate(doc)
	twice := engine.Migrate(once)

	assert.Equal(t, once, twice)
}

func TestMigrate_DoesNotMutateInput(t *testing.T) {
	doc := docWithThemes(1, "tension", "", "social")
	_ = Default().Migrate(doc)

	assert.Equal(t, []types.Theme{"tension", "", "social"}, doc.State.Adventures[0].Themes)
	assert.Equal(t, 1, doc.Version)
}

func TestMigrate_MissingVersionTreatedAsZero(t *testing.T) {
	raw := `{"key":"adventure-crafter-root","state":{"adventures":[{"id":1,"themes":["","action"]}],"selectedAdventureId":1}}`

	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Equal(t, 0, doc.Version)

	got := Default().Migrate(doc)
	assert.Equal(t, CurrentVersion, got.Version)
	assert.Equal(t, []types.Theme{"action"}, got.State.Adventures[0].Themes)
}

func TestMigrate_NewerVersionUntouched(t *testing.T) {
	doc := docWithThemes(5, "bogus")
	got := Default().Migrate(doc)

	assert.Equal(t, doc, got)
}

func TestNew_SortsSteps(t *testing.T) {
	var order []string
	record := func(name string) func(types.AdventureState) types.AdventureState {
		return func(s types.AdventureState) types.AdventureState {
			order = append(order, name)
			return s
		}
	}

	engine := New(
		Step{Version: 3, Name: "third", Apply: record("third")},
		Step{Version: 1, Name: "first", Apply: record("first")},
		Step{Version: 2, Name: "second", Apply: record("second")},
	)

	got := engine.Migrate(types.Document{Version: 1})

	assert.Equal(t, []string{"second", "third"}, order)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, 3, engine.LatestVersion())
}

func TestDefault_LatestVersionMatchesCurrent(t *testing.T) {
	assert.Equal(t, CurrentVersion, Default().LatestVersion())
	assert.Equal(t, 0, New().LatestVersion())
}
