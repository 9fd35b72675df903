package export

import (
	"testing"

	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAdventure() types.Adventure {
	return types.Adventure{
		ID:          4,
		Title:       "The Lost Crown",
		Description: "A heist in the royal vaults.",
		Characters:  []string{"Mira", "Tobin"},
		PlotLines:   []string{"The heist"},
		Themes:      types.DefaultThemes(),
		Notes:       "Keep it short.",
		TurningPoints: []types.TurningPoint{
			{
				ID:                 1,
				Title:              "Betrayal",
				PlotLine:           "The heist",
				CharactersInvolved: []string{"Tobin"},
				PlotPoints:         []string{"Tobin tips off the guards"},
				Notes:              "Foreshadow early.",
			},
		},
	}
}

func TestMarkdown(t *testing.T) {
	want := `# The Lost Crown

A heist in the royal vaults.

## Characters

- Mira
- Tobin

## Plot Lines

- The heist

## Themes

1. tension
2. action
3. mystery
4. social
5. personal

## Turning Points

### Betrayal

**Plot line:** The heist

**Characters:** Tobin

- Tobin tips off the guards

Foreshadow early.

## Notes

Keep it short.
`
	assert.Equal(t, want, Markdown(sampleAdventure()))
}

func TestMarkdown_BlankAdventure(t *testing.T) {
	got := Markdown(types.NewBlankAdventure(9))

	assert.Contains(t, got, "# Untitled adventure #9")
	assert.NotContains(t, got, "## Characters")
	assert.NotContains(t, got, "## Turning Points")
	assert.Contains(t, got, "## Themes")
}

func TestHTML(t *testing.T) {
	html, err := HTML(sampleAdventure())
	require.NoError(t, err)

	assert.Contains(t, html, "<h1>The Lost Crown</h1>")
	assert.Contains(t, html, "<li>Mira</li>")
	assert.Contains(t, html, "<ol>")
	assert.Contains(t, html, "<h3>Betrayal</h3>")
	assert.Contains(t, html, "<strong>Plot line:</strong> The heist")
}
