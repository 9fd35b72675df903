// Package export renders adventures as Markdown or HTML documents.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown renders adv as a Markdown document.
func Markdown(adv types.Adventure) string {
	var b strings.Builder

	title := strings.TrimSpace(adv.Title)
	if title == "" {
		title = fmt.Sprintf("Untitled adventure #%d", adv.ID)
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if desc := strings.TrimSpace(adv.Description); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}

	writeList(&b, "Characters", adv.Characters)
	writeList(&b, "Plot Lines", adv.PlotLines)

	if len(adv.Themes) > 0 {
		b.WriteString("## Themes\n\n")
		for i, theme := range adv.Themes {
			fmt.Fprintf(&b, "%d. %s\n", i+1, theme)
		}
		b.WriteString("\n")
	}

	if len(adv.TurningPoints) > 0 {
		b.WriteString("## Turning Points\n\n")
		for _, tp := range adv.TurningPoints {
			tpTitle := strings.TrimSpace(tp.Title)
			if tpTitle == "" {
				tpTitle = fmt.Sprintf("Turning point %d", tp.ID)
			}
			fmt.Fprintf(&b, "### %s\n\n", tpTitle)
			if tp.PlotLine != "" {
				fmt.Fprintf(&b, "**Plot line:** %s\n\n", tp.PlotLine)
			}
			if len(tp.CharactersInvolved) > 0 {
				fmt.Fprintf(&b, "**Characters:** %s\n\n", strings.Join(tp.CharactersInvolved, ", "))
			}
			for _, point := range tp.PlotPoints {
				fmt.Fprintf(&b, "- %s\n", point)
			}
			if len(tp.PlotPoints) > 0 {
				b.WriteString("\n")
			}
			if notes := strings.TrimSpace(tp.Notes); notes != "" {
				fmt.Fprintf(&b, "%s\n\n", notes)
			}
		}
	}

	if notes := strings.TrimSpace(adv.Notes); notes != "" {
		fmt.Fprintf(&b, "## Notes\n\n%s\n", notes)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// HTML renders adv as an HTML fragment.
func HTML(adv types.Adventure) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(adv)), &buf); err != nil {
		return "", fmt.Errorf("failed to render adventure %d: %w", adv.ID, err)
	}
	return buf.String(), nil
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
