package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/azyu/adventurecrafter/internal/adventure"
	"github.com/azyu/adventurecrafter/internal/app"
	"github.com/azyu/adventurecrafter/internal/cli/styles"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all adventures",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			state := a.Store.State()
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, styles.Header.Render("Adventures:"))
			for _, adv := range state.Adventures {
				line := fmt.Sprintf("%3d  %s", adv.ID, displayTitle(adv))
				if state.SelectedAdventureID != nil && *state.SelectedAdventureID == adv.ID {
					fmt.Fprintln(out, styles.Selected.Render("* "+line))
				} else {
					fmt.Fprintln(out, styles.Item.Render("  "+line))
				}
			}
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show an adventure (the selected one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args)
			if err != nil {
				return err
			}
			printAdventure(cmd.OutOrStdout(), adv)
			return nil
		})
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a blank adventure and select it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			state := a.Dispatch(adventure.NewAdventureAction{})
			fmt.Fprintf(cmd.OutOrStdout(), "Created adventure %d\n", *state.SelectedAdventureID)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a fully specified adventure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			state := a.Store.State()

			id, _ := cmd.Flags().GetInt("id")
			if id == 0 {
				id = adventure.NextAdventureID(state)
			}
			if id < 0 {
				return fmt.Errorf("invalid id %d: must be a positive integer", id)
			}
			if _, exists := adventure.FindAdventure(state, id); exists {
				return fmt.Errorf("adventure %d already exists", id)
			}

			adv := types.NewBlankAdventure(id)
			if err := applyAdventureFlags(cmd, &adv); err != nil {
				return err
			}

			a.Dispatch(adventure.AddAdventureAction{Adventure: adv})
			fmt.Fprintf(cmd.OutOrStdout(), "Added adventure %d\n", id)
			return nil
		})
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <id>",
	Short: "Select an adventure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args)
			if err != nil {
				return err
			}
			a.Dispatch(adventure.SetSelectedAdventureAction{ID: types.IntPtr(adv.ID)})
			fmt.Fprintf(cmd.OutOrStdout(), "Selected adventure %d\n", adv.ID)
			return nil
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Edit fields of an adventure (the selected one by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args)
			if err != nil {
				return err
			}
			if err := applyAdventureFlags(cmd, &adv); err != nil {
				return err
			}
			a.Dispatch(adventure.UpdateAdventureAction{Adventure: adv})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated adventure %d\n", adv.ID)
			return nil
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an adventure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args)
			if err != nil {
				return err
			}

			if !force {
				confirmed := false
				err := huh.NewConfirm().
					Title(fmt.Sprintf("Delete %q?", displayTitle(adv))).
					Description("This adventure and all its turning points will be removed.").
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed).
					Run()
				if err != nil {
					return fmt.Errorf("confirmation failed: %w", err)
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled.")
					return nil
				}
			}

			state := a.Dispatch(adventure.DeleteAdventureAction{ID: adv.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted adventure %d\n", adv.ID)
			if selected, ok := adventure.SelectedAdventure(state); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Selected adventure %d\n", selected.ID)
			}
			return nil
		})
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Rank the themes of the selected adventure",
}

var themesMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move the theme at position <from> to position <to> (1-based)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseID(args[0])
		if err != nil {
			return err
		}
		to, err := parseID(args[1])
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), nil)
			if err != nil {
				return err
			}
			themes, err := moveTheme(adv.Themes, from-1, to-1)
			if err != nil {
				return err
			}
			adv.Themes = themes
			a.Dispatch(adventure.UpdateAdventureAction{Adventure: adv})

			for i, theme := range themes {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, theme)
			}
			return nil
		})
	},
}

func addAdventureFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Adventure title")
	cmd.Flags().String("description", "", "Adventure description")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().StringArray("character", nil, "Character name (repeatable, replaces the list)")
	cmd.Flags().StringArray("plot-line", nil, "Plot line (repeatable, replaces the list)")
	cmd.Flags().StringSlice("themes", nil, "Full theme ranking, e.g. mystery,tension,action,social,personal")
}

// applyAdventureFlags copies every flag the user set onto adv.
func applyAdventureFlags(cmd *cobra.Command, adv *types.Adventure) error {
	flags := cmd.Flags()

	if flags.Changed("title") {
		adv.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		adv.Description, _ = flags.GetString("description")
	}
	if flags.Changed("notes") {
		adv.Notes, _ = flags.GetString("notes")
	}
	if flags.Changed("character") {
		adv.Characters, _ = flags.GetStringArray("character")
	}
	if flags.Changed("plot-line") {
		adv.PlotLines, _ = flags.GetStringArray("plot-line")
	}
	if flags.Changed("themes") {
		raw, _ := flags.GetStringSlice("themes")
		themes, err := parseRanking(raw)
		if err != nil {
			return err
		}
		adv.Themes = themes
	}
	return nil
}

// parseRanking accepts a permutation of the five theme tokens.
func parseRanking(raw []string) ([]types.Theme, error) {
	want := types.DefaultThemes()
	if len(raw) != len(want) {
		return nil, fmt.Errorf("themes must list all %d themes, got %d", len(want), len(raw))
	}

	themes := make([]types.Theme, 0, len(raw))
	for _, s := range raw {
		theme := types.Theme(strings.ToLower(strings.TrimSpace(s)))
		if !theme.Valid() {
			return nil, fmt.Errorf("unknown theme %q", s)
		}
		if slices.Contains(themes, theme) {
			return nil, fmt.Errorf("theme %q listed twice", theme)
		}
		themes = append(themes, theme)
	}
	return themes, nil
}

// moveTheme returns a copy of themes with the entry at from moved to to.
func moveTheme(themes []types.Theme, from, to int) ([]types.Theme, error) {
	if from < 0 || from >= len(themes) || to < 0 || to >= len(themes) {
		return nil, fmt.Errorf("positions must be between 1 and %d", len(themes))
	}
	out := slices.Clone(themes)
	theme := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, theme)
	return out, nil
}

func displayTitle(adv types.Adventure) string {
	if strings.TrimSpace(adv.Title) == "" {
		return "(untitled)"
	}
	return adv.Title
}

func printAdventure(out io.Writer, adv types.Adventure) {
	field := func(label, value string) {
		fmt.Fprintf(out, "%s %s\n", styles.Label.Render(label+":"), styles.Value(value))
	}

	fmt.Fprintln(out, styles.Header.Render(fmt.Sprintf("Adventure %d", adv.ID)))
	field("Title", adv.Title)
	field("Description", adv.Description)
	field("Characters", strings.Join(adv.Characters, ", "))
	field("Plot lines", strings.Join(adv.PlotLines, ", "))

	themes := make([]string, len(adv.Themes))
	for i, theme := range adv.Themes {
		themes[i] = fmt.Sprintf("%d.%s", i+1, theme)
	}
	field("Themes", strings.Join(themes, " "))
	if len(adv.Themes) != len(types.DefaultThemes()) {
		fmt.Fprintln(out, styles.Warning.Render("  theme ranking is incomplete; use `update --themes` to set all five"))
	}
	field("Notes", adv.Notes)

	for _, tp := range adv.TurningPoints {
		var b strings.Builder
		fmt.Fprintf(&b, "#%d %s\n", tp.ID, styles.Value(tp.Title))
		fmt.Fprintf(&b, "Plot line: %s\n", styles.Value(tp.PlotLine))
		fmt.Fprintf(&b, "Characters: %s\n", styles.Value(strings.Join(tp.CharactersInvolved, ", ")))
		fmt.Fprintf(&b, "Plot points: %s\n", styles.Value(strings.Join(tp.PlotPoints, "; ")))
		fmt.Fprintf(&b, "Notes: %s", styles.Value(tp.Notes))
		fmt.Fprintln(out, styles.Card.Render(b.String()))
	}
}
