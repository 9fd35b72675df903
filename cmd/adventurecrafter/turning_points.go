package main

import (
	"fmt"
	"slices"

	"github.com/azyu/adventurecrafter/internal/adventure"
	"github.com/azyu/adventurecrafter/internal/app"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/spf13/cobra"
)

var turningPointCmd = &cobra.Command{
	Use:     "turning-point",
	Aliases: []string{"tp"},
	Short:   "Manage the turning points of an adventure",
}

var tpAddCmd = &cobra.Command{
	Use:   "add <adventure-id>",
	Short: "Append a turning point to an adventure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args)
			if err != nil {
				return err
			}

			tp := types.TurningPoint{
				ID:                 adventure.NextTurningPointID(adv),
				CharactersInvolved: []string{},
				PlotPoints:         []string{},
			}
			applyTurningPointFlags(cmd, &tp)

			a.Dispatch(adventure.AddTurningPointAction{AdventureID: adv.ID, TurningPoint: tp})
			fmt.Fprintf(cmd.OutOrStdout(), "Added turning point %d to adventure %d\n", tp.ID, adv.ID)
			return nil
		})
	},
}

var tpUpdateCmd = &cobra.Command{
	Use:   "update <adventure-id> <turning-point-id>",
	Short: "Edit a turning point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tpID, err := parseID(args[1])
		if err != nil {
			return err
		}

		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args[:1])
			if err != nil {
				return err
			}

			idx := slices.IndexFunc(adv.TurningPoints, func(tp types.TurningPoint) bool {
				return tp.ID == tpID
			})
			if idx == -1 {
				return fmt.Errorf("%w: %d in adventure %d", ErrTurningPointNotFound, tpID, adv.ID)
			}

			tp := adv.TurningPoints[idx]
			applyTurningPointFlags(cmd, &tp)
			if cmd.Flags().Changed("id") {
				tp.ID, _ = cmd.Flags().GetInt("id")
			}

			a.Dispatch(adventure.UpdateTurningPointAction{
				AdventureID:    adv.ID,
				TurningPointID: tpID,
				TurningPoint:   tp,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated turning point %d in adventure %d\n", tpID, adv.ID)
			return nil
		})
	},
}

func addTurningPointFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Turning point title")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().String("plot-line", "", "Plot line this turning point belongs to")
	cmd.Flags().StringArray("character", nil, "Character involved (repeatable, replaces the list)")
	cmd.Flags().StringArray("plot-point", nil, "Plot point (repeatable, replaces the list)")
}

func applyTurningPointFlags(cmd *cobra.Command, tp *types.TurningPoint) {
	flags := cmd.Flags()

	if flags.Changed("title") {
		tp.Title, _ = flags.GetString("title")
	}
	if flags.Changed("notes") {
		tp.Notes, _ = flags.GetString("notes")
	}
	if flags.Changed("plot-line") {
		tp.PlotLine, _ = flags.GetString("plot-line")
	}
	if flags.Changed("character") {
		tp.CharactersInvolved, _ = flags.GetStringArray("character")
	}
	if flags.Changed("plot-point") {
		tp.PlotPoints, _ = flags.GetStringArray("plot-point")
	}
}
