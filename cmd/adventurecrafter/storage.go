package main

import (
	"fmt"

	"github.com/azyu/adventurecrafter/internal/app"
	"github.com/azyu/adventurecrafter/internal/cli/styles"
	"github.com/azyu/adventurecrafter/internal/export"
	"github.com/azyu/adventurecrafter/internal/storage"
	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export an adventure as Markdown or HTML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asHTML, _ := cmd.Flags().GetBool("html")
		output, _ := cmd.Flags().GetString("output")

		return withApp(cmd, func(a *app.App) error {
			adv, err := resolveAdventure(a.Store.State(), args)
			if err != nil {
				return err
			}

			content := export.Markdown(adv)
			if asHTML {
				content, err = export.HTML(adv)
				if err != nil {
					return err
				}
			}

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			if err := storage.AtomicWriteFile(afero.NewOsFs(), output, []byte(content)); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported adventure %d to %s\n", adv.ID, output)
			return nil
		})
	},
}

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect or reset local storage",
}

var storageCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report whether local storage is usable",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			cfg, err := a.Config.LoadGlobalConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend:  %s\n", cfg.Storage.Backend)
			fmt.Fprintf(out, "Location: %s\n", cfg.Storage.Dir)
			fmt.Fprintf(out, "Key:      %s\n", cfg.Storage.Key)
			if a.Persistence.Available() {
				fmt.Fprintln(out, styles.Selected.Render("Storage is available."))
			} else {
				fmt.Fprintln(out, styles.Warning.Render("Storage is not available; changes are kept in memory only."))
			}
			return nil
		})
	},
}

var storageResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the saved document",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			confirmed := false
			err := huh.NewConfirm().
				Title("Remove all saved adventures?").
				Affirmative("Remove").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil {
				return fmt.Errorf("confirmation failed: %w", err)
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
				return nil
			}
		}

		return withApp(cmd, func(a *app.App) error {
			if err := a.Persistence.Purge(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved adventures removed.")
			return nil
		})
	},
}
