// Package main is the entry point for adventurecrafter.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/azyu/adventurecrafter/internal/adventure"
	"github.com/azyu/adventurecrafter/internal/app"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "0.1.0"

var (
	ErrAdventureNotFound    = errors.New("adventure not found")
	ErrTurningPointNotFound = errors.New("turning point not found")
	ErrNoSelection          = errors.New("no adventure selected")
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "adventurecrafter",
	Short: "Plan adventures: characters, plot lines, themes and turning points",
	Long: `Adventure Crafter keeps a local notebook of adventures. Each adventure has
a title, description, characters, plot lines, a ranked list of five themes
and a sequence of turning points. Changes are saved to local storage.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// withApp opens the application, runs fn and always closes it so pending
// writes are flushed.
func withApp(cmd *cobra.Command, fn func(*app.App) error) (err error) {
	application, err := app.New(app.Options{
		ConfigPath: configPath,
		LogOutput:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() {
		if closeErr := application.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to save changes: %w", closeErr)
		}
	}()

	return fn(application)
}

// resolveAdventure returns the adventure named by args[0], or the selected
// adventure when no argument is given.
func resolveAdventure(state types.AdventureState, args []string) (types.Adventure, error) {
	if len(args) == 0 {
		adv, ok := adventure.SelectedAdventure(state)
		if !ok {
			return types.Adventure{}, ErrNoSelection
		}
		return adv, nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return types.Adventure{}, err
	}
	adv, ok := adventure.FindAdventure(state, id)
	if !ok {
		return types.Adventure{}, fmt.Errorf("%w: %d", ErrAdventureNotFound, id)
	}
	return adv, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cm *app.ConfigManager
		if configPath != "" {
			cm = app.NewConfigManagerAt(configPath)
		} else {
			var err error
			cm, err = app.NewConfigManager()
			if err != nil {
				return err
			}
		}

		cfg, err := cm.LoadGlobalConfig()
		if err != nil {
			return err
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", cm.Path())
		fmt.Fprint(out, string(data))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/adventurecrafter/config.yaml)")

	addAdventureFlags(addCmd)
	addCmd.Flags().Int("id", 0, "Adventure id (default: next free id)")
	addAdventureFlags(updateCmd)

	deleteCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")

	addTurningPointFlags(tpAddCmd)
	addTurningPointFlags(tpUpdateCmd)
	tpUpdateCmd.Flags().Int("id", 0, "Store the turning point under a different id")

	exportCmd.Flags().Bool("html", false, "Render HTML instead of Markdown")
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	storageResetCmd.Flags().BoolP("force", "f", false, "Reset without confirmation")

	themesCmd.AddCommand(themesMoveCmd)
	turningPointCmd.AddCommand(tpAddCmd, tpUpdateCmd)
	storageCmd.AddCommand(storageCheckCmd, storageResetCmd)

	rootCmd.AddCommand(
		listCmd,
		showCmd,
		newCmd,
		addCmd,
		selectCmd,
		updateCmd,
		deleteCmd,
		themesCmd,
		turningPointCmd,
		exportCmd,
		storageCmd,
		configCmd,
	)
}
