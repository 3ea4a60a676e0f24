package cli

import (
	"fmt"

	"github.com/meur/dexview/internal/models"
	"github.com/meur/dexview/internal/storage"
	"github.com/spf13/cobra"
)

// localClient is the preferences key used by the terminal commands.
const localClient = "local"

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the display theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.New(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("open preferences: %w", err)
			}
			defer store.Close()

			var prefs *models.Preferences
			switch {
			case len(args) == 0:
				prefs, err = store.PreferencesOrDefault(localClient)
			case args[0] == "toggle":
				prefs, err = store.ToggleTheme(localClient)
			default:
				prefs, err = store.SetDark(localClient, args[0] == "dark")
			}
			if err != nil {
				return fmt.Errorf("update theme: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", prefs.Theme())
			return nil
		},
	}
}
