// Package cli implements the dexview command line: one-shot list and detail
// output, cry playback, the theme switch and the interactive browser.
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/meur/dexview/internal/config"
	"github.com/meur/dexview/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagSource    string
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    *config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the dexview CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dexview",
		Short: "dexview browses the first-generation Pokemon catalog",
		Long:  "dexview loads the PokeAPI collection and lets you search, page through and inspect it.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(flagConfig)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if flagSource != "" {
				c.Source.BaseURL = strings.TrimRight(flagSource, "/")
			}
			if flagDB != "" {
				c.Server.DBPath = flagDB
			}
			if cmd.Flags().Changed("log-level") {
				c.Log.Level = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") {
				c.Log.Format = flagLogFormat
			}
			if flagDebug {
				c.Log.Level = "debug"
			}

			cfg = c
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(c.Log.Level), c.Log.Format, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to dexview.yaml")
	root.PersistentFlags().StringVar(&flagSource, "source", "", "PokeAPI base URL (or POKEAPI_URL env)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for preferences (or DB_PATH env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newCryCmd(),
		newThemeCmd(),
		newBrowseCmd(),
	)

	return root
}
