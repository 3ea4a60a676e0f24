package cli

import (
	"github.com/meur/dexview/internal/audio"
	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/pokeapi"
	"github.com/meur/dexview/internal/storage"
	"github.com/meur/dexview/internal/tui"
	"github.com/spf13/cobra"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := pokeapi.New(cfg.Source, logger)

			deps := tui.Deps{
				Library:  catalog.NewLibrary(catalog.NewLoader(client, cfg.Source, logger), logger),
				Viewer:   detail.NewViewer(detail.NewLoader(client, logger), audio.NewExecPlayerFactory(cfg.Audio.Player), logger),
				ClientID: localClient,
				View:     cfg.View,
				Logger:   logger,
			}

			store, err := storage.New(cfg.Server.DBPath)
			if err != nil {
				logger.Warn("preferences unavailable, theme will not be saved", "error", err)
			} else {
				defer store.Close()
				deps.Prefs = store
			}

			return tui.Run(cmd.Context(), deps)
		},
	}
}
