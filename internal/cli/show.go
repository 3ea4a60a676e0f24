package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/meur/dexview/internal/detail"
	"github.com/meur/dexview/internal/pokeapi"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch and print one Pokemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			loader := detail.NewLoader(pokeapi.New(cfg.Source, logger), logger)
			c, err := loader.LoadOne(cmd.Context(), id)
			if err != nil {
				return detailError(id, err)
			}

			renderCreature(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid Pokemon id %q", arg)
	}
	return id, nil
}

// detailError turns a LoadOne failure into the message shown to the user.
func detailError(id int, err error) error {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		return fmt.Errorf("Pokemon #%d not found", id)
	case errors.Is(err, detail.ErrInvalidID):
		return fmt.Errorf("invalid Pokemon id %d", id)
	default:
		return fmt.Errorf("failed to fetch Pokemon details: %w", err)
	}
}

// openRecord navigates viewer to the record named by arg.
func openRecord(cmd *cobra.Command, viewer *detail.Viewer, arg string) (*detail.View, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	v, err := viewer.Open(cmd.Context(), id)
	if err != nil {
		return nil, detailError(id, err)
	}
	return v, nil
}
