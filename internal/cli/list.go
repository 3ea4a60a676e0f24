package cli

import (
	"fmt"

	"github.com/meur/dexview/internal/catalog"
	"github.com/meur/dexview/internal/pokeapi"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		search string
		page   int
		narrow bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load the collection and print one page of it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := catalog.NewLoader(pokeapi.New(cfg.Source, logger), cfg.Source, logger)
			coll, err := loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch Pokemon data: %w", err)
			}

			buttons := catalog.WidePageButtons
			if narrow {
				buttons = catalog.NarrowPageButtons
			}
			m := catalog.NewListModel(coll, catalog.Options{
				PageSize:       cfg.View.PageSize,
				MaxPageButtons: buttons,
			})
			m.SetSearchTerm(search)
			view, ok := m.GoToPage(page)
			if !ok && page != view.CurrentPage {
				logger.Warn("page out of range", "page", page, "total_pages", view.TotalPages)
			}

			renderList(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show names containing this text (case-insensitive)")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page to show")
	cmd.Flags().BoolVar(&narrow, "narrow", false, "Use the compact page selector")

	return cmd
}
