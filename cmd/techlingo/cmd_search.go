package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/search"
)

func searchCmd() *cobra.Command {
	var (
		category string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "List dictionary terms matching a name, favorites first",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cat, err := search.ParseCategory(category)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			defer func() { _ = a.Close() }()

			results := a.dict.Search(search.Query{Text: strings.Join(args, " "), Category: cat})
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			if asJSON {
				return printJSON(results)
			}
			for i := range results {
				printTerm(os.Stdout, results[i], a.dict.IsFavorite(results[i].ID))
			}
			if len(results) == 0 {
				fmt.Println("No results found. Try: techlingo lookup <term>")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category (general|programming|hardware|ai|networking|cloud|all)")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
