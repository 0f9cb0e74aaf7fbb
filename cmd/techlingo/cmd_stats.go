package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/models"
)

func statsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dictionary statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			defer func() { _ = a.Close() }()

			stats := a.dict.Stats()
			if asJSON {
				return printJSON(stats)
			}

			fmt.Printf("Total terms:     %d\n", stats.TotalTerms)
			fmt.Printf("AI-generated:    %d\n", stats.GeneratedTerms)
			fmt.Printf("Favorites:       %d\n\n", stats.Favorites)

			fmt.Println("By category:")
			for _, c := range models.ValidCategories {
				fmt.Printf("  %-12s %-14s %d\n", c, c.Label(), stats.ByCategory[string(c)])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
