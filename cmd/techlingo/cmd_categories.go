package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/internal/search"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List term categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-12s %-14s %s\n", "all", "All", search.AllLabel)
			for _, c := range models.ValidCategories {
				fmt.Printf("%-12s %-14s %s\n", c, c.DisplayName(), c.Label())
			}
			return nil
		},
	}
}
