package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite mark of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("favorite: %w", err)
			}
			defer func() { _ = a.Close() }()

			on, err := a.dict.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("favorite: %w", err)
			}
			if on {
				fmt.Printf("Marked %s as favorite\n", args[0])
			} else {
				fmt.Printf("Removed %s from favorites\n", args[0])
			}
			return nil
		},
	}
}
