package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func getCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			defer func() { _ = a.Close() }()

			t, err := a.dict.Get(args[0])
			if err != nil {
				return fmt.Errorf("get: %w", err)
			}
			if asJSON {
				return printJSON(t)
			}
			printTermDetail(os.Stdout, t, a.dict.IsFavorite(t.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
