package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func forgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <id>",
		Short: "Delete an AI-generated term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("forget: %w", err)
			}
			defer func() { _ = a.Close() }()

			if err := a.dict.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("forget: %w", err)
			}
			fmt.Printf("Deleted term %s\n", args[0])
			return nil
		},
	}
}
