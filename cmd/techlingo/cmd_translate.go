package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func translateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "translate <id>",
		Short: "Translate a term's definition and example into English",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("translate: %w", err)
			}
			defer func() { _ = a.Close() }()

			tr, err := a.dict.Translate(cmd.Context(), args[0])
			if err != nil {
				return explain("translate", err)
			}
			if asJSON {
				return printJSON(tr)
			}
			fmt.Printf("Definition: %s\n", tr.EnDefinition)
			fmt.Printf("Example:    %s\n", tr.EnExample)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
