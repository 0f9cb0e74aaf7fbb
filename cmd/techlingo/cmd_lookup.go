package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/dictionary"
)

func lookupCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "lookup <term>",
		Short: "Look up a term, asking the AI service when it is not in the dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("lookup: %w", err)
			}
			defer func() { _ = a.Close() }()

			t, added, err := a.dict.Lookup(cmd.Context(), strings.Join(args, " "))
			if errors.Is(err, dictionary.ErrEmptyQuery) {
				return nil
			}
			if err != nil {
				return explain("lookup", err)
			}

			if asJSON {
				return printJSON(map[string]any{"term": t, "added": added})
			}
			printTermDetail(os.Stdout, t, a.dict.IsFavorite(t.ID))
			if added {
				fmt.Println("Added to the dictionary.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
