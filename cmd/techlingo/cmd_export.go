package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/search"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export AI-generated terms to JSON or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			defer func() { _ = a.Close() }()

			terms := a.dict.Generated()
			if all {
				terms = a.dict.Search(search.Query{})
			}

			var w *os.File
			if output == "" || output == "-" {
				w = os.Stdout
			} else {
				w, err = os.Create(output)
				if err != nil {
					return fmt.Errorf("export: creating output file: %w", err)
				}
				defer func() { _ = w.Close() }()
			}

			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(terms); encErr != nil {
					return fmt.Errorf("export: encoding JSON: %w", encErr)
				}
			case "csv":
				cw := csv.NewWriter(w)
				headers := []string{"id", "name", "local_name", "definition", "example", "category", "is_generated", "favorite"}
				if writeErr := cw.Write(headers); writeErr != nil {
					return fmt.Errorf("export: writing CSV header: %w", writeErr)
				}
				for i := range terms {
					t := &terms[i]
					row := []string{
						t.ID,
						t.Name,
						t.LocalName,
						t.Definition,
						t.Example,
						string(t.Category),
						strconv.FormatBool(t.IsGenerated),
						strconv.FormatBool(a.dict.IsFavorite(t.ID)),
					}
					if writeErr := cw.Write(row); writeErr != nil {
						return fmt.Errorf("export: writing CSV row: %w", writeErr)
					}
				}
				cw.Flush()
				if flushErr := cw.Error(); flushErr != nil {
					return fmt.Errorf("export: flushing CSV: %w", flushErr)
				}
			default:
				return fmt.Errorf("export: unsupported format %q (use json or csv)", format)
			}

			if output != "" && output != "-" {
				fmt.Fprintf(os.Stderr, "Exported %d terms to %s\n", len(terms), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	cmd.Flags().BoolVar(&all, "all", false, "include built-in terms")
	return cmd
}
