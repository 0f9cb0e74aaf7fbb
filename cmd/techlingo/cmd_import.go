package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/models"
)

func importCmd() *cobra.Command {
	var (
		filePath string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import terms from a JSON or JSONL file",
		Long: `Import terms from a JSON array file or JSONL (JSON Lines) file.

Each object uses the term fields: id, name, local_name, definition, example,
category. Imported terms are stored as AI-generated terms; names already in
the dictionary are skipped. A missing id is generated.

Use - as the file path to read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			// Open input source.
			var r io.Reader
			if filePath == "" || filePath == "-" {
				r = os.Stdin
			} else {
				f, openErr := os.Open(filePath)
				if openErr != nil {
					return fmt.Errorf("import: opening file: %w", openErr)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			terms, err := decodeTerms(r, format)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			defer func() { _ = a.Close() }()

			res := a.dict.Import(cmd.Context(), terms)
			fmt.Printf("Imported %d terms (%d skipped)\n", res.Added, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "-", "path to input file (- for stdin)")
	cmd.Flags().StringVar(&format, "format", "json", "input format: json or jsonl")
	return cmd
}

func decodeTerms(r io.Reader, format string) ([]models.Term, error) {
	var terms []models.Term
	switch strings.ToLower(format) {
	case "json":
		if err := json.NewDecoder(r).Decode(&terms); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
	case "jsonl":
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var t models.Term
			if err := json.Unmarshal([]byte(line), &t); err != nil {
				return nil, fmt.Errorf("decoding JSONL line: %w", err)
			}
			terms = append(terms, t)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading JSONL: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q (use json or jsonl)", format)
	}
	return terms, nil
}
