package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/models"
)

func codeCmd() *cobra.Command {
	var (
		mode      string
		language  string
		framework string
		filePath  string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "code [prompt]",
		Short: "Developer lab: generate, fix, optimize, review or evolve code",
		Long: `Sends a prompt or a code snippet to the AI service.

Modes:
  generate  write new code from a description (default)
  fix       find and fix logical or syntax errors
  optimize  refactor for performance and readability
  review    security and performance audit with line feedback
  evolve    three stages: basic, optimized, enterprise

Use --file to read the snippet from a file (- for stdin).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			prompt := strings.Join(args, " ")
			if filePath != "" {
				var r io.Reader = os.Stdin
				if filePath != "-" {
					f, openErr := os.Open(filePath)
					if openErr != nil {
						return fmt.Errorf("code: opening file: %w", openErr)
					}
					defer func() { _ = f.Close() }()
					r = f
				}
				b, readErr := io.ReadAll(r)
				if readErr != nil {
					return fmt.Errorf("code: reading input: %w", readErr)
				}
				prompt = strings.TrimSpace(prompt + "\n" + string(b))
			}
			if strings.TrimSpace(prompt) == "" {
				return fmt.Errorf("code: a prompt or --file is required")
			}

			m := models.DevMode(strings.ToLower(mode))
			if !m.IsValid() {
				return fmt.Errorf("code: invalid mode %q (use generate, fix, optimize, review or evolve)", mode)
			}

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("code: %w", err)
			}
			defer func() { _ = a.Close() }()

			art, err := a.dict.ProcessCode(cmd.Context(), models.CodeRequest{
				Prompt:    prompt,
				Mode:      m,
				Language:  language,
				Framework: framework,
			})
			if err != nil {
				return explain("code", err)
			}

			if asJSON {
				return printJSON(art)
			}
			printArtifact(os.Stdout, art)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(models.ModeGenerate), "generate|fix|optimize|review|evolve")
	cmd.Flags().StringVar(&language, "language", "auto", "programming language (auto = detect)")
	cmd.Flags().StringVar(&framework, "framework", "", "framework, if any")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "read the snippet from a file (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printArtifact(w io.Writer, art models.CodeArtifact) {
	if art.Evolution != nil {
		fmt.Fprintf(w, "--- basic ---\n%s\n\n", art.Evolution.Basic)
		fmt.Fprintf(w, "--- optimized ---\n%s\n\n", art.Evolution.Optimized)
		fmt.Fprintf(w, "--- enterprise ---\n%s\n\n", art.Evolution.Enterprise)
	} else if art.Code != "" {
		fmt.Fprintf(w, "%s\n\n", art.Code)
	}
	fmt.Fprintf(w, "%s\n", art.Explanation)
	if art.DetectedErrors != "" {
		fmt.Fprintf(w, "\nDetected errors:\n%s\n", art.DetectedErrors)
	}
	for _, fb := range art.ReviewFeedbacks {
		fmt.Fprintf(w, "[%s] line %d: %s\n", fb.Type, fb.Line, fb.Comment)
	}
	if len(art.Improvements) > 0 {
		fmt.Fprintln(w, "\nImprovements:")
		for _, imp := range art.Improvements {
			fmt.Fprintf(w, "  - %s\n", imp)
		}
	}
}
