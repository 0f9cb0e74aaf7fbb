package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ajitpratap0/techlingo/internal/gateway"
	"github.com/ajitpratap0/techlingo/internal/models"
)

func printTerm(w io.Writer, t models.Term, favorite bool) {
	star := " "
	if favorite {
		star = "*"
	}
	ai := ""
	if t.IsGenerated {
		ai = " [AI]"
	}
	fmt.Fprintf(w, "%s %s / %s (%s)%s\n", star, t.Name, t.LocalName, t.Category.Label(), ai)
	fmt.Fprintf(w, "    ID: %s\n", t.ID)
}

func printTermDetail(w io.Writer, t models.Term, favorite bool) {
	printTerm(w, t, favorite)
	fmt.Fprintf(w, "    %s\n", t.Definition)
	if t.Example != "" {
		fmt.Fprintf(w, "    مثال: %s\n", t.Example)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// explain turns a gateway failure into a message for the terminal, keeping
// other errors as they are.
func explain(op string, err error) error {
	var f *gateway.LookupFailure
	if !errors.As(err, &f) {
		return fmt.Errorf("%s: %w", op, err)
	}
	fmt.Fprintf(os.Stderr, "%s\n%s\n", f.LocalMessage, f.Message)
	switch {
	case f.ReselectCredentials:
		fmt.Fprintln(os.Stderr, "Set a different key with GEMINI_API_KEY / ANTHROPIC_API_KEY or in the config file, then retry.")
	case f.Retryable:
		fmt.Fprintln(os.Stderr, "The request can be retried.")
	}
	return fmt.Errorf("%s: %w", op, err)
}
