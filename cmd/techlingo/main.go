package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/techlingo/internal/classifier"
	"github.com/ajitpratap0/techlingo/internal/config"
	"github.com/ajitpratap0/techlingo/internal/dictionary"
	"github.com/ajitpratap0/techlingo/internal/gateway"
	"github.com/ajitpratap0/techlingo/internal/persist"
	"github.com/ajitpratap0/techlingo/internal/search"
	"github.com/ajitpratap0/techlingo/internal/store"
)

var (
	cfg        *config.Config
	configFile string
	ephemeral  bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "techlingo",
		Short: "TechLingo: bilingual Arabic/English dictionary of technical terms",
		Long:  "TechLingo keeps a curated dictionary of technical terms with Arabic definitions, grows it through AI lookups, and offers a developer lab for code generation and review.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadFile(configFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if ephemeral {
				cfg.Storage.Ephemeral = true
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ~/.techlingo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep all state in memory for this run")

	rootCmd.AddCommand(
		searchCmd(),
		getCmd(),
		lookupCmd(),
		favoriteCmd(),
		forgetCmd(),
		translateCmd(),
		codeCmd(),
		categoriesCmd(),
		statsCmd(),
		exportCmd(),
		importCmd(),
		healthCmd(),
		serveCmd(),
		mcpCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newKV(ctx context.Context, logger *slog.Logger) (store.KV, error) {
	if cfg.Storage.Ephemeral {
		return store.NewMemoryKV(), nil
	}
	return store.NewSQLiteKV(ctx, cfg.Storage.Path, logger)
}

// newCredentials returns the key source for the configured provider, or nil
// for providers without keys.
func newCredentials() *gateway.Credentials {
	switch cfg.Provider {
	case "claude":
		return gateway.NewCredentials(cfg.Claude.APIKey, "ANTHROPIC_API_KEY")
	case "ollama":
		return nil
	default:
		return gateway.NewCredentials(cfg.Gemini.APIKey, "GEMINI_API_KEY", "API_KEY")
	}
}

func newBackend(creds *gateway.Credentials, logger *slog.Logger) gateway.Backend {
	switch cfg.Provider {
	case "claude":
		return gateway.NewClaudeBackend(gateway.ClaudeConfig{
			Model:      cfg.Claude.Model,
			CodeModel:  cfg.Claude.CodeModel,
			BaseURL:    cfg.Claude.BaseURL,
			MaxRetries: cfg.Claude.MaxRetries,
		}, creds, logger)
	case "ollama":
		return gateway.NewOllamaBackend(gateway.OllamaConfig{
			BaseURL:   cfg.Ollama.BaseURL,
			Model:     cfg.Ollama.Model,
			CodeModel: cfg.Ollama.CodeModel,
		}, logger)
	default:
		return gateway.NewGeminiBackend(gateway.GeminiConfig{
			Model:     cfg.Gemini.Model,
			CodeModel: cfg.Gemini.CodeModel,
			BaseURL:   cfg.Gemini.BaseURL,
		}, creds, logger)
	}
}

// app is the wired dictionary with the resources a command must release.
type app struct {
	dict  *dictionary.Service
	gw    *gateway.Service
	kv    store.KV
	creds *gateway.Credentials
}

func (a *app) Close() error { return a.kv.Close() }

func openApp(ctx context.Context, logger *slog.Logger) (*app, error) {
	kv, err := newKV(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	creds := newCredentials()
	gw := gateway.NewService(
		newBackend(creds, logger),
		classifier.NewClassifier(logger),
		logger,
		gateway.Options{ThinkingBudget: cfg.Gemini.ThinkingBudget},
	)
	dict := dictionary.Open(ctx, gw, persist.NewSync(kv, logger), logger, dictionary.Options{
		Pipeline: search.NewPipeline(cfg.SearchTag()),
	})
	return &app{dict: dict, gw: gw, kv: kv, creds: creds}, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen]) + "..."
	}
	return s
}
