package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Providers names the supported AI backends.
var Providers = []string{"gemini", "claude", "ollama"}

const (
	// DefaultThinkingBudget is the reasoning budget for developer lab requests.
	DefaultThinkingBudget = 16000

	// DefaultSearchLanguage is the collation language for sorting term names.
	DefaultSearchLanguage = "en"
)

// Config holds all configuration for techlingo.
type Config struct {
	Provider string        `mapstructure:"provider"`
	Gemini   GeminiConfig  `mapstructure:"gemini"`
	Claude   ClaudeConfig  `mapstructure:"claude"`
	Ollama   OllamaConfig  `mapstructure:"ollama"`
	Storage  StorageConfig `mapstructure:"storage"`
	Search   SearchConfig  `mapstructure:"search"`
	Logging  LoggingConfig `mapstructure:"logging"`
	API      APIConfig     `mapstructure:"api"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	AuthToken  string `mapstructure:"auth_token"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	CodeModel      string `mapstructure:"code_model"`
	ThinkingBudget int    `mapstructure:"thinking_budget"`
	BaseURL        string `mapstructure:"base_url"`
}

// String returns a safe representation of GeminiConfig with the API key masked.
func (c GeminiConfig) String() string {
	return fmt.Sprintf("GeminiConfig{APIKey:%s, Model:%s, CodeModel:%s}", maskAPIKey(c.APIKey), c.Model, c.CodeModel)
}

// ClaudeConfig holds Anthropic Claude API settings.
type ClaudeConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	CodeModel  string `mapstructure:"code_model"`
	BaseURL    string `mapstructure:"base_url"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// String returns a safe representation of ClaudeConfig with the API key masked.
func (c ClaudeConfig) String() string {
	return fmt.Sprintf("ClaudeConfig{APIKey:%s, Model:%s}", maskAPIKey(c.APIKey), c.Model)
}

// maskAPIKey shows first 4 + last 4 chars, replacing the middle with asterisks.
func maskAPIKey(key string) string {
	const visible = 4
	if key == "" {
		return "<unset>"
	}
	if len(key) <= visible*2 {
		return "***"
	}
	return key[:visible] + "****" + key[len(key)-visible:]
}

// OllamaConfig holds local Ollama server settings.
type OllamaConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	CodeModel string `mapstructure:"code_model"`
}

// StorageConfig holds durable storage settings.
type StorageConfig struct {
	Path string `mapstructure:"path"`
	// Ephemeral keeps everything in memory; nothing survives a restart.
	Ephemeral bool `mapstructure:"ephemeral"`
}

// SearchConfig holds search pipeline settings.
type SearchConfig struct {
	Language string `mapstructure:"language"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the default config locations and
// environment variables.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from path, or from the default locations when
// path is empty. A missing default config file is not an error.
func LoadFile(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(homeDir(), ".techlingo"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is OK, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	// Defaults
	v.SetDefault("provider", "gemini")

	v.SetDefault("gemini.model", "gemini-3-flash-preview")
	v.SetDefault("gemini.code_model", "gemini-3-pro-preview")
	v.SetDefault("gemini.thinking_budget", DefaultThinkingBudget)
	v.SetDefault("gemini.base_url", "")

	v.SetDefault("claude.model", "claude-haiku-4-5-20251001")
	v.SetDefault("claude.code_model", "")
	v.SetDefault("claude.base_url", "")
	v.SetDefault("claude.max_retries", 2)

	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3")
	v.SetDefault("ollama.code_model", "")

	v.SetDefault("storage.path", filepath.Join(homeDir(), ".techlingo", "techlingo.db"))
	v.SetDefault("storage.ephemeral", false)

	v.SetDefault("search.language", DefaultSearchLanguage)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("api.listen_addr", ":8080")
	v.SetDefault("api.auth_token", "")

	// Environment variables: TECHLINGO_STORAGE_PATH -> storage.path
	v.SetEnvPrefix("TECHLINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider keys are also read from their conventional variables.
	_ = v.BindEnv("gemini.api_key", "TECHLINGO_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY")
	_ = v.BindEnv("claude.api_key", "TECHLINGO_CLAUDE_API_KEY", "ANTHROPIC_API_KEY")

	return v
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if !slices.Contains(Providers, c.Provider) {
		return fmt.Errorf("provider must be one of %s, got %q", strings.Join(Providers, ", "), c.Provider)
	}
	if c.Gemini.ThinkingBudget < 0 {
		return fmt.Errorf("gemini.thinking_budget must be >= 0")
	}
	if c.Claude.MaxRetries < 0 {
		return fmt.Errorf("claude.max_retries must be >= 0")
	}
	if c.Provider == "ollama" && c.Ollama.BaseURL == "" {
		return fmt.Errorf("ollama.base_url must not be empty")
	}
	if !c.Storage.Ephemeral && c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty unless storage.ephemeral is set")
	}
	if _, err := language.Parse(c.Search.Language); err != nil {
		return fmt.Errorf("search.language %q is not a valid BCP 47 tag: %w", c.Search.Language, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	return nil
}

// SearchTag returns the parsed collation language.
func (c *Config) SearchTag() language.Tag {
	tag, err := language.Parse(c.Search.Language)
	if err != nil {
		return language.English
	}
	return tag
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
