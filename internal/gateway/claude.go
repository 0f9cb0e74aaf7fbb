package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultClaudeModel serves both tiers unless a code model is configured.
const DefaultClaudeModel = "claude-haiku-4-5-20251001"

// ClaudeConfig configures the Claude backend.
type ClaudeConfig struct {
	Model     string
	CodeModel string
	// BaseURL overrides the Anthropic API endpoint, mainly for tests.
	BaseURL    string
	MaxRetries int
}

// ClaudeBackend calls the Anthropic Messages API. Claude has no response
// schema parameter, so the schema travels in the system prompt.
type ClaudeBackend struct {
	cfg    ClaudeConfig
	creds  CredentialSource
	logger *slog.Logger
}

// NewClaudeBackend creates a Claude backend.
func NewClaudeBackend(cfg ClaudeConfig, creds CredentialSource, logger *slog.Logger) *ClaudeBackend {
	if cfg.Model == "" {
		cfg.Model = DefaultClaudeModel
	}
	if cfg.CodeModel == "" {
		cfg.CodeModel = cfg.Model
	}
	return &ClaudeBackend{cfg: cfg, creds: creds, logger: logger}
}

func (c *ClaudeBackend) Name() string { return "claude" }

func (c *ClaudeBackend) Generate(ctx context.Context, req Request) (string, error) {
	key, err := c.creds.APIKey()
	if err != nil {
		return "", CredentialFailure(0, err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(key),
		option.WithMaxRetries(c.cfg.MaxRetries),
	}
	if c.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	system, err := claudeSystemPrompt(req)
	if err != nil {
		return "", ParseFailure(err)
	}

	model := c.cfg.Model
	if req.Tier == TierPro {
		model = c.cfg.CodeModel
	}
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		System: []anthropic.TextBlockParam{{Text: system}},
	}
	if req.ThinkingBudget > 0 {
		params.Thinking = anthropic.ThinkingConfigParamOfEnabled(int64(req.ThinkingBudget))
		params.MaxTokens = maxTokens + int64(req.ThinkingBudget)
	}

	resp, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", classifyClaude(err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", ParseFailure(errors.New("empty response from claude"))
	}
	c.logger.Debug("claude response", "model", model, "bytes", len(text))
	return text, nil
}

func claudeSystemPrompt(req Request) (string, error) {
	if req.Schema == nil {
		return req.System, nil
	}
	schema, err := json.Marshal(req.Schema)
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	return fmt.Sprintf("%s\nRespond with a single JSON object matching this JSON Schema:\n%s", req.System, schema), nil
}

func classifyClaude(err error) *LookupFailure {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return RejectionFromStatus(apiErr.StatusCode, true, err)
	}
	if isTransportError(err) {
		return NetworkFailure(err)
	}
	return RejectionFromStatus(0, true, err)
}
