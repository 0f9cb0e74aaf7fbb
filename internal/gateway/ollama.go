package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Ollama defaults.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama3"
	ollamaHTTPTimeout  = 120 * time.Second
)

// OllamaConfig configures the Ollama backend.
type OllamaConfig struct {
	BaseURL   string
	Model     string
	CodeModel string
}

// OllamaBackend calls a local Ollama server. It needs no credentials.
type OllamaBackend struct {
	cfg    OllamaConfig
	client *http.Client
	logger *slog.Logger
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   *Schema         `json:"format,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

// NewOllamaBackend creates an Ollama backend.
func NewOllamaBackend(cfg OllamaConfig, logger *slog.Logger) *OllamaBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOllamaURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	if cfg.CodeModel == "" {
		cfg.CodeModel = cfg.Model
	}
	return &OllamaBackend{
		cfg:    cfg,
		client: &http.Client{Timeout: ollamaHTTPTimeout},
		logger: logger,
	}
}

func (o *OllamaBackend) Name() string { return "ollama" }

func (o *OllamaBackend) Generate(ctx context.Context, req Request) (string, error) {
	model := o.cfg.Model
	if req.Tier == TierPro {
		model = o.cfg.CodeModel
	}

	body := ollamaChatRequest{
		Model:  model,
		Stream: false,
		Format: req.Schema,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, ollamaMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, ollamaMessage{Role: "user", Content: req.Prompt})

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return "", ParseFailure(fmt.Errorf("marshalling request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/api/chat", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", NetworkFailure(fmt.Errorf("creating request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", NetworkFailure(fmt.Errorf("calling Ollama API: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(raw))
		var e ollamaErrorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return "", RejectionFromStatus(resp.StatusCode, false, fmt.Errorf("ollama API returned %d: %s", resp.StatusCode, msg))
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", ParseFailure(fmt.Errorf("decoding response: %w", err))
	}
	if strings.TrimSpace(result.Message.Content) == "" {
		return "", ParseFailure(errors.New("ollama returned empty content"))
	}

	o.logger.Debug("ollama response", "model", model, "bytes", len(result.Message.Content))
	return result.Message.Content, nil
}
