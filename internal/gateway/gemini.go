package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// Default Gemini models.
const (
	DefaultGeminiModel     = "gemini-3-flash-preview"
	DefaultGeminiCodeModel = "gemini-3-pro-preview"
)

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	Model     string
	CodeModel string
	// BaseURL overrides the Gemini API endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiBackend calls the Gemini API with a JSON response schema.
type GeminiBackend struct {
	cfg    GeminiConfig
	creds  CredentialSource
	logger *slog.Logger
}

// NewGeminiBackend creates a Gemini backend. A client is built per call so a
// key replaced through creds takes effect on the next request.
func NewGeminiBackend(cfg GeminiConfig, creds CredentialSource, logger *slog.Logger) *GeminiBackend {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.CodeModel == "" {
		cfg.CodeModel = DefaultGeminiCodeModel
	}
	return &GeminiBackend{cfg: cfg, creds: creds, logger: logger}
}

func (g *GeminiBackend) Name() string { return "gemini" }

func (g *GeminiBackend) model(t Tier) string {
	if t == TierPro {
		return g.cfg.CodeModel
	}
	return g.cfg.Model
}

func (g *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	key, err := g.creds.APIKey()
	if err != nil {
		return "", CredentialFailure(0, err)
	}

	cc := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.cfg.HTTPClient,
	}
	if g.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", classifyGeminiClient(fmt.Errorf("creating gemini client: %w", err))
	}

	gc := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(req.Schema),
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.ThinkingBudget > 0 {
		gc.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(req.ThinkingBudget))}
	}

	model := g.model(req.Tier)
	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), gc)
	if err != nil {
		return "", classifyGemini(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ParseFailure(errors.New("empty response from gemini"))
	}
	g.logger.Debug("gemini response", "model", model, "bytes", len(text))
	return text, nil
}

func classifyGemini(err error) *LookupFailure {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return RejectionFromStatus(apiErr.Code, true, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return RejectionFromStatus(apiErrPtr.Code, true, err)
	}
	// The API reports an unknown model or key project as this message.
	if strings.Contains(err.Error(), "Requested entity was not found") {
		return CredentialFailure(http.StatusNotFound, err)
	}
	if isTransportError(err) {
		return NetworkFailure(err)
	}
	return RejectionFromStatus(0, true, err)
}

// classifyGeminiClient maps a client construction error. Only key problems
// ask for a different key; other configuration errors are plain rejections.
func classifyGeminiClient(err error) *LookupFailure {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "api key") || strings.Contains(msg, "apikey") || strings.Contains(msg, "credential") {
		return CredentialFailure(0, err)
	}
	return RejectionFromStatus(0, false, err)
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:     genaiType(s.Type),
		Required: s.Required,
		Enum:     s.Enum,
		Items:    toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenaiSchema(p)
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeInteger:
		return genai.TypeInteger
	default:
		return genai.TypeString
	}
}
