// Package gateway turns dictionary and developer lab requests into
// structured-output calls against a hosted model, and classifies every way
// such a call can fail.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ajitpratap0/techlingo/internal/classifier"
	"github.com/ajitpratap0/techlingo/internal/metrics"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/pkg/tokenizer"
)

// GeneratedIDPrefix prefixes the ID of every AI-generated term.
const GeneratedIDPrefix = "ai-"

// DefaultThinkingBudget is the reasoning budget for developer lab requests.
const DefaultThinkingBudget = 16000

// DefaultMaxCodeTokens caps the estimated size of a developer lab input.
const DefaultMaxCodeTokens = 24000

// shortNameRunes is the length at or below which a term name is treated as
// an acronym and upper-cased.
const shortNameRunes = 5

// Gateway is the AI lookup boundary. Every error other than ErrEmptyQuery
// and invalid-input errors is a *LookupFailure.
type Gateway interface {
	LookupTerm(ctx context.Context, query string) (models.Term, error)
	Translate(ctx context.Context, term, definition, example string) (models.Translation, error)
	ProcessCode(ctx context.Context, req models.CodeRequest) (models.CodeArtifact, error)
}

// Options tunes a Service.
type Options struct {
	ThinkingBudget int
	// MaxCodeTokens bounds the developer lab input; longer input is truncated.
	MaxCodeTokens int
	// NewID overrides identifier generation in tests.
	NewID func() string
}

// Service implements Gateway over a Backend.
type Service struct {
	backend        Backend
	classifier     classifier.Classifier
	thinkingBudget int
	maxCodeTokens  int
	newID          func() string
	logger         *slog.Logger
}

// NewService creates a gateway over backend.
func NewService(backend Backend, cls classifier.Classifier, logger *slog.Logger, opts Options) *Service {
	if opts.ThinkingBudget <= 0 {
		opts.ThinkingBudget = DefaultThinkingBudget
	}
	if opts.MaxCodeTokens <= 0 {
		opts.MaxCodeTokens = DefaultMaxCodeTokens
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return GeneratedIDPrefix + uuid.NewString() }
	}
	return &Service{
		backend:        backend,
		classifier:     cls,
		thinkingBudget: opts.ThinkingBudget,
		maxCodeTokens:  opts.MaxCodeTokens,
		newID:          opts.NewID,
		logger:         logger,
	}
}

// Backend returns the name of the backend in use.
func (s *Service) Backend() string { return s.backend.Name() }

// LookupTerm asks the model to define query and returns an unsaved,
// AI-generated term. A blank query returns ErrEmptyQuery without a call.
func (s *Service) LookupTerm(ctx context.Context, query string) (models.Term, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Term{}, ErrEmptyQuery
	}

	var p lookupPayload
	if err := s.call(ctx, "lookup", Request{
		System:    jsonOnlySystem,
		Prompt:    buildLookupPrompt(query),
		Schema:    lookupSchema(),
		Tier:      TierFast,
		MaxTokens: 2048,
	}, &p); err != nil {
		return models.Term{}, err
	}

	return models.Term{
		ID:          s.newID(),
		Name:        termName(query),
		LocalName:   p.localName(),
		Definition:  strings.TrimSpace(p.Definition),
		Example:     strings.TrimSpace(p.Example),
		Category:    s.classifier.Classify(p.Category),
		IsGenerated: true,
	}, nil
}

// Translate renders a term's Arabic definition and example in English.
func (s *Service) Translate(ctx context.Context, term, definition, example string) (models.Translation, error) {
	var p translatePayload
	if err := s.call(ctx, "translate", Request{
		System:    jsonOnlySystem,
		Prompt:    buildTranslatePrompt(term, definition, example),
		Schema:    translateSchema(),
		Tier:      TierFast,
		MaxTokens: 2048,
	}, &p); err != nil {
		return models.Translation{}, err
	}
	return models.Translation{
		EnDefinition: strings.TrimSpace(p.EnDefinition),
		EnExample:    strings.TrimSpace(p.EnExample),
	}, nil
}

// ProcessCode runs a developer lab request. It does not touch the dictionary.
func (s *Service) ProcessCode(ctx context.Context, req models.CodeRequest) (models.CodeArtifact, error) {
	if req.Mode == "" {
		req.Mode = models.ModeGenerate
	}
	if !req.Mode.IsValid() {
		return models.CodeArtifact{}, fmt.Errorf("invalid mode %q", req.Mode)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return models.CodeArtifact{}, ErrEmptyQuery
	}
	if n := tokenizer.EstimateTokens(req.Prompt); n > s.maxCodeTokens {
		s.logger.Warn("gateway: code input over budget, truncating", "estimated_tokens", n, "budget", s.maxCodeTokens)
		req.Prompt = tokenizer.TruncateToTokenBudget(req.Prompt, s.maxCodeTokens)
	}

	var p codePayload
	if err := s.call(ctx, "code", Request{
		System:         jsonOnlySystem,
		Prompt:         buildCodePrompt(req),
		Schema:         codeSchema(req.Mode),
		Tier:           TierPro,
		ThinkingBudget: s.thinkingBudget,
		MaxTokens:      8192,
	}, &p); err != nil {
		return models.CodeArtifact{}, err
	}

	art, err := p.artifact(req.Mode)
	if err != nil {
		return models.CodeArtifact{}, s.fail("code", ParseFailure(err))
	}
	return art, nil
}

// validator is implemented by payloads with required fields.
type validator interface {
	validate() error
}

// call runs req and decodes the answer into v, validating it when v is a
// validator.
func (s *Service) call(ctx context.Context, op string, req Request, v any) error {
	raw, err := s.backend.Generate(ctx, req)
	if err != nil {
		return s.fail(op, classifyUnknown(err))
	}
	if err := decode(raw, v); err != nil {
		return s.fail(op, ParseFailure(err))
	}
	if pv, ok := v.(validator); ok {
		if err := pv.validate(); err != nil {
			return s.fail(op, ParseFailure(err))
		}
	}
	return nil
}

// networkMessages replaces the Arabic network failure text for operations
// other than lookup.
var networkMessages = map[string]string{
	"translate": "فشل في استرداد الترجمة الإنجليزية.",
}

func (s *Service) fail(op string, f *LookupFailure) error {
	if msg, ok := networkMessages[op]; ok && f.Kind == KindNetwork {
		// Copy rather than mutate the backend's failure.
		local := *f
		local.Message = "could not retrieve the English translation; check your connection and try again"
		local.LocalMessage = msg
		f = &local
	}
	metrics.IncFailure(string(f.Kind))
	s.logger.Warn("ai request failed",
		"op", op,
		"backend", s.backend.Name(),
		"kind", f.Kind,
		"retryable", f.Retryable,
		"status", f.StatusCode,
		"error", f.Err,
	)
	return f
}

// termName applies the acronym rule: short names are upper-cased, longer
// ones are kept as typed.
func termName(query string) string {
	if utf8.RuneCountInString(query) <= shortNameRunes {
		return strings.ToUpper(query)
	}
	return query
}
