package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ajitpratap0/techlingo/internal/models"
)

// cleanJSON strips a markdown code fence around a JSON payload, if present.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string, e.g. ```json.
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decode(raw string, v any) error {
	s := cleanJSON(raw)
	if s == "" {
		return errors.New("empty response")
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

type lookupPayload struct {
	ArabicTerm string `json:"arabicTerm"`
	LocalName  string `json:"localName"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Category   string `json:"category"`
}

func (p lookupPayload) localName() string {
	if s := strings.TrimSpace(p.ArabicTerm); s != "" {
		return s
	}
	return strings.TrimSpace(p.LocalName)
}

func (p lookupPayload) validate() error {
	if p.localName() == "" {
		return errors.New("missing arabicTerm")
	}
	if strings.TrimSpace(p.Definition) == "" {
		return errors.New("missing definition")
	}
	return nil
}

type translatePayload struct {
	EnDefinition string `json:"enDefinition"`
	EnExample    string `json:"enExample"`
}

func (p translatePayload) validate() error {
	if strings.TrimSpace(p.EnDefinition) == "" {
		return errors.New("missing enDefinition")
	}
	if strings.TrimSpace(p.EnExample) == "" {
		return errors.New("missing enExample")
	}
	return nil
}

type codePayload struct {
	Code            *string           `json:"code"`
	Explanation     *string           `json:"explanation"`
	DetectedErrors  string            `json:"detectedErrors"`
	Improvements    []string          `json:"improvements"`
	Evolution       *models.Evolution `json:"evolution"`
	ReviewFeedbacks []feedbackPayload `json:"reviewFeedbacks"`
}

type feedbackPayload struct {
	Line    int    `json:"line"`
	Comment string `json:"comment"`
	Type    string `json:"type"`
}

// artifact validates the payload for mode and converts it.
func (p codePayload) artifact(mode models.DevMode) (models.CodeArtifact, error) {
	if p.Code == nil {
		return models.CodeArtifact{}, errors.New("missing code")
	}
	if p.Explanation == nil || strings.TrimSpace(*p.Explanation) == "" {
		return models.CodeArtifact{}, errors.New("missing explanation")
	}
	out := models.CodeArtifact{
		Code:           *p.Code,
		Explanation:    *p.Explanation,
		DetectedErrors: p.DetectedErrors,
		Improvements:   p.Improvements,
	}

	if mode == models.ModeEvolve {
		e := p.Evolution
		if e == nil {
			return models.CodeArtifact{}, errors.New("missing evolution")
		}
		if e.Basic == "" || e.Optimized == "" || e.Enterprise == "" {
			return models.CodeArtifact{}, errors.New("evolution must carry basic, optimized and enterprise variants")
		}
		out.Evolution = e
	}

	if mode == models.ModeReview {
		for i, f := range p.ReviewFeedbacks {
			kind := models.FeedbackKind(strings.ToLower(strings.TrimSpace(f.Type)))
			if !kind.IsValid() {
				return models.CodeArtifact{}, fmt.Errorf("review feedback %d: unknown type %q", i, f.Type)
			}
			if strings.TrimSpace(f.Comment) == "" {
				return models.CodeArtifact{}, fmt.Errorf("review feedback %d: missing comment", i)
			}
			out.ReviewFeedbacks = append(out.ReviewFeedbacks, models.ReviewFeedback{
				Line:    f.Line,
				Comment: f.Comment,
				Type:    kind,
			})
		}
	}
	return out, nil
}
