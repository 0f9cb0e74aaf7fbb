package gateway

import (
	"fmt"
	"strings"

	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/pkg/xmlutil"
)

const jsonOnlySystem = "You are a precise technical assistant. Output only valid JSON matching the requested schema."

const lookupPromptTemplate = `You are a Senior Technical Architect. Explain the technical term inside the <term> tags.
Return the English technical name, the Arabic term, an Arabic definition (simple yet professional) and a professional real-world analogy as the example.
Ensure the category is one of: %s.

%s`

const translatePromptTemplate = `Translate the following technical Arabic description into technical English.

%s
%s
%s`

const codePromptTemplate = `Role: Senior Software Engineer / Solutions Architect.
Context: %s.
Goal: %s

%s

Response Requirements:
1. Write the 'explanation' and 'detectedErrors' in professional technical Arabic.
2. Ensure the code follows industry best practices.
3. Provide a list of 'improvements' for future scalability.`

var modeInstructions = map[models.DevMode]string{
	models.ModeGenerate: "Generate clean, production-ready code based on the prompt.",
	models.ModeFix:      "Identify and fix logical or syntax errors in the provided snippet.",
	models.ModeOptimize: "Refactor the code for maximum performance and readability.",
	models.ModeReview:   "Perform a security and performance audit on the code. Provide actionable feedback as reviewFeedbacks, each with a line number, a comment and a type of security, performance or style.",
	models.ModeEvolve:   "Provide code evolution in 3 distinct stages: Basic (MVP), Optimized (Fast/Efficient), and Enterprise (Scalable/Secure).",
}

func categoryLabels() string {
	labels := make([]string, 0, len(models.ValidCategories))
	for _, c := range models.ValidCategories {
		labels = append(labels, c.Label())
	}
	return strings.Join(labels, "، ")
}

func buildLookupPrompt(query string) string {
	return fmt.Sprintf(lookupPromptTemplate, categoryLabels(), xmlutil.Section("term", query))
}

func buildTranslatePrompt(term, definition, example string) string {
	return fmt.Sprintf(translatePromptTemplate,
		xmlutil.Section("term", term),
		xmlutil.Section("definition", definition),
		xmlutil.Section("example", example),
	)
}

func buildCodePrompt(req models.CodeRequest) string {
	return fmt.Sprintf(codePromptTemplate,
		codeContext(req.Language, req.Framework),
		modeInstructions[req.Mode],
		xmlutil.Section("input", req.Prompt),
	)
}

func codeContext(language, framework string) string {
	var parts []string
	if isAutoLanguage(language) {
		parts = append(parts, "Detect the language from the input")
	} else {
		parts = append(parts, "Language is "+strings.TrimSpace(language))
	}
	if fw := strings.TrimSpace(framework); fw != "" && !strings.EqualFold(fw, "none") {
		parts = append(parts, "Framework is "+fw)
	}
	return strings.Join(parts, ", ")
}

func isAutoLanguage(language string) bool {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "auto", "تلقائي":
		return true
	}
	return false
}

// --- response schemas ---

func str() *Schema { return &Schema{Type: TypeString} }

func lookupSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"arabicTerm": str(),
			"definition": str(),
			"example":    str(),
			"category":   str(),
		},
		Required: []string{"arabicTerm", "definition", "example", "category"},
	}
}

func translateSchema() *Schema {
	return &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"enDefinition": str(),
			"enExample":    str(),
		},
		Required: []string{"enDefinition", "enExample"},
	}
}

func codeSchema(mode models.DevMode) *Schema {
	s := &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"code":           str(),
			"explanation":    str(),
			"detectedErrors": str(),
			"improvements":   {Type: TypeArray, Items: str()},
		},
		Required: []string{"code", "explanation"},
	}
	switch mode {
	case models.ModeEvolve:
		s.Properties["evolution"] = &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"basic":      str(),
				"optimized":  str(),
				"enterprise": str(),
			},
			Required: []string{"basic", "optimized", "enterprise"},
		}
		s.Required = append(s.Required, "evolution")
	case models.ModeReview:
		kinds := make([]string, 0, len(models.ValidFeedbackKinds))
		for _, k := range models.ValidFeedbackKinds {
			kinds = append(kinds, string(k))
		}
		s.Properties["reviewFeedbacks"] = &Schema{
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: map[string]*Schema{
					"line":    {Type: TypeInteger},
					"comment": str(),
					"type":    {Type: TypeString, Enum: kinds},
				},
				Required: []string{"line", "comment", "type"},
			},
		}
	}
	return s
}
