package gateway

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/techlingo/internal/classifier"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/pkg/tokenizer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(responses ...FakeResponse) (*Service, *FakeBackend) {
	fb := NewFakeBackend(responses...)
	n := 0
	svc := NewService(fb, classifier.NewClassifier(testLogger()), testLogger(), Options{
		NewID: func() string {
			n++
			return GeneratedIDPrefix + strings.Repeat("x", n)
		},
	})
	return svc, fb
}

const lookupJSON = `{"arabicTerm":"بلوك تشين","definition":"سجل موزع","example":"دفتر حسابات مشترك","category":"برمجة"}`

func TestLookupTerm_BuildsGeneratedTerm(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: lookupJSON})

	term, err := svc.LookupTerm(context.Background(), "  Blockchain ")
	require.NoError(t, err)
	assert.Equal(t, "ai-x", term.ID)
	assert.Equal(t, "Blockchain", term.Name)
	assert.Equal(t, "بلوك تشين", term.LocalName)
	assert.Equal(t, "سجل موزع", term.Definition)
	assert.Equal(t, "دفتر حسابات مشترك", term.Example)
	assert.Equal(t, models.CategoryProgramming, term.Category)
	assert.True(t, term.IsGenerated)

	reqs := fb.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, TierFast, reqs[0].Tier)
	assert.Contains(t, reqs[0].Prompt, "<term>Blockchain</term>")
	assert.ElementsMatch(t, []string{"arabicTerm", "definition", "example", "category"}, reqs[0].Schema.Required)
}

func TestLookupTerm_ShortNamesUpperCased(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"gpu", "GPU"},
		{"devops", "devops"},
		{"  k8s  ", "K8S"},
		{"vpn12", "VPN12"},
		{"Docker", "Docker"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			svc, _ := newTestService(FakeResponse{Text: lookupJSON})
			term, err := svc.LookupTerm(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, term.Name)
		})
	}
}

func TestLookupTerm_EmptyQueryIsNoOp(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: lookupJSON})
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.LookupTerm(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
	assert.Equal(t, 0, fb.Calls())
}

func TestLookupTerm_UnknownCategoryFallsBack(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Text: `{"arabicTerm":"كم","definition":"حوسبة كمية","example":"","category":"Quantum"}`})
	term, err := svc.LookupTerm(context.Background(), "Quantum computing")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, term.Category)
}

func TestLookupTerm_AcceptsLocalNameAndFences(t *testing.T) {
	raw := "```json\n{\"localName\":\"سحابة\",\"definition\":\"خوادم بعيدة\",\"example\":\"مثال\",\"category\":\"cloud\"}\n```"
	svc, _ := newTestService(FakeResponse{Text: raw})
	term, err := svc.LookupTerm(context.Background(), "Cloud")
	require.NoError(t, err)
	assert.Equal(t, "سحابة", term.LocalName)
	assert.Equal(t, models.CategoryCloud, term.Category)
}

func TestLookupTerm_ParseFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I cannot help with that"},
		{"empty", "   "},
		{"missing local name", `{"definition":"d","example":"e","category":"عام"}`},
		{"missing definition", `{"arabicTerm":"a","example":"e","category":"عام"}`},
		{"wrong type", `{"arabicTerm":5,"definition":"d"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(FakeResponse{Text: tt.raw})
			_, err := svc.LookupTerm(context.Background(), "Serverless")
			require.Error(t, err)
			f, ok := AsFailure(err)
			require.True(t, ok)
			assert.Equal(t, KindParse, f.Kind)
			assert.False(t, f.Retryable)
		})
	}
}

func TestLookupTerm_BackendFailurePassesThrough(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Err: CredentialFailure(403, errors.New("denied"))})
	_, err := svc.LookupTerm(context.Background(), "Serverless")
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindServiceRejection, f.Kind)
	assert.True(t, f.ReselectCredentials)
}

func TestLookupTerm_UnclassifiedErrorIsClassified(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Err: context.DeadlineExceeded})
	_, err := svc.LookupTerm(context.Background(), "Serverless")
	assert.True(t, IsKind(err, KindNetwork))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTranslate(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: `{"enDefinition":"A distributed ledger.","enExample":"A shared notebook."}`})
	tr, err := svc.Translate(context.Background(), "Blockchain", "سجل موزع", "دفتر")
	require.NoError(t, err)
	assert.Equal(t, "A distributed ledger.", tr.EnDefinition)
	assert.Equal(t, "A shared notebook.", tr.EnExample)

	prompt := fb.Requests()[0].Prompt
	assert.Contains(t, prompt, "<definition>سجل موزع</definition>")
	assert.Contains(t, prompt, "<example>دفتر</example>")
}

func TestTranslate_NetworkFailureMessage(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Err: NetworkFailure(errors.New("connection refused"))})
	_, err := svc.Translate(context.Background(), "Firewall", "جدار", "مثال")

	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, f.Kind)
	assert.True(t, f.Retryable)
	assert.Equal(t, "فشل في استرداد الترجمة الإنجليزية.", f.LocalMessage)
	assert.Contains(t, f.Message, "translation")
}

func TestLookupTerm_NetworkFailureMessage(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Err: NetworkFailure(errors.New("connection refused"))})
	_, err := svc.LookupTerm(context.Background(), "Firewall")

	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, "فشل الوصول للموسوعة العالمية. يرجى التأكد من اتصال الإنترنت.", f.LocalMessage)
}

func TestTranslate_MissingFieldIsParseFailure(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Text: `{"enDefinition":"only this"}`})
	_, err := svc.Translate(context.Background(), "X", "d", "e")
	assert.True(t, IsKind(err, KindParse))
}

func TestProcessCode_Generate(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: `{"code":"fmt.Println(1)","explanation":"شرح","improvements":["tests"]}`})
	art, err := svc.ProcessCode(context.Background(), models.CodeRequest{
		Prompt:    "print one",
		Mode:      models.ModeGenerate,
		Language:  "Go",
		Framework: "None",
	})
	require.NoError(t, err)
	assert.Equal(t, "fmt.Println(1)", art.Code)
	assert.Equal(t, []string{"tests"}, art.Improvements)
	assert.Nil(t, art.Evolution)

	req := fb.Requests()[0]
	assert.Equal(t, TierPro, req.Tier)
	assert.Equal(t, DefaultThinkingBudget, req.ThinkingBudget)
	assert.Contains(t, req.Prompt, "Language is Go")
	assert.NotContains(t, req.Prompt, "Framework")
}

func TestProcessCode_AutoLanguage(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: `{"code":"","explanation":"شرح"}`})
	_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "x", Mode: models.ModeFix, Language: "تلقائي", Framework: "React"})
	require.NoError(t, err)
	prompt := fb.Requests()[0].Prompt
	assert.Contains(t, prompt, "Detect the language")
	assert.Contains(t, prompt, "Framework is React")
}

func TestProcessCode_EvolveRequiresAllVariants(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: `{"code":"a","explanation":"b","evolution":{"basic":"1","optimized":"2","enterprise":"3"}}`})
	art, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "queue", Mode: models.ModeEvolve})
	require.NoError(t, err)
	require.NotNil(t, art.Evolution)
	assert.Equal(t, "3", art.Evolution.Enterprise)
	assert.Contains(t, fb.Requests()[0].Schema.Required, "evolution")

	for _, raw := range []string{
		`{"code":"a","explanation":"b"}`,
		`{"code":"a","explanation":"b","evolution":{"basic":"1","optimized":"2"}}`,
	} {
		svc, _ := newTestService(FakeResponse{Text: raw})
		_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "queue", Mode: models.ModeEvolve})
		assert.True(t, IsKind(err, KindParse), raw)
	}
}

func TestProcessCode_ReviewFeedback(t *testing.T) {
	svc, _ := newTestService(FakeResponse{Text: `{"code":"x","explanation":"y","reviewFeedbacks":[{"line":3,"comment":"SQL injection","type":"Security"},{"line":9,"comment":"naming","type":"style"}]}`})
	art, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "db.Query(input)", Mode: models.ModeReview})
	require.NoError(t, err)
	require.Len(t, art.ReviewFeedbacks, 2)
	assert.Equal(t, models.FeedbackSecurity, art.ReviewFeedbacks[0].Type)
	assert.Equal(t, 3, art.ReviewFeedbacks[0].Line)

	svc, _ = newTestService(FakeResponse{Text: `{"code":"x","explanation":"y","reviewFeedbacks":[{"line":1,"comment":"c","type":"vibes"}]}`})
	_, err = svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "x", Mode: models.ModeReview})
	assert.True(t, IsKind(err, KindParse))
}

func TestProcessCode_MissingRequiredFields(t *testing.T) {
	for _, raw := range []string{`{"explanation":"y"}`, `{"code":"x"}`, `{"code":"x","explanation":""}`} {
		svc, _ := newTestService(FakeResponse{Text: raw})
		_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "x", Mode: models.ModeOptimize})
		assert.True(t, IsKind(err, KindParse), raw)
	}
}

func TestProcessCode_InvalidInput(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: `{}`})
	_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "x", Mode: "refactor"})
	require.Error(t, err)
	_, isFailure := AsFailure(err)
	assert.False(t, isFailure)

	_, err = svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: " ", Mode: models.ModeFix})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, 0, fb.Calls())
}

func TestProcessCode_DefaultsToGenerate(t *testing.T) {
	svc, fb := newTestService(FakeResponse{Text: `{"code":"x","explanation":"y"}`})
	_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "hello"})
	require.NoError(t, err)
	assert.Contains(t, fb.Requests()[0].Prompt, modeInstructions[models.ModeGenerate])
}

func TestProcessCode_TruncatesOversizedInput(t *testing.T) {
	fb := NewFakeBackend(FakeResponse{Text: `{"code":"x","explanation":"y"}`})
	svc := NewService(fb, classifier.NewClassifier(testLogger()), testLogger(), Options{MaxCodeTokens: 10})

	prompt := strings.Repeat("line ", 500) + "TAILMARKER"
	_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: prompt, Mode: models.ModeFix})
	require.NoError(t, err)

	sent := fb.Requests()[0].Prompt
	assert.Contains(t, sent, "line line")
	assert.NotContains(t, sent, "TAILMARKER")
}

func TestProcessCode_TruncatesShortWordInput(t *testing.T) {
	const budget = 100
	fb := NewFakeBackend(FakeResponse{Text: `{"code":"x","explanation":"y"}`})
	svc := NewService(fb, classifier.NewClassifier(testLogger()), testLogger(), Options{MaxCodeTokens: budget})

	// Few runes per word: the rune count alone is under budget*4.
	prompt := strings.Repeat("a ", 300)
	require.Greater(t, tokenizer.EstimateTokens(prompt), budget)

	_, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: prompt, Mode: models.ModeReview})
	require.NoError(t, err)

	sent := fb.Requests()[0].Prompt
	start := strings.Index(sent, "<input>")
	end := strings.Index(sent, "</input>")
	require.True(t, start >= 0 && end > start, "prompt has an input section")
	input := sent[start+len("<input>") : end]

	assert.Less(t, len(input), len(prompt))
	assert.LessOrEqual(t, tokenizer.EstimateTokens(input), budget)
	assert.True(t, strings.HasSuffix(input, "..."))
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("  {\"a\":1}  "))
}
