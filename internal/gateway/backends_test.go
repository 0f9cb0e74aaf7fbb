package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/ajitpratap0/techlingo/internal/classifier"
	"github.com/ajitpratap0/techlingo/internal/models"
)

// --- ollama ---

func TestOllamaBackend_Generate(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: lookupJSON},
			Done:    true,
		})
	}))
	defer srv.Close()

	b := NewOllamaBackend(OllamaConfig{BaseURL: srv.URL + "/", CodeModel: "codellama"}, testLogger())
	out, err := b.Generate(context.Background(), Request{System: "sys", Prompt: "hi", Schema: lookupSchema(), Tier: TierFast})
	require.NoError(t, err)
	assert.Equal(t, lookupJSON, out)

	assert.Equal(t, DefaultOllamaModel, got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hi", got.Messages[1].Content)
	require.NotNil(t, got.Format)
	assert.Equal(t, TypeObject, got.Format.Type)

	_, err = b.Generate(context.Background(), Request{Prompt: "code", Tier: TierPro})
	require.NoError(t, err)
	assert.Equal(t, "codellama", got.Model)
}

func TestOllamaBackend_StatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"model \"llama3\" not found, try pulling it first"}`)
	}))
	defer srv.Close()

	b := NewOllamaBackend(OllamaConfig{BaseURL: srv.URL}, testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindServiceRejection, f.Kind)
	assert.False(t, f.ReselectCredentials)
	assert.Contains(t, f.Error(), "not found")
}

func TestOllamaBackend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	b := NewOllamaBackend(OllamaConfig{BaseURL: url}, testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, f.Kind)
	assert.True(t, f.Retryable)
}

func TestOllamaBackend_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":`)
	}))
	defer srv.Close()

	b := NewOllamaBackend(OllamaConfig{BaseURL: srv.URL}, testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	assert.True(t, IsKind(err, KindParse))
}

// --- claude ---

func claudeServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/v1/messages"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func TestClaudeBackend_Generate(t *testing.T) {
	reply, err := json.Marshal(lookupJSON)
	require.NoError(t, err)
	srv := claudeServer(t, http.StatusOK, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-haiku-4-5-20251001",
		"content":[{"type":"text","text":`+string(reply)+`}],
		"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":20}}`)
	defer srv.Close()

	b := NewClaudeBackend(ClaudeConfig{BaseURL: srv.URL}, NewCredentials("test-key"), testLogger())
	out, err := b.Generate(context.Background(), Request{System: jsonOnlySystem, Prompt: "hi", Schema: lookupSchema()})
	require.NoError(t, err)
	assert.Equal(t, lookupJSON, out)
}

func TestClaudeBackend_Unauthorized(t *testing.T) {
	srv := claudeServer(t, http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
	defer srv.Close()

	b := NewClaudeBackend(ClaudeConfig{BaseURL: srv.URL}, NewCredentials("test-key"), testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindServiceRejection, f.Kind)
	assert.True(t, f.ReselectCredentials)
	assert.Equal(t, http.StatusUnauthorized, f.StatusCode)
}

func TestClaudeBackend_Overloaded(t *testing.T) {
	srv := claudeServer(t, http.StatusServiceUnavailable, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`)
	defer srv.Close()

	b := NewClaudeBackend(ClaudeConfig{BaseURL: srv.URL}, NewCredentials("test-key"), testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.True(t, f.Retryable)
}

func TestClaudeBackend_MissingKey(t *testing.T) {
	b := NewClaudeBackend(ClaudeConfig{}, NewCredentials(""), testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.True(t, f.ReselectCredentials)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestClaudeSystemPrompt_EmbedsSchema(t *testing.T) {
	s, err := claudeSystemPrompt(Request{System: "base", Schema: translateSchema()})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "base\n"))
	assert.Contains(t, s, `"enDefinition"`)
}

// --- gemini ---

func TestGeminiBackend_MissingKey(t *testing.T) {
	b := NewGeminiBackend(GeminiConfig{}, NewCredentials(""), testLogger())
	_, err := b.Generate(context.Background(), Request{Prompt: "hi"})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindServiceRejection, f.Kind)
	assert.True(t, f.ReselectCredentials)
}

// geminiServer answers generateContent calls with status and body, recording
// the request path and decoded body.
func geminiServer(t *testing.T, status int, body string) (*httptest.Server, *string, *map[string]any) {
	t.Helper()
	var path string
	got := map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &path, &got
}

func geminiText(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
		}},
	})
	return string(b)
}

func TestGeminiBackend_GenerateCode(t *testing.T) {
	srv, path, got := geminiServer(t, http.StatusOK, geminiText(`{"code":"fmt.Println(1)","explanation":"شرح"}`))
	b := NewGeminiBackend(GeminiConfig{BaseURL: srv.URL}, NewCredentials("test-key"), testLogger())
	svc := NewService(b, classifier.NewClassifier(testLogger()), testLogger(), Options{})

	art, err := svc.ProcessCode(context.Background(), models.CodeRequest{Prompt: "print one", Language: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "fmt.Println(1)", art.Code)

	assert.Equal(t, "/v1beta/models/"+DefaultGeminiCodeModel+":generateContent", *path)
	gen, ok := (*got)["generationConfig"].(map[string]any)
	require.True(t, ok, "request carries a generationConfig")
	assert.Equal(t, "application/json", gen["responseMimeType"])
	schema, ok := gen["responseSchema"].(map[string]any)
	require.True(t, ok, "request carries a responseSchema")
	assert.ElementsMatch(t, []any{"code", "explanation"}, schema["required"])
	thinking, ok := gen["thinkingConfig"].(map[string]any)
	require.True(t, ok, "request carries a thinkingConfig")
	assert.EqualValues(t, DefaultThinkingBudget, thinking["thinkingBudget"])
}

func TestGeminiBackend_GenerateLookupUsesFastModel(t *testing.T) {
	srv, path, got := geminiServer(t, http.StatusOK, geminiText(lookupJSON))
	b := NewGeminiBackend(GeminiConfig{BaseURL: srv.URL}, NewCredentials("test-key"), testLogger())

	raw, err := b.Generate(context.Background(), Request{Prompt: "hi", Schema: lookupSchema(), Tier: TierFast})
	require.NoError(t, err)
	assert.JSONEq(t, lookupJSON, raw)
	assert.Equal(t, "/v1beta/models/"+DefaultGeminiModel+":generateContent", *path)
	gen, _ := (*got)["generationConfig"].(map[string]any)
	assert.NotContains(t, gen, "thinkingConfig")
}

func TestGeminiBackend_ForbiddenReselectsKey(t *testing.T) {
	srv, _, _ := geminiServer(t, http.StatusForbidden, `{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`)
	b := NewGeminiBackend(GeminiConfig{BaseURL: srv.URL}, NewCredentials("test-key"), testLogger())

	_, err := b.Generate(context.Background(), Request{Prompt: "hi", Schema: lookupSchema()})
	f, ok := AsFailure(err)
	require.True(t, ok)
	assert.Equal(t, KindServiceRejection, f.Kind)
	assert.True(t, f.ReselectCredentials)
	assert.Equal(t, http.StatusForbidden, f.StatusCode)
}

func TestClassifyGeminiClient(t *testing.T) {
	f := classifyGeminiClient(errors.New("creating gemini client: api key is required for Google AI backend"))
	assert.True(t, f.ReselectCredentials)

	f = classifyGeminiClient(errors.New("creating gemini client: invalid HTTPOptions.BaseURL"))
	assert.Equal(t, KindServiceRejection, f.Kind)
	assert.False(t, f.ReselectCredentials)
	assert.False(t, f.Retryable)
}

func TestGeminiBackend_ModelPerTier(t *testing.T) {
	b := NewGeminiBackend(GeminiConfig{}, NewCredentials("k"), testLogger())
	assert.Equal(t, DefaultGeminiModel, b.model(TierFast))
	assert.Equal(t, DefaultGeminiCodeModel, b.model(TierPro))
}

func TestClassifyGemini(t *testing.T) {
	f := classifyGemini(genai.APIError{Code: 403, Message: "denied", Status: "PERMISSION_DENIED"})
	assert.True(t, f.ReselectCredentials)

	f = classifyGemini(genai.APIError{Code: 429, Message: "quota", Status: "RESOURCE_EXHAUSTED"})
	assert.True(t, f.Retryable)

	f = classifyGemini(&genai.APIError{Code: 500, Message: "internal"})
	assert.True(t, f.Retryable)

	f = classifyGemini(context.DeadlineExceeded)
	assert.Equal(t, KindNetwork, f.Kind)
}

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(codeSchema("review"))
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.ElementsMatch(t, []string{"code", "explanation"}, s.Required)
	require.Contains(t, s.Properties, "improvements")
	assert.Equal(t, genai.TypeArray, s.Properties["improvements"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["improvements"].Items.Type)

	fb := s.Properties["reviewFeedbacks"].Items
	assert.Equal(t, genai.TypeInteger, fb.Properties["line"].Type)
	assert.Equal(t, []string{"security", "performance", "style"}, fb.Properties["type"].Enum)

	assert.Nil(t, toGenaiSchema(nil))
}
