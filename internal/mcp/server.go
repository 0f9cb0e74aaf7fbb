// Package mcp implements the Model Context Protocol server for techlingo.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ajitpratap0/techlingo/internal/dictionary"
	"github.com/ajitpratap0/techlingo/internal/gateway"
	"github.com/ajitpratap0/techlingo/internal/models"
	"github.com/ajitpratap0/techlingo/internal/search"
)

// defaultSearchLimit is the default number of results for search_terms.
const defaultSearchLimit = 20

// Dictionary is the set of dictionary operations exposed as tools.
type Dictionary interface {
	Search(q search.Query) []models.Term
	IsFavorite(id string) bool
	Lookup(ctx context.Context, query string) (models.Term, bool, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) error
	Translate(ctx context.Context, id string) (models.Translation, error)
	ProcessCode(ctx context.Context, req models.CodeRequest) (models.CodeArtifact, error)
	Stats() models.DictionaryStats
}

// Server wraps an MCPServer with the techlingo dictionary.
type Server struct {
	mcp    *mcpserver.MCPServer
	dict   Dictionary
	logger *slog.Logger
}

// NewServer creates a new MCP server. If dict is nil, every tool call
// returns an error result instead of panicking.
func NewServer(dict Dictionary, logger *slog.Logger) *Server {
	s := &Server{
		dict:   dict,
		logger: logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"techlingo",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildSearchTool(), s.handleSearch)
	mcpSrv.AddTool(buildLookupTool(), s.handleLookup)
	mcpSrv.AddTool(buildToggleFavoriteTool(), s.handleToggleFavorite)
	mcpSrv.AddTool(buildForgetTool(), s.handleForget)
	mcpSrv.AddTool(buildTranslateTool(), s.handleTranslate)
	mcpSrv.AddTool(buildProcessCodeTool(), s.handleProcessCode)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleSearch is the exported handler for the "search_terms" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleSearch(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleSearch(ctx, req)
}

// HandleLookup is the exported handler for the "lookup_term" tool.
func (s *Server) HandleLookup(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleLookup(ctx, req)
}

// HandleToggleFavorite is the exported handler for the "toggle_favorite" tool.
func (s *Server) HandleToggleFavorite(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleToggleFavorite(ctx, req)
}

// HandleForget is the exported handler for the "forget_term" tool.
func (s *Server) HandleForget(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleForget(ctx, req)
}

// HandleTranslate is the exported handler for the "translate_term" tool.
func (s *Server) HandleTranslate(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleTranslate(ctx, req)
}

// HandleProcessCode is the exported handler for the "process_code" tool.
func (s *Server) HandleProcessCode(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleProcessCode(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// --- helpers ---

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// toolResultFailure renders a dictionary or gateway error as an error result.
func toolResultFailure(op string, err error) *mcpgo.CallToolResult {
	if f, ok := gateway.AsFailure(err); ok {
		hint := ""
		switch {
		case f.ReselectCredentials:
			hint = " (select a different API key)"
		case f.Retryable:
			hint = " (retry later)"
		}
		return mcpgo.NewToolResultErrorf("%s failed [%s]: %s%s", op, f.Kind, f.Message, hint)
	}
	switch {
	case errors.Is(err, dictionary.ErrNotFound):
		return mcpgo.NewToolResultErrorf("%s failed: term not found", op)
	case errors.Is(err, dictionary.ErrImmutable):
		return mcpgo.NewToolResultErrorf("%s failed: built-in terms cannot be removed", op)
	}
	return mcpgo.NewToolResultErrorf("%s failed: %s", op, err.Error())
}

func requireID(req mcpgo.CallToolRequest) (string, *mcpgo.CallToolResult) {
	id := strings.TrimSpace(req.GetString("id", ""))
	if id == "" {
		return "", mcpgo.NewToolResultError("id is required and must not be empty")
	}
	return id, nil
}

// --- tool definitions ---

func buildSearchTool() mcpgo.Tool {
	return mcpgo.NewTool("search_terms",
		mcpgo.WithDescription("Search the bilingual technical dictionary by English or Arabic name. Favorites come first, then terms sorted by name."),
		mcpgo.WithString("query",
			mcpgo.Description("Substring to match against the English or Arabic name (empty matches all)"),
		),
		mcpgo.WithString("category",
			mcpgo.Description("Category: general, programming, hardware, ai, networking, cloud, or all (default: all)"),
		),
		mcpgo.WithNumber("limit",
			mcpgo.Description("Maximum number of results (default: 20)"),
		),
	)
}

func buildLookupTool() mcpgo.Tool {
	return mcpgo.NewTool("lookup_term",
		mcpgo.WithDescription("Look up a technical term. Known terms are returned directly; unknown ones are defined in Arabic by the AI service and added to the dictionary."),
		mcpgo.WithString("query",
			mcpgo.Required(),
			mcpgo.Description("The technical term to look up"),
		),
	)
}

func buildToggleFavoriteTool() mcpgo.Tool {
	return mcpgo.NewTool("toggle_favorite",
		mcpgo.WithDescription("Mark or unmark a term as favorite."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The term ID"),
		),
	)
}

func buildForgetTool() mcpgo.Tool {
	return mcpgo.NewTool("forget_term",
		mcpgo.WithDescription("Delete an AI-generated term by ID. Built-in terms cannot be deleted."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The term ID"),
		),
	)
}

func buildTranslateTool() mcpgo.Tool {
	return mcpgo.NewTool("translate_term",
		mcpgo.WithDescription("Translate a term's Arabic definition and example into technical English."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("The term ID"),
		),
	)
}

func buildProcessCodeTool() mcpgo.Tool {
	return mcpgo.NewTool("process_code",
		mcpgo.WithDescription("Developer lab: generate, fix, optimize, review or evolve code with explanations in Arabic."),
		mcpgo.WithString("prompt",
			mcpgo.Required(),
			mcpgo.Description("A description of the code to generate, or the code to work on"),
		),
		mcpgo.WithString("mode",
			mcpgo.Description("Mode: generate, fix, optimize, review, or evolve (default: generate)"),
		),
		mcpgo.WithString("language",
			mcpgo.Description("Programming language (default: auto-detect)"),
		),
		mcpgo.WithString("framework",
			mcpgo.Description("Framework, if any"),
		),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Get dictionary statistics: total terms, generated terms, favorites, breakdown by category."),
	)
}

// --- tool handlers ---

// termView is a term plus its favorite state.
type termView struct {
	models.Term
	Favorite bool `json:"favorite"`
}

func (s *Server) handleSearch(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}

	cat, err := search.ParseCategory(req.GetString("category", ""))
	if err != nil {
		return mcpgo.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	found := s.dict.Search(search.Query{Text: req.GetString("query", ""), Category: cat})
	total := len(found)
	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]termView, 0, len(found))
	for _, t := range found {
		out = append(out, termView{Term: t, Favorite: s.dict.IsFavorite(t.ID)})
	}

	return toolResultJSON(map[string]any{
		"terms": out,
		"total": total,
	})
}

func (s *Server) handleLookup(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}

	query := req.GetString("query", "")
	if strings.TrimSpace(query) == "" {
		return mcpgo.NewToolResultError("query is required and must not be empty"), nil
	}

	term, added, err := s.dict.Lookup(ctx, query)
	if err != nil {
		return toolResultFailure("lookup", err), nil
	}
	if added {
		s.logger.Info("mcp: lookup added term", "id", term.ID, "name", term.Name)
	}
	return toolResultJSON(map[string]any{
		"term":  termView{Term: term, Favorite: s.dict.IsFavorite(term.ID)},
		"added": added,
	})
}

func (s *Server) handleToggleFavorite(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}
	id, bad := requireID(req)
	if bad != nil {
		return bad, nil
	}

	on, err := s.dict.ToggleFavorite(ctx, id)
	if err != nil {
		return toolResultFailure("toggle_favorite", err), nil
	}
	return toolResultJSON(map[string]any{"id": id, "favorite": on})
}

func (s *Server) handleForget(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}
	id, bad := requireID(req)
	if bad != nil {
		return bad, nil
	}

	if err := s.dict.Remove(ctx, id); err != nil {
		return toolResultFailure("forget", err), nil
	}
	s.logger.Info("mcp: forget deleted term", "id", id)
	return toolResultJSON(map[string]any{"deleted": true})
}

func (s *Server) handleTranslate(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}
	id, bad := requireID(req)
	if bad != nil {
		return bad, nil
	}

	tr, err := s.dict.Translate(ctx, id)
	if err != nil {
		return toolResultFailure("translate", err), nil
	}
	return toolResultJSON(tr)
}

func (s *Server) handleProcessCode(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}

	prompt := req.GetString("prompt", "")
	if strings.TrimSpace(prompt) == "" {
		return mcpgo.NewToolResultError("prompt is required and must not be empty"), nil
	}
	mode := models.ModeGenerate
	if m := req.GetString("mode", ""); m != "" {
		candidate := models.DevMode(strings.ToLower(m))
		if !candidate.IsValid() {
			return mcpgo.NewToolResultErrorf("invalid mode %q: must be one of generate, fix, optimize, review, evolve", m), nil
		}
		mode = candidate
	}

	art, err := s.dict.ProcessCode(ctx, models.CodeRequest{
		Prompt:    prompt,
		Mode:      mode,
		Language:  req.GetString("language", "auto"),
		Framework: req.GetString("framework", ""),
	})
	if err != nil {
		return toolResultFailure("process_code", err), nil
	}
	return toolResultJSON(art)
}

func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.dict == nil {
		return mcpgo.NewToolResultError("dictionary is unavailable"), nil
	}
	return toolResultJSON(s.dict.Stats())
}
