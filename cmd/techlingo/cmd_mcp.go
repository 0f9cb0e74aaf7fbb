package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	lingomcp "github.com/ajitpratap0/techlingo/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  search_terms     search and filter the dictionary
  lookup_term      find a term locally or ask the AI service to define it
  toggle_favorite  flip the favorite flag of a term
  forget_term      remove an AI-generated term
  translate_term   translate a term's definition and example to English
  process_code     run the developer lab (generate, fix, optimize, review, evolve)
  stats            dictionary statistics

If the AI service is unreachable the server still starts; individual tool
calls return MCP error responses on failure.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			a, err := openApp(cmd.Context(), logger)
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}
			defer func() { _ = a.Close() }()

			srv := lingomcp.NewServer(a.dict, logger)

			// mcp-go takes a standard log.Logger; keep it on stderr.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: techlingo MCP server starting", "transport", "stdio", "backend", a.gw.Backend())

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
