// Growi MCP Server - A Model Context Protocol server for Growi wikis.
// Exposes page listing, reading, and writing as MCP tools.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/growi-mcp-server/internal/growi"
	"github.com/olgasafonova/growi-mcp-server/tools"
	"github.com/olgasafonova/growi-mcp-server/tracing"
)

const (
	ServerName    = "growi-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Growi MCP Server provides tools for interacting with a Growi wiki.

Available tools:
- get_pages: List all page paths
- get_page: Get a page body by path
- get_page_by_id: Get a page body by identifier
- create_page: Create a page (overwrites any page already at that path)
- edit_page: Overwrite a page's body

Writes have last-write-wins semantics with no conflict detection. When
editing the same page repeatedly, wait at least one second between writes
so revisions are recorded in order.

Configure via environment variables:
- GROWI_URL: Wiki root URL (e.g., https://wiki.example.com)
- GROWI_API_TOKEN: API token used when a call carries no token of its own`

func main() {
	// Logging goes to stderr; stdout carries the MCP protocol
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	config, err := growi.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	client := growi.NewClient(config, growi.WithLogger(logger))
	defer client.Close()

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)

	logger.Info("Starting Growi MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"wiki_url", config.BaseURL,
		"token_configured", config.HasToken(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
