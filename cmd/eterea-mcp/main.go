package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "eterea/internal/adapters/mcp"
	"eterea/internal/adapters/sqlite"
	"eterea/internal/config"
	"eterea/internal/ingestion"
	"eterea/internal/logger"
)

func main() {
	dbFlag := flag.String("db", "", "path to the bookmark database (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("eterea-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.DatabasePath = config.ExpandHome(*dbFlag)
	}

	// stdout carries the protocol; the logger writes to stderr
	l := logger.New(cfg.LogLevel, false)
	defer l.Sync()

	store, err := sqlite.Open(cfg.DatabasePath, l)
	if err != nil {
		log.Fatalf("eterea-mcp: %v", err)
	}
	defer store.Close()

	ingester := ingestion.NewIngester(store, l, ingestion.WithBatchSize(cfg.BatchSize))

	mcpServer := server.NewMCPServer(
		"eterea-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store, ingester)

	l.Info("serving MCP on stdio", logger.String("db", store.Path()))
	if err := server.ServeStdio(mcpServer); err != nil {
		l.Errorf("server stopped: %v", err)
	}
}
