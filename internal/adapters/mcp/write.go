package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"eterea/internal/application/commands"
	"eterea/internal/ingestion"
	"eterea/internal/ports"
)

// RegisterWriteTools adds the tools that change stored bookmarks.
func RegisterWriteTools(s *server.MCPServer, store ports.BookmarkStore, ingester *ingestion.Ingester) {
	s.AddTool(importTool(), importHandler(ingester))
	s.AddTool(toggleFavoriteTool(), toggleFavoriteHandler(store))
	s.AddTool(setFavoriteTool(), setFavoriteHandler(store))
	s.AddTool(deleteTool(), deleteHandler(store))
}

// --- import ---

func importTool() mcp.Tool {
	return mcp.NewTool("import",
		mcp.WithDescription("Import a bookmark export file (.csv or .json). Bookmarks whose URL is already stored are skipped."),
		mcp.WithString("path",
			mcp.Description("Path to the export file"),
			mcp.Required(),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Parse and report without writing anything"),
		),
	)
}

func importHandler(ingester *ingestion.Ingester) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewImportCommand(ingester, req.GetString("path", ""), req.GetBool("dry_run", false))
		result, err := cmd.Execute(ctx)
		if err != nil {
			if result != nil {
				return mcp.NewToolResultError(formatImport(result) + "\nerror: " + err.Error()), nil
			}
			return toolError(err)
		}
		return mcp.NewToolResultText(formatImport(result)), nil
	}
}

func formatImport(res *commands.ImportResult) string {
	r := res.Report
	var sb strings.Builder
	if res.DryRun {
		sb.WriteString("Dry run, nothing written.\n")
	}
	fmt.Fprintf(&sb, "File:       %s (%s)\n", r.Path, r.Format)
	fmt.Fprintf(&sb, "Parsed:     %d\n", r.Parsed)
	fmt.Fprintf(&sb, "Skipped:    %d rows\n", r.RowsSkipped)
	if !res.DryRun {
		fmt.Fprintf(&sb, "Inserted:   %d\n", r.Inserted)
		fmt.Fprintf(&sb, "Duplicates: %d\n", r.Duplicates)
		fmt.Fprintf(&sb, "Batches:    %d in %s (%.0f/s)\n", r.Batches, r.Duration.Round(time.Millisecond), r.Rate())
	}
	for _, skip := range res.Skipped {
		fmt.Fprintf(&sb, "  %s\n", skip.Error())
	}
	return sb.String()
}

// --- toggle_favorite ---

func toggleFavoriteTool() mcp.Tool {
	return mcp.NewTool("toggle_favorite",
		mcp.WithDescription("Flip the favorite flag of a bookmark and return the new state."),
		mcp.WithString("id",
			mcp.Description("Bookmark ID"),
			mcp.Required(),
		),
	)
}

func toggleFavoriteHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewToggleFavoriteCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_favorite ---

func setFavoriteTool() mcp.Tool {
	return mcp.NewTool("set_favorite",
		mcp.WithDescription("Set the favorite flag of a bookmark explicitly."),
		mcp.WithString("id",
			mcp.Description("Bookmark ID"),
			mcp.Required(),
		),
		mcp.WithBoolean("favorite",
			mcp.Description("New favorite state"),
			mcp.Required(),
		),
	)
}

func setFavoriteHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSetFavoriteCommand(store, req.GetString("id", ""), req.GetBool("favorite", false))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a bookmark with its tags links, media and index entry."),
		mcp.WithString("id",
			mcp.Description("Bookmark ID"),
			mcp.Required(),
		),
	)
}

func deleteHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
