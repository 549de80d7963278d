package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"eterea/internal/application"
	"eterea/internal/application/commands"
	"eterea/internal/domain"
	"eterea/internal/ports"
)

// RegisterReadTools adds all read-only bookmark tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.BookmarkStore) {
	s.AddTool(searchTool(), searchHandler(store))
	s.AddTool(filterTool(), filterHandler(store))
	s.AddTool(listTool(), listHandler(store))
	s.AddTool(getTool(), getHandler(store))
	s.AddTool(statsTool(), statsHandler(store))
	s.AddTool(tagsTool(), tagsHandler(store))
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Full-text search over bookmark content, notes, authors and tags. Terms are prefix-matched and all must match. Best matches first."),
		mcp.WithString("query",
			mcp.Description("Search terms. Empty lists the newest bookmarks."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 100)"),
		),
	)
}

func searchHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		limit := req.GetInt("limit", 0)

		results, err := commands.NewSearchCommand(store, query, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(results, func(b *domain.Bookmark) string {
			return formatBookmarkLine(b, query)
		})
	}
}

// --- filter ---

func filterTool() mcp.Tool {
	return mcp.NewTool("filter",
		mcp.WithDescription("Query bookmarks with combined constraints. Every given constraint must hold."),
		mcp.WithString("query", mcp.Description("Full-text search terms")),
		mcp.WithString("tag", mcp.Description("Exact tag name, case-insensitive")),
		mcp.WithString("author", mcp.Description("Exact author handle, e.g. @someone")),
		mcp.WithString("from", mcp.Description("Earliest post date, YYYY-MM-DD or RFC3339")),
		mcp.WithString("to", mcp.Description("Latest post date, YYYY-MM-DD or RFC3339")),
		mcp.WithBoolean("favorites", mcp.Description("Only favorite bookmarks")),
		mcp.WithString("has_media",
			mcp.Description("Restrict by attached media"),
			mcp.Enum("any", "yes", "no"),
		),
		mcp.WithNumber("offset", mcp.Description("Results to skip")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 100)")),
	)
}

func filterHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f, err := filterFromRequest(req)
		if err != nil {
			return toolError(err)
		}

		page, err := commands.NewFilterCommand(store, f).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatPage(page, f.Query)
	}
}

func filterFromRequest(req mcp.CallToolRequest) (domain.SearchFilter, error) {
	f := domain.SearchFilter{
		Query:         req.GetString("query", ""),
		Tag:           req.GetString("tag", ""),
		Author:        req.GetString("author", ""),
		FavoritesOnly: req.GetBool("favorites", false),
		Offset:        req.GetInt("offset", 0),
		Limit:         req.GetInt("limit", 0),
	}

	var err error
	if f.From, err = application.ParseDateBound(req.GetString("from", ""), false); err != nil {
		return f, err
	}
	if f.To, err = application.ParseDateBound(req.GetString("to", ""), true); err != nil {
		return f, err
	}

	switch v := req.GetString("has_media", "any"); v {
	case "", "any":
	case "yes":
		yes := true
		f.HasMedia = &yes
	case "no":
		no := false
		f.HasMedia = &no
	default:
		return f, &application.ValidationError{Field: "has_media", Message: fmt.Sprintf("must be any, yes or no, got %q", v)}
	}
	return f, nil
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List bookmarks newest first, one page at a time."),
		mcp.WithNumber("offset", mcp.Description("Bookmarks to skip")),
		mcp.WithNumber("limit", mcp.Description("Page size (default 50)")),
		mcp.WithBoolean("favorites", mcp.Description("Only favorite bookmarks")),
	)
}

func listHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewListCommand(store,
			req.GetInt("offset", 0),
			req.GetInt("limit", 0),
			req.GetBool("favorites", false),
		)
		page, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatPage(page, "")
	}
}

// --- get ---

func getTool() mcp.Tool {
	return mcp.NewTool("get",
		mcp.WithDescription("Show one bookmark with its tags, media, hashtags and mentions."),
		mcp.WithString("id",
			mcp.Description("Bookmark ID"),
			mcp.Required(),
		),
	)
}

func getHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := commands.NewShowCommand(store, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatBookmarkDetail(b)), nil
	}
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Corpus statistics: totals, date range and the most used tags."),
		mcp.WithNumber("top",
			mcp.Description("How many top tags to include (default 10)"),
		),
	)
}

func statsHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		st, err := commands.NewStatsCommand(store, req.GetInt("top", 10)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatStats(st)), nil
	}
}

// --- tags ---

func tagsTool() mcp.Tool {
	return mcp.NewTool("tags",
		mcp.WithDescription("List every tag with the number of bookmarks using it, most used first."),
	)
}

func tagsHandler(store ports.BookmarkStore) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := commands.NewTagsCommand(store).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(tags, func(tc domain.TagCount) string {
			return fmt.Sprintf("%5d  %s", tc.Count, tc.Name)
		})
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatPage(page *domain.Page, query string) (*mcp.CallToolResult, error) {
	if len(page.Items) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results (total %d).", page.Total)), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Showing %d-%d of %d\n", page.Offset+1, page.Offset+len(page.Items), page.Total)
	for _, b := range page.Items {
		sb.WriteString(formatBookmarkLine(b, query))
		sb.WriteByte('\n')
	}
	if page.HasMore {
		fmt.Fprintf(&sb, "More results: use offset %d\n", page.Offset+len(page.Items))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatBookmarkLine(b *domain.Bookmark, query string) string {
	star := " "
	if b.IsFavorite {
		star = "*"
	}
	text := strings.Join(strings.Fields(b.Content), " ")
	if query != "" {
		text = domain.Snippet(text, query, 60)
	} else if r := []rune(text); len(r) > 120 {
		text = string(r[:120]) + "..."
	}
	return fmt.Sprintf("%s %s  %s  %s  %s", star, b.ID, b.TweetedAt.Format(time.DateOnly), b.AuthorHandle, text)
}

func formatBookmarkDetail(b *domain.Bookmark) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID:       %s\n", b.ID)
	fmt.Fprintf(&sb, "URL:      %s\n", b.TweetURL)
	fmt.Fprintf(&sb, "Author:   %s (%s)\n", b.AuthorName, b.AuthorHandle)
	fmt.Fprintf(&sb, "Posted:   %s\n", b.TweetedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Imported: %s\n", b.ImportedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Favorite: %t\n", b.IsFavorite)
	if len(b.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags:     %s\n", strings.Join(b.Tags, ", "))
	}
	if h := b.Hashtags(); len(h) > 0 {
		fmt.Fprintf(&sb, "Hashtags: %s\n", strings.Join(h, " "))
	}
	if m := b.Mentions(); len(m) > 0 {
		fmt.Fprintf(&sb, "Mentions: %s\n", strings.Join(m, " "))
	}
	for _, m := range b.Media {
		fmt.Fprintf(&sb, "Media:    [%s] %s\n", m.Type, m.URL)
	}
	fmt.Fprintf(&sb, "\n%s\n", b.Content)
	if b.NoteText != "" {
		fmt.Fprintf(&sb, "\nNote: %s\n", b.NoteText)
	}
	if b.Comments != "" {
		fmt.Fprintf(&sb, "\nComments: %s\n", b.Comments)
	}
	return sb.String()
}

func formatStats(st *domain.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Bookmarks: %d\n", st.TotalBookmarks)
	fmt.Fprintf(&sb, "Favorites: %d\n", st.FavoriteBookmarks)
	fmt.Fprintf(&sb, "Authors:   %d\n", st.UniqueAuthors)
	fmt.Fprintf(&sb, "Tags:      %d\n", st.UniqueTags)
	if st.EarliestDate != nil && st.LatestDate != nil {
		fmt.Fprintf(&sb, "Range:     %s to %s\n", st.EarliestDate.Format(time.DateOnly), st.LatestDate.Format(time.DateOnly))
	}
	if len(st.TopTags) > 0 {
		sb.WriteString("\nTop tags:\n")
		for _, tc := range st.TopTags {
			fmt.Fprintf(&sb, "%5d  %s\n", tc.Count, tc.Name)
		}
	}
	return sb.String()
}
