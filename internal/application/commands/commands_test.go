package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"eterea/internal/adapters/sqlite"
	"eterea/internal/application"
	"eterea/internal/domain"
	"eterea/internal/ingestion"
)

const validID = "4f0c2f0e-8f3b-4b7a-9d8e-2a1c3b4d5e6f"

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.OpenMemory(nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seed imports a small JSON export and returns the stored bookmarks newest first
func seed(t *testing.T, store *sqlite.Store) []*domain.Bookmark {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	data := `[
		{"tweet_url": "https://x.com/a/status/1", "tweeted_at": "2024-01-01T00:00:00Z", "screen_name": "a", "text": "sqlite internals", "tags": ["db"]},
		{"tweet_url": "https://x.com/b/status/2", "tweeted_at": "2024-02-01T00:00:00Z", "screen_name": "b", "text": "go concurrency", "tags": ["go", "db"]},
		{"tweet_url": "https://x.com/a/status/3", "tweeted_at": "2024-03-01T00:00:00Z", "screen_name": "a", "text": "fts5 ranking"}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}

	result, err := NewImportCommand(ingestion.NewIngester(store, nil), path, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("seed import failed: %v", err)
	}
	if result.Report.Inserted != 3 {
		t.Fatalf("seeded %d bookmarks, want 3", result.Report.Inserted)
	}

	page, err := store.ListBookmarks(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	return page.Items
}

func TestIDCommands_Validate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid ID",
			id:      validID,
			wantErr: false,
		},
		{
			name:    "empty ID",
			id:      "",
			wantErr: true,
			errMsg:  "bookmark ID is required",
		},
		{
			name:    "malformed ID",
			id:      "S01.11.15",
			wantErr: true,
			errMsg:  "invalid bookmark ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validators := map[string]interface{ Validate() error }{
				"delete": &DeleteCommand{ID: tt.id},
				"show":   &ShowCommand{ID: tt.id},
				"toggle": &ToggleFavoriteCommand{ID: tt.id},
				"set":    &SetFavoriteCommand{ID: tt.id},
			}
			for name, cmd := range validators {
				err := cmd.Validate()
				if tt.wantErr {
					if err == nil {
						t.Errorf("%s: expected error containing %q, got nil", name, tt.errMsg)
						continue
					}
					if !contains(err.Error(), tt.errMsg) {
						t.Errorf("%s: expected error containing %q, got %q", name, tt.errMsg, err.Error())
					}
				} else if err != nil {
					t.Errorf("%s: unexpected error: %v", name, err)
				}
			}
		})
	}
}

func TestFilterCommand_Validate(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	cmd := &FilterCommand{Filter: domain.SearchFilter{From: &from, To: &to}}
	err := cmd.Validate()
	if !errors.Is(err, application.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}

	cmd = &FilterCommand{Filter: domain.SearchFilter{Offset: -3}}
	var valErr *application.ValidationError
	if err := cmd.Validate(); !errors.As(err, &valErr) || valErr.Field != "offset" {
		t.Errorf("expected offset ValidationError, got %v", err)
	}
}

func TestImportCommand_Validate(t *testing.T) {
	cmd := &ImportCommand{Path: "  "}
	if err := cmd.Validate(); err == nil || !contains(err.Error(), "file path is required") {
		t.Errorf("expected path error, got %v", err)
	}
}

func TestImportCommand_DryRun(t *testing.T) {
	store := newStore(t)
	path := filepath.Join(t.TempDir(), "dry.csv")
	content := "profile_image_url_https,screen_name,name,full_text,note_tweet_text,tweeted_at,tweet_url\n" +
		",dev,,hello,,2025-08-25T10:52:35.000Z,https://x.com/dev/status/1\n" +
		",dev,,bad,,never,https://x.com/dev/status/2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	result, err := NewImportCommand(ingestion.NewIngester(store, nil), path, true).Execute(context.Background())
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !result.DryRun || result.Report.Parsed != 1 || result.Report.RowsSkipped != 1 || result.Report.Inserted != 0 {
		t.Errorf("dry run result = %+v", result.Report)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Row != 3 {
		t.Errorf("skipped = %+v", result.Skipped)
	}

	n, err := store.Count(context.Background(), domain.SearchFilter{})
	if err != nil || n != 0 {
		t.Errorf("dry run wrote %d bookmarks (%v)", n, err)
	}
}

func TestSearchAndFilterCommands(t *testing.T) {
	store := newStore(t)
	seed(t, store)
	ctx := context.Background()

	results, err := NewSearchCommand(store, "  sqlite ", 0).Execute(ctx)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 || results[0].TweetURL != "https://x.com/a/status/1" {
		t.Errorf("search results = %+v", results)
	}

	page, err := NewFilterCommand(store, domain.SearchFilter{Tag: "db", Limit: 1}).Execute(ctx)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 1 || !page.HasMore {
		t.Errorf("filter page = total %d, items %d, more %v", page.Total, len(page.Items), page.HasMore)
	}
	if page.Items[0].TweetURL != "https://x.com/b/status/2" {
		t.Errorf("newest tagged bookmark = %s", page.Items[0].TweetURL)
	}
}

func TestFavoriteAndListCommands(t *testing.T) {
	store := newStore(t)
	items := seed(t, store)
	ctx := context.Background()
	id := items[1].ID

	res, err := NewToggleFavoriteCommand(store, id).Execute(ctx)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !res.IsFavorite || !contains(res.Message, "Added") {
		t.Errorf("toggle result = %+v", res)
	}

	page, err := NewListCommand(store, 0, 10, true).Execute(ctx)
	if err != nil {
		t.Fatalf("list favorites failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != id {
		t.Errorf("favorites = %+v", page)
	}

	res, err = NewSetFavoriteCommand(store, id, false).Execute(ctx)
	if err != nil {
		t.Fatalf("set favorite failed: %v", err)
	}
	if res.IsFavorite {
		t.Errorf("set result = %+v", res)
	}

	if _, err := NewToggleFavoriteCommand(store, validID).Execute(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("toggle unknown id err = %v", err)
	}
}

func TestShowAndDeleteCommands(t *testing.T) {
	store := newStore(t)
	items := seed(t, store)
	ctx := context.Background()
	id := items[0].ID

	b, err := NewShowCommand(store, id).Execute(ctx)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if b.Content != "fts5 ranking" {
		t.Errorf("show = %+v", b)
	}

	res, err := NewDeleteCommand(store, id).Execute(ctx)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if res.DeletedID != id {
		t.Errorf("DeletedID = %s", res.DeletedID)
	}

	if _, err := NewDeleteCommand(store, id).Execute(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if _, err := NewShowCommand(store, id).Execute(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("show deleted err = %v", err)
	}
}

func TestStatsTagsReindexCommands(t *testing.T) {
	store := newStore(t)
	seed(t, store)
	ctx := context.Background()

	st, err := NewStatsCommand(store, 1).Execute(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if st.TotalBookmarks != 3 || st.UniqueAuthors != 2 || st.UniqueTags != 2 {
		t.Errorf("stats = %+v", st)
	}
	if len(st.TopTags) != 1 || st.TopTags[0] != (domain.TagCount{Name: "db", Count: 2}) {
		t.Errorf("top tags = %+v", st.TopTags)
	}

	if _, err := NewStatsCommand(store, -1).Execute(ctx); err == nil {
		t.Error("expected error for negative top")
	}

	tags, err := NewTagsCommand(store).Execute(ctx)
	if err != nil {
		t.Fatalf("tags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %+v", tags)
	}

	if err := NewReindexCommand(store).Execute(ctx); err != nil {
		t.Fatalf("reindex failed: %v", err)
	}
	results, err := NewSearchCommand(store, "concurrency", 10).Execute(ctx)
	if err != nil || len(results) != 1 {
		t.Errorf("search after reindex = %d, %v", len(results), err)
	}
}
