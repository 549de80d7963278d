package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"eterea/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory(nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type fixture struct {
	url      string
	handle   string
	content  string
	at       string
	tags     []string
	media    []string
	note     string
	comments string
}

func (f fixture) build(t *testing.T) *domain.Bookmark {
	t.Helper()
	at, err := time.Parse(time.RFC3339, f.at)
	if err != nil {
		t.Fatalf("bad fixture time %q: %v", f.at, err)
	}
	handle := f.handle
	if handle == "" {
		handle = "@alice"
	}
	b, err := domain.NewBookmark(domain.BookmarkParams{
		TweetURL:     f.url,
		Content:      f.content,
		NoteText:     f.note,
		Comments:     f.comments,
		TweetedAt:    at,
		AuthorHandle: handle,
		Tags:         f.tags,
		MediaURLs:    f.media,
	})
	if err != nil {
		t.Fatalf("failed to build bookmark: %v", err)
	}
	return b
}

func insert(t *testing.T, s *Store, fixtures ...fixture) []*domain.Bookmark {
	t.Helper()
	var batch []*domain.Bookmark
	for _, f := range fixtures {
		batch = append(batch, f.build(t))
	}
	report, err := s.InsertBatch(context.Background(), batch)
	if err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}
	if report.RolledBack {
		t.Fatal("batch unexpectedly rolled back")
	}
	return batch
}

func TestInsertBatch_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := insert(t, s, fixture{
		url:      "https://x.com/alice/status/1",
		content:  "Rust async patterns",
		at:       "2024-03-01T10:00:00Z",
		tags:     []string{"rust", "async"},
		media:    []string{"https://pbs.twimg.com/media/a.jpg", "https://video.twimg.com/v.mp4"},
		note:     "read later",
		comments: "great thread",
	})[0]

	got, err := s.GetBookmark(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetBookmark failed: %v", err)
	}

	if got.TweetURL != want.TweetURL || got.Content != want.Content || got.NoteText != want.NoteText {
		t.Errorf("scalar mismatch: got %+v, want %+v", got, want)
	}
	if !got.TweetedAt.Equal(want.TweetedAt) || !got.ImportedAt.Equal(want.ImportedAt) {
		t.Errorf("time mismatch: got %v/%v, want %v/%v", got.TweetedAt, got.ImportedAt, want.TweetedAt, want.ImportedAt)
	}
	if got.AuthorName != "@alice" || got.Comments != "great thread" {
		t.Errorf("author/comments mismatch: %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "rust" || got.Tags[1] != "async" {
		t.Errorf("Tags = %v, want [rust async]", got.Tags)
	}
	if len(got.Media) != 2 || got.Media[0].Type != domain.MediaImage || got.Media[1].Type != domain.MediaVideo {
		t.Errorf("Media = %+v", got.Media)
	}
	if got.SearchText != want.SearchText {
		t.Errorf("SearchText = %q, want %q", got.SearchText, want.SearchText)
	}
}

func TestInsertBatch_Duplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insert(t, s, fixture{url: "https://x.com/a/status/1", content: "first", at: "2024-01-01T00:00:00Z"})

	batch := []*domain.Bookmark{
		fixture{url: "https://x.com/a/status/1", content: "again", at: "2024-01-01T00:00:00Z"}.build(t),
		fixture{url: "https://x.com/a/status/2", content: "second", at: "2024-01-02T00:00:00Z"}.build(t),
		fixture{url: "https://x.com/a/status/2", content: "in-batch copy", at: "2024-01-02T00:00:00Z"}.build(t),
	}
	report, err := s.InsertBatch(ctx, batch)
	if err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	wantOutcomes := []domain.InsertOutcome{domain.OutcomeDuplicate, domain.OutcomeInserted, domain.OutcomeDuplicate}
	for i, want := range wantOutcomes {
		if report.Results[i].Outcome != want {
			t.Errorf("record %d outcome = %s, want %s", i, report.Results[i].Outcome, want)
		}
	}
	if report.Inserted() != 1 || report.Duplicates() != 2 {
		t.Errorf("inserted=%d duplicates=%d, want 1/2", report.Inserted(), report.Duplicates())
	}

	n, err := s.Count(ctx, domain.SearchFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}

	// The skipped record left nothing behind in the index
	res, err := s.Search(ctx, "again", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("duplicate content is searchable: %d results", len(res))
	}
}

func TestInsertBatch_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fixtures := []fixture{
		{url: "https://x.com/a/status/1", content: "one", at: "2024-01-01T00:00:00Z", tags: []string{"go"}},
		{url: "https://x.com/b/status/2", handle: "@bob", content: "two", at: "2024-01-02T00:00:00Z", tags: []string{"go", "db"}},
	}
	insert(t, s, fixtures...)
	before, err := s.Stats(ctx, 10)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	// Rebuilt bookmarks carry new IDs but the same URLs
	var again []*domain.Bookmark
	for _, f := range fixtures {
		again = append(again, f.build(t))
	}
	report, err := s.InsertBatch(ctx, again)
	if err != nil {
		t.Fatalf("second InsertBatch failed: %v", err)
	}
	if report.Inserted() != 0 || report.Duplicates() != 2 {
		t.Errorf("second import inserted=%d duplicates=%d", report.Inserted(), report.Duplicates())
	}

	after, err := s.Stats(ctx, 10)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if after.TotalBookmarks != before.TotalBookmarks || after.UniqueTags != before.UniqueTags ||
		after.UniqueAuthors != before.UniqueAuthors {
		t.Errorf("stats changed: before %+v, after %+v", before, after)
	}
}

func TestInsertBatch_RollbackOnFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.db.Exec(`
		CREATE TRIGGER fail_media BEFORE INSERT ON media
		WHEN NEW.url = 'https://example.com/boom.jpg'
		BEGIN SELECT RAISE(ABORT, 'boom'); END;
	`); err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	batch := []*domain.Bookmark{
		fixture{url: "https://x.com/a/status/1", content: "ok", at: "2024-01-01T00:00:00Z"}.build(t),
		fixture{url: "https://x.com/a/status/2", content: "bad", at: "2024-01-01T00:00:00Z",
			media: []string{"https://example.com/boom.jpg"}}.build(t),
		fixture{url: "https://x.com/a/status/3", content: "never", at: "2024-01-01T00:00:00Z"}.build(t),
	}
	report, err := s.InsertBatch(ctx, batch)
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *StorageError
	if !errors.As(err, &serr) {
		t.Errorf("error type = %T, want *StorageError", err)
	}
	if !report.RolledBack || report.Inserted() != 0 {
		t.Errorf("report = %+v, want rolled back", report)
	}
	if last := report.Results[len(report.Results)-1]; last.Outcome != domain.OutcomeFailed {
		t.Errorf("last outcome = %s, want failed", last.Outcome)
	}

	n, err := s.Count(ctx, domain.SearchFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d after rollback, want 0", n)
	}
	res, err := s.Search(ctx, "ok", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("rolled back record is searchable")
	}
}

func TestInsertBatch_Empty(t *testing.T) {
	s := newTestStore(t)
	report, err := s.InsertBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}
	if len(report.Results) != 0 || report.RolledBack {
		t.Errorf("report = %+v", report)
	}
}

func TestTagCatalog_CaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insert(t, s,
		fixture{url: "https://x.com/a/status/1", content: "one", at: "2024-01-01T00:00:00Z", tags: []string{"Go"}},
		fixture{url: "https://x.com/a/status/2", content: "two", at: "2024-01-02T00:00:00Z", tags: []string{"go", "GO"}},
	)

	st, err := s.Stats(ctx, 5)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.UniqueTags != 1 {
		t.Errorf("UniqueTags = %d, want 1", st.UniqueTags)
	}
	if len(st.TopTags) != 1 || st.TopTags[0].Count != 2 || st.TopTags[0].Name != "Go" {
		t.Errorf("TopTags = %+v, want [{Go 2}]", st.TopTags)
	}
}

func TestDeleteBookmark_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := insert(t, s, fixture{
		url: "https://x.com/a/status/1", content: "ephemeral wisdom", at: "2024-01-01T00:00:00Z",
		tags: []string{"gone"}, media: []string{"https://pbs.twimg.com/media/x.png"},
	})[0]

	ok, err := s.DeleteBookmark(ctx, b.ID)
	if err != nil {
		t.Fatalf("DeleteBookmark failed: %v", err)
	}
	if !ok {
		t.Fatal("DeleteBookmark reported nothing deleted")
	}

	for table, query := range map[string]string{
		"bookmark_tags":         `SELECT COUNT(*) FROM bookmark_tags`,
		"media":                 `SELECT COUNT(*) FROM media`,
		"bookmarks_fts_content": `SELECT COUNT(*) FROM bookmarks_fts_content`,
	} {
		var n int
		if err := s.db.QueryRow(query).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after delete", table, n)
		}
	}

	res, err := s.Search(ctx, "ephemeral", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("deleted bookmark still searchable")
	}

	if _, err := s.GetBookmark(ctx, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetBookmark after delete: err = %v, want ErrNotFound", err)
	}

	ok, err = s.DeleteBookmark(ctx, b.ID)
	if err != nil || ok {
		t.Errorf("second delete = %v, %v; want false, nil", ok, err)
	}
}

func TestFavorites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := insert(t, s, fixture{url: "https://x.com/a/status/1", content: "fav", at: "2024-01-01T00:00:00Z"})[0]

	fav, err := s.ToggleFavorite(ctx, b.ID)
	if err != nil || !fav {
		t.Fatalf("ToggleFavorite = %v, %v; want true", fav, err)
	}
	page, err := s.ListFavorites(ctx, 0, 10)
	if err != nil {
		t.Fatalf("ListFavorites failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != b.ID || !page.Items[0].IsFavorite {
		t.Errorf("favorites page = %+v", page)
	}

	fav, err = s.ToggleFavorite(ctx, b.ID)
	if err != nil || fav {
		t.Fatalf("second ToggleFavorite = %v, %v; want false", fav, err)
	}

	if err := s.SetFavorite(ctx, b.ID, true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	got, err := s.GetBookmark(ctx, b.ID)
	if err != nil || !got.IsFavorite {
		t.Errorf("after SetFavorite: %+v, %v", got, err)
	}

	if _, err := s.ToggleFavorite(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("ToggleFavorite(missing) err = %v", err)
	}
	if err := s.SetFavorite(ctx, "missing", true); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("SetFavorite(missing) err = %v", err)
	}
}

func TestListBookmarks_Paging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insert(t, s,
		fixture{url: "https://x.com/a/status/1", content: "oldest", at: "2024-01-01T00:00:00Z"},
		fixture{url: "https://x.com/a/status/2", content: "middle", at: "2024-01-02T00:00:00Z"},
		fixture{url: "https://x.com/a/status/3", content: "newest", at: "2024-01-03T00:00:00Z"},
	)

	first, err := s.ListBookmarks(ctx, 0, 2)
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if first.Total != 3 || len(first.Items) != 2 || !first.HasMore {
		t.Errorf("first page = total %d, items %d, more %v", first.Total, len(first.Items), first.HasMore)
	}
	if first.Items[0].Content != "newest" {
		t.Errorf("first item = %q, want newest", first.Items[0].Content)
	}

	second, err := s.ListBookmarks(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(second.Items) != 1 || second.HasMore || second.Items[0].Content != "oldest" {
		t.Errorf("second page = %+v", second)
	}
}

func TestStats_Empty(t *testing.T) {
	s := newTestStore(t)

	st, err := s.Stats(context.Background(), 10)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.TotalBookmarks != 0 || st.UniqueAuthors != 0 || st.UniqueTags != 0 {
		t.Errorf("stats = %+v, want zeros", st)
	}
	if st.EarliestDate != nil || st.LatestDate != nil {
		t.Errorf("dates should be absent on empty store")
	}
	if st.TopTags == nil || len(st.TopTags) != 0 {
		t.Errorf("TopTags = %v, want empty", st.TopTags)
	}
}

func TestStats_Populated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := insert(t, s,
		fixture{url: "https://x.com/a/status/1", content: "one", at: "2023-05-01T00:00:00Z", tags: []string{"go", "db"}},
		fixture{url: "https://x.com/b/status/2", handle: "@bob", content: "two", at: "2024-06-01T12:00:00Z", tags: []string{"go"}},
		fixture{url: "https://x.com/b/status/3", handle: "@bob", content: "three", at: "2024-01-01T00:00:00Z", tags: []string{"ai"}},
	)
	if err := s.SetFavorite(ctx, b[0].ID, true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}

	st, err := s.Stats(ctx, 2)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.TotalBookmarks != 3 || st.UniqueAuthors != 2 || st.UniqueTags != 3 || st.FavoriteBookmarks != 1 {
		t.Errorf("stats = %+v", st)
	}
	if !st.EarliestDate.Equal(b[0].TweetedAt) || !st.LatestDate.Equal(b[1].TweetedAt) {
		t.Errorf("date range = %v..%v", st.EarliestDate, st.LatestDate)
	}
	want := []domain.TagCount{{Name: "go", Count: 2}, {Name: "ai", Count: 1}}
	if len(st.TopTags) != len(want) {
		t.Fatalf("TopTags = %+v, want %+v", st.TopTags, want)
	}
	for i := range want {
		if st.TopTags[i] != want[i] {
			t.Errorf("TopTags[%d] = %+v, want %+v", i, st.TopTags[i], want[i])
		}
	}

	tags, err := s.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 3 {
		t.Errorf("ListTags = %+v, want 3 tags", tags)
	}
}

func TestReindex_RepairsIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insert(t, s, fixture{url: "https://x.com/a/status/1", content: "durable knowledge", at: "2024-01-01T00:00:00Z", tags: []string{"kb"}})

	if _, err := s.db.Exec(`INSERT INTO bookmarks_fts(bookmarks_fts) VALUES ('delete-all')`); err != nil {
		t.Fatalf("failed to wipe index: %v", err)
	}
	res, err := s.Search(ctx, "durable", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("index wipe did not take effect")
	}

	// Base row edited behind the shadow table's back
	if _, err := s.db.Exec(`UPDATE bookmarks SET comments = 'revisited'`); err != nil {
		t.Fatalf("failed to edit base row: %v", err)
	}

	if err := s.Reindex(ctx); err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	for _, q := range []string{"durable", "kb", "revisited"} {
		res, err := s.Search(ctx, q, 10)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", q, err)
		}
		if len(res) != 1 {
			t.Errorf("Search(%q) after reindex = %d results, want 1", q, len(res))
		}
	}
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	insert(t, s, fixture{url: "https://x.com/a/status/1", content: "persisted", at: "2024-01-01T00:00:00Z"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(path, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %s, want %s", s.Path(), path)
	}
	version, err := s.SchemaVersion()
	if err != nil || version != schemaVersion {
		t.Errorf("SchemaVersion = %q, %v", version, err)
	}
	res, err := s.Search(ctx, "persisted", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 1 {
		t.Errorf("Search after reopen = %d results, want 1", len(res))
	}
}
