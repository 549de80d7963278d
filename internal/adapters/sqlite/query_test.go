package sqlite

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"eterea/internal/domain"
)

func TestFTSQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"rust", `"rust"*`},
		{"rust  async", `"rust"* "async"*`},
		{`say "hi"`, `"say"* """hi"""*`},
		{"!!! ---", ""},
		{"c++ !!", `"c++"*`},
		{"naïve", `"naïve"*`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ftsQuery(tt.in); got != tt.want {
				t.Errorf("ftsQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildFilterQuery_BindsValues(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	yes := true
	f := domain.SearchFilter{
		Query:         "x'; DROP TABLE bookmarks; --",
		Tag:           "t' OR 1=1 --",
		Author:        "@a\" OR \"1\"=\"1",
		From:          &from,
		FavoritesOnly: true,
		HasMedia:      &yes,
	}

	query, args := buildFilterQuery(f).selectSQL(5, 10)
	for _, v := range []string{"DROP TABLE", "OR 1=1", `"1"="1`} {
		if strings.Contains(query, v) {
			t.Errorf("user value %q leaked into SQL: %s", v, query)
		}
	}
	if got, want := strings.Count(query, "?"), len(args); got != want {
		t.Errorf("placeholders = %d, args = %d", got, want)
	}
	if args[len(args)-2] != 10 || args[len(args)-1] != 5 {
		t.Errorf("limit/offset args = %v", args[len(args)-2:])
	}
	if !strings.Contains(query, "bm25(bookmarks_fts)") {
		t.Errorf("text query not ranked: %s", query)
	}
}

func TestBuildFilterQuery_Unranked(t *testing.T) {
	query, args := buildFilterQuery(domain.SearchFilter{}).selectSQL(0, 50)
	if strings.Contains(query, "WHERE") || strings.Contains(query, "bm25") {
		t.Errorf("empty filter added predicates: %s", query)
	}
	if len(args) != 2 {
		t.Errorf("args = %v, want only limit and offset", args)
	}
}

func seedFilterCorpus(t *testing.T) (*Store, map[string]string) {
	t.Helper()
	s := newTestStore(t)

	bms := insert(t, s,
		fixture{url: "https://x.com/alice/status/1", handle: "@alice", content: "Rust ownership explained",
			at: "2024-01-10T00:00:00Z", tags: []string{"rust", "learning"}, media: []string{"https://pbs.twimg.com/media/r.png"}},
		fixture{url: "https://x.com/alice/status/2", handle: "@alice", content: "Go generics tour",
			at: "2024-02-10T00:00:00Z", tags: []string{"go"}},
		fixture{url: "https://x.com/bob/status/3", handle: "@bob", content: "Rustaceans meetup notes",
			at: "2024-03-10T00:00:00Z", tags: []string{"Rust", "events"}, media: []string{"https://video.twimg.com/m.mp4"}},
		fixture{url: "https://x.com/bob/status/4", handle: "@bob", content: "Database internals",
			at: "2024-04-10T00:00:00Z", tags: []string{"db"}, note: "covers btrees"},
	)
	ids := map[string]string{}
	for _, b := range bms {
		ids[b.TweetURL[strings.LastIndex(b.TweetURL, "/")+1:]] = b.ID
	}
	if err := s.SetFavorite(context.Background(), ids["2"], true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	if err := s.SetFavorite(context.Background(), ids["3"], true); err != nil {
		t.Fatalf("SetFavorite failed: %v", err)
	}
	return s, ids
}

func TestSearchWithFilters(t *testing.T) {
	s, ids := seedFilterCorpus(t)
	ctx := context.Background()

	day := func(v string) *time.Time {
		tm, err := time.Parse("2006-01-02", v)
		if err != nil {
			t.Fatalf("bad date %q", v)
		}
		return &tm
	}
	second := func(v string) *time.Time {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t.Fatalf("bad timestamp %q", v)
		}
		return &tm
	}
	yes, no := true, false

	tests := []struct {
		name   string
		filter domain.SearchFilter
		want   []string // status numbers, any order
	}{
		{"no constraints", domain.SearchFilter{}, []string{"1", "2", "3", "4"}},
		{"prefix text", domain.SearchFilter{Query: "rust"}, []string{"1", "3"}},
		{"multiple terms are ANDed", domain.SearchFilter{Query: "rust meetup"}, []string{"3"}},
		{"note text is indexed", domain.SearchFilter{Query: "btrees"}, []string{"4"}},
		{"author handle is indexed", domain.SearchFilter{Query: "bob"}, []string{"3", "4"}},
		{"tag text is indexed", domain.SearchFilter{Query: "events"}, []string{"3"}},
		{"tag ignores case", domain.SearchFilter{Tag: "RUST"}, []string{"1", "3"}},
		{"author", domain.SearchFilter{Author: "@alice"}, []string{"1", "2"}},
		{"from only", domain.SearchFilter{From: day("2024-03-01")}, []string{"3", "4"}},
		{"to only", domain.SearchFilter{To: day("2024-02-10")}, []string{"1", "2"}},
		{"range", domain.SearchFilter{From: day("2024-02-01"), To: day("2024-03-31")}, []string{"2", "3"}},
		{"from is inclusive", domain.SearchFilter{From: day("2024-03-10")}, []string{"3", "4"}},
		{"to is inclusive", domain.SearchFilter{To: day("2024-03-10")}, []string{"1", "2", "3"}},
		{"single second range", domain.SearchFilter{From: day("2024-02-10"), To: day("2024-02-10")}, []string{"2"}},
		{"one second after", domain.SearchFilter{From: second("2024-02-10T00:00:01Z"), To: day("2024-03-10")}, []string{"3"}},
		{"one second before", domain.SearchFilter{From: day("2024-02-01"), To: second("2024-03-09T23:59:59Z")}, []string{"2"}},
		{"favorites", domain.SearchFilter{FavoritesOnly: true}, []string{"2", "3"}},
		{"has media", domain.SearchFilter{HasMedia: &yes}, []string{"1", "3"}},
		{"no media", domain.SearchFilter{HasMedia: &no}, []string{"2", "4"}},
		{"combined", domain.SearchFilter{Query: "rust", Tag: "rust", FavoritesOnly: true, HasMedia: &yes}, []string{"3"}},
		{"nothing matches", domain.SearchFilter{Query: "haskell"}, nil},
		{"unsearchable text", domain.SearchFilter{Query: "!!!"}, nil},
		{"hostile text", domain.SearchFilter{Query: `"); DROP TABLE bookmarks; --`}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.SearchWithFilters(ctx, tt.filter)
			if err != nil {
				t.Fatalf("SearchWithFilters failed: %v", err)
			}
			var got []string
			for _, b := range res {
				for num, id := range ids {
					if id == b.ID {
						got = append(got, num)
					}
				}
			}
			sort.Strings(got)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %v, want %v", got, tt.want)
			}

			n, err := s.Count(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if n != len(tt.want) {
				t.Errorf("Count = %d, want %d", n, len(tt.want))
			}
		})
	}

	// The hostile query left the table in place
	if n, err := s.Count(ctx, domain.SearchFilter{}); err != nil || n != 4 {
		t.Errorf("Count after hostile query = %d, %v", n, err)
	}
}

func TestSearch_EmptyQueryListsNewestFirst(t *testing.T) {
	s, _ := seedFilterCorpus(t)

	res, err := s.Search(context.Background(), "", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("len = %d, want 2", len(res))
	}
	if res[0].Content != "Database internals" || res[1].Content != "Rustaceans meetup notes" {
		t.Errorf("order = %q, %q", res[0].Content, res[1].Content)
	}
}

func TestSearch_HasMediaDoesNotDuplicateRows(t *testing.T) {
	s := newTestStore(t)
	insert(t, s, fixture{
		url: "https://x.com/a/status/1", content: "gallery", at: "2024-01-01T00:00:00Z",
		media: []string{"https://pbs.twimg.com/a.jpg", "https://pbs.twimg.com/b.jpg", "https://pbs.twimg.com/c.jpg"},
	})

	yes := true
	res, err := s.SearchWithFilters(context.Background(), domain.SearchFilter{HasMedia: &yes})
	if err != nil {
		t.Fatalf("SearchWithFilters failed: %v", err)
	}
	if len(res) != 1 || len(res[0].Media) != 3 {
		t.Errorf("results = %d, media = %v", len(res), res)
	}
}
