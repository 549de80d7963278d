package domain

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func validParams() BookmarkParams {
	return BookmarkParams{
		TweetURL:     "https://twitter.com/user/status/123",
		Content:      "Hello world! #Rust @rustlang",
		TweetedAt:    time.Date(2024, 5, 1, 14, 51, 0, 0, time.UTC),
		AuthorHandle: "rustacean",
		AuthorName:   "Rust Developer",
	}
}

func TestNewBookmark(t *testing.T) {
	p := validParams()
	p.AddTag("programming")
	p.AddMedia("https://pbs.twimg.com/media/abc.jpg")

	b, err := NewBookmark(p)
	if err != nil {
		t.Fatalf("NewBookmark failed: %v", err)
	}

	if b.ID == "" {
		t.Error("expected generated ID")
	}
	if b.ImportedAt.IsZero() {
		t.Error("expected import time to be set")
	}
	if b.IsFavorite {
		t.Error("new bookmarks must not be favorites")
	}
	if !reflect.DeepEqual(b.Tags, []string{"programming"}) {
		t.Errorf("tags = %v", b.Tags)
	}
	if len(b.Media) != 1 || b.Media[0].Type != MediaImage {
		t.Errorf("media = %+v", b.Media)
	}
	if b.SearchText == "" {
		t.Error("expected search text")
	}
}

func TestNewBookmark_UniqueIDs(t *testing.T) {
	a, _ := NewBookmark(validParams())
	b, _ := NewBookmark(validParams())
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both %s", a.ID)
	}
}

func TestNewBookmark_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookmarkParams)
		missing []string
	}{
		{
			name:    "missing url",
			mutate:  func(p *BookmarkParams) { p.TweetURL = "" },
			missing: []string{"tweet_url"},
		},
		{
			name:    "missing date",
			mutate:  func(p *BookmarkParams) { p.TweetedAt = time.Time{} },
			missing: []string{"tweeted_at"},
		},
		{
			name:    "missing handle",
			mutate:  func(p *BookmarkParams) { p.AuthorHandle = "" },
			missing: []string{"author_handle"},
		},
		{
			name: "all missing",
			mutate: func(p *BookmarkParams) {
				*p = BookmarkParams{Content: "orphan"}
			},
			missing: []string{"tweet_url", "tweeted_at", "author_handle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			_, err := NewBookmark(p)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}

			var mf *MissingFieldError
			if !errors.As(err, &mf) {
				t.Fatalf("expected MissingFieldError, got %T", err)
			}
			if !reflect.DeepEqual(mf.Fields, tt.missing) {
				t.Errorf("missing = %v, want %v", mf.Fields, tt.missing)
			}
		})
	}
}

func TestNewBookmark_AuthorNameDefaultsToHandle(t *testing.T) {
	p := validParams()
	p.AuthorName = ""

	b, err := NewBookmark(p)
	if err != nil {
		t.Fatal(err)
	}
	if b.AuthorName != "rustacean" {
		t.Errorf("author name = %q, want handle", b.AuthorName)
	}
}

func TestAddTag(t *testing.T) {
	var p BookmarkParams
	for _, tag := range []string{"go", "", "go", "Go", "rust"} {
		p.AddTag(tag)
	}

	want := []string{"go", "Go", "rust"}
	if !reflect.DeepEqual(p.Tags, want) {
		t.Errorf("tags = %v, want %v", p.Tags, want)
	}
}

func TestNewBookmark_DeduplicatesRawTags(t *testing.T) {
	p := validParams()
	p.Tags = []string{"a", "a", "", "b"}

	b, err := NewBookmark(p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(b.Tags, []string{"a", "b"}) {
		t.Errorf("tags = %v", b.Tags)
	}
}

func TestComputeSearchText(t *testing.T) {
	p := validParams()
	p.NoteText = "longer note"
	p.Comments = "my comment"
	p.AddTag("t1")
	p.AddTag("t2")

	b, err := NewBookmark(p)
	if err != nil {
		t.Fatal(err)
	}

	want := "Hello world! #Rust @rustlang rustacean Rust Developer longer note my comment t1 t2"
	if b.SearchText != want {
		t.Errorf("search text = %q, want %q", b.SearchText, want)
	}

	b.Comments = ""
	b.ComputeSearchText()
	want = "Hello world! #Rust @rustlang rustacean Rust Developer longer note t1 t2"
	if b.SearchText != want {
		t.Errorf("recomputed search text = %q, want %q", b.SearchText, want)
	}
}

func TestHashtagsAndMentions(t *testing.T) {
	b, err := NewBookmark(validParams())
	if err != nil {
		t.Fatal(err)
	}

	if got := b.Hashtags(); !reflect.DeepEqual(got, []string{"rust"}) {
		t.Errorf("hashtags = %v", got)
	}
	if got := b.Mentions(); !reflect.DeepEqual(got, []string{"rustlang"}) {
		t.Errorf("mentions = %v", got)
	}
}

func TestNewPage_HasMore(t *testing.T) {
	items := make([]*Bookmark, 2)

	if p := NewPage(items, 5, 0, 2); !p.HasMore {
		t.Error("expected more after first page")
	}
	if p := NewPage(items, 4, 2, 2); p.HasMore {
		t.Error("expected last page")
	}
}
