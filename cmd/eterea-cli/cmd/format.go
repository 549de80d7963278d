package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"eterea/internal/domain"
)

const snippetContext = 50

func printBookmarks(w io.Writer, bookmarks []*domain.Bookmark, query string) {
	if len(bookmarks) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}
	for _, b := range bookmarks {
		star := " "
		if b.IsFavorite {
			star = "*"
		}
		text := strings.Join(strings.Fields(b.Content), " ")
		if query != "" {
			text = domain.Highlight(domain.Snippet(text, query, snippetContext), query, "[", "]")
		} else if r := []rune(text); len(r) > 2*snippetContext {
			text = string(r[:2*snippetContext]) + "..."
		}
		fmt.Fprintf(w, "%s %s %s %-16s %s\n", star, b.ID, b.TweetedAt.Format(time.DateOnly), b.AuthorHandle, text)
	}
}

func printPage(w io.Writer, page *domain.Page, query string) {
	printBookmarks(w, page.Items, query)
	if len(page.Items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d-%d of %d", page.Offset+1, page.Offset+len(page.Items), page.Total)
	if page.HasMore {
		fmt.Fprintf(w, " (next: --offset %d)", page.Offset+len(page.Items))
	}
	fmt.Fprintln(w)
}

func printBookmark(w io.Writer, b *domain.Bookmark) {
	fmt.Fprintf(w, "ID:        %s\n", b.ID)
	fmt.Fprintf(w, "URL:       %s\n", b.TweetURL)
	fmt.Fprintf(w, "Author:    %s (%s)\n", b.AuthorName, b.AuthorHandle)
	if b.AuthorProfileURL != "" {
		fmt.Fprintf(w, "Profile:   %s\n", b.AuthorProfileURL)
	}
	fmt.Fprintf(w, "Posted:    %s\n", b.TweetedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Imported:  %s\n", b.ImportedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Favorite:  %t\n", b.IsFavorite)
	if len(b.Tags) > 0 {
		fmt.Fprintf(w, "Tags:      %s\n", strings.Join(b.Tags, ", "))
	}
	if h := b.Hashtags(); len(h) > 0 {
		fmt.Fprintf(w, "Hashtags:  %s\n", strings.Join(h, " "))
	}
	if m := b.Mentions(); len(m) > 0 {
		fmt.Fprintf(w, "Mentions:  %s\n", strings.Join(m, " "))
	}
	for _, m := range b.Media {
		fmt.Fprintf(w, "Media:     [%s] %s\n", m.Type, m.URL)
	}
	fmt.Fprintf(w, "\n%s\n", b.Content)
	if b.NoteText != "" {
		fmt.Fprintf(w, "\nNote: %s\n", b.NoteText)
	}
	if b.Comments != "" {
		fmt.Fprintf(w, "\nComments: %s\n", b.Comments)
	}
}
