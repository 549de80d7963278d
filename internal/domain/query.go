package domain

import "time"

const (
	DefaultListLimit   = 50
	DefaultSearchLimit = 100
)

// SearchFilter narrows a bookmark query. Zero values mean "no constraint";
// all set constraints must hold.
type SearchFilter struct {
	Query         string     // full-text terms, prefix-matched
	Tag           string     // exact tag name (case-insensitive catalog)
	Author        string     // exact author handle
	From          *time.Time // inclusive lower bound on TweetedAt
	To            *time.Time // inclusive upper bound on TweetedAt
	FavoritesOnly bool
	HasMedia      *bool // nil = either, true = with media, false = without
	Offset        int
	Limit         int
}

// EffectiveLimit returns Limit, or def when Limit is not positive
func (f SearchFilter) EffectiveLimit(def int) int {
	if f.Limit <= 0 {
		return def
	}
	return f.Limit
}

// Page is one window of an ordered listing
type Page struct {
	Items   []*Bookmark `json:"items"`
	Total   int         `json:"total"`
	Offset  int         `json:"offset"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"has_more"`
}

// NewPage computes HasMore from the window position and the total
func NewPage(items []*Bookmark, total, offset, limit int) *Page {
	return &Page{
		Items:   items,
		Total:   total,
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+len(items) < total,
	}
}

// TagCount is one row of the tag frequency ranking
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats holds corpus-level aggregates
type Stats struct {
	TotalBookmarks    int        `json:"total_bookmarks"`
	UniqueAuthors     int        `json:"unique_authors"`
	UniqueTags        int        `json:"unique_tags"`
	FavoriteBookmarks int        `json:"favorite_bookmarks"`
	EarliestDate      *time.Time `json:"earliest_date,omitempty"`
	LatestDate        *time.Time `json:"latest_date,omitempty"`
	TopTags           []TagCount `json:"top_tags"`
}
