package ports

import (
	"context"

	"eterea/internal/domain"
)

// BookmarkWriter persists batches of freshly built bookmarks.
// A natural-key collision is reported per record, never as an error.
type BookmarkWriter interface {
	InsertBatch(ctx context.Context, bookmarks []*domain.Bookmark) (*domain.BatchReport, error)
}

// BookmarkStore is the full storage contract consumed by commands and adapters.
// Callers share one handle; the store serializes its own writes.
type BookmarkStore interface {
	BookmarkWriter

	// Lifecycle
	Close() error
	Path() string

	// Single bookmark
	GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, id string) (bool, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error

	// Listings and search
	ListBookmarks(ctx context.Context, offset, limit int) (*domain.Page, error)
	ListFavorites(ctx context.Context, offset, limit int) (*domain.Page, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Bookmark, error)
	SearchWithFilters(ctx context.Context, filter domain.SearchFilter) ([]*domain.Bookmark, error)
	Count(ctx context.Context, filter domain.SearchFilter) (int, error)

	// Aggregates
	Stats(ctx context.Context, topTags int) (*domain.Stats, error)
	ListTags(ctx context.Context) ([]domain.TagCount, error)

	// Maintenance
	Reindex(ctx context.Context) error
}

// URLOpener hands a URL to the operating system
type URLOpener interface {
	Open(url string) error
}
