package commands

import (
	"context"

	"eterea/internal/application"
	"eterea/internal/domain"
	"eterea/internal/ports"
)

// ListCommand pages through bookmarks newest first
type ListCommand struct {
	store         ports.BookmarkStore
	Offset        int
	Limit         int
	FavoritesOnly bool
}

// NewListCommand creates a new ListCommand
func NewListCommand(store ports.BookmarkStore, offset, limit int, favoritesOnly bool) *ListCommand {
	return &ListCommand{
		store:         store,
		Offset:        offset,
		Limit:         limit,
		FavoritesOnly: favoritesOnly,
	}
}

// Validate rejects negative paging values
func (c *ListCommand) Validate() error {
	if err := application.ValidateNonNegative("offset", c.Offset); err != nil {
		return err
	}
	return application.ValidateNonNegative("limit", c.Limit)
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*domain.Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.FavoritesOnly {
		return c.store.ListFavorites(ctx, c.Offset, c.Limit)
	}
	return c.store.ListBookmarks(ctx, c.Offset, c.Limit)
}

// ShowCommand loads one bookmark by ID
type ShowCommand struct {
	store ports.BookmarkStore
	ID    string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(store ports.BookmarkStore, id string) *ShowCommand {
	return &ShowCommand{store: store, ID: id}
}

// Validate checks the bookmark ID
func (c *ShowCommand) Validate() error {
	return application.ValidateID("id", c.ID)
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*domain.Bookmark, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.store.GetBookmark(ctx, c.ID)
}
