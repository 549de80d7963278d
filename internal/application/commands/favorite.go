package commands

import (
	"context"
	"fmt"

	"eterea/internal/application"
	"eterea/internal/ports"
)

// FavoriteResult is the favorite state after a change
type FavoriteResult struct {
	ID         string
	IsFavorite bool
	Message    string
}

func newFavoriteResult(id string, fav bool) *FavoriteResult {
	msg := fmt.Sprintf("Removed %s from favorites", id)
	if fav {
		msg = fmt.Sprintf("Added %s to favorites", id)
	}
	return &FavoriteResult{ID: id, IsFavorite: fav, Message: msg}
}

// ToggleFavoriteCommand flips the favorite flag of a bookmark
type ToggleFavoriteCommand struct {
	store ports.BookmarkStore
	ID    string
}

// NewToggleFavoriteCommand creates a new ToggleFavoriteCommand
func NewToggleFavoriteCommand(store ports.BookmarkStore, id string) *ToggleFavoriteCommand {
	return &ToggleFavoriteCommand{store: store, ID: id}
}

// Validate checks the bookmark ID
func (c *ToggleFavoriteCommand) Validate() error {
	return application.ValidateID("id", c.ID)
}

// Execute runs the toggle command
func (c *ToggleFavoriteCommand) Execute(ctx context.Context) (*FavoriteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	fav, err := c.store.ToggleFavorite(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle favorite %s: %w", c.ID, err)
	}
	return newFavoriteResult(c.ID, fav), nil
}

// SetFavoriteCommand sets the favorite flag explicitly
type SetFavoriteCommand struct {
	store    ports.BookmarkStore
	ID       string
	Favorite bool
}

// NewSetFavoriteCommand creates a new SetFavoriteCommand
func NewSetFavoriteCommand(store ports.BookmarkStore, id string, favorite bool) *SetFavoriteCommand {
	return &SetFavoriteCommand{store: store, ID: id, Favorite: favorite}
}

// Validate checks the bookmark ID
func (c *SetFavoriteCommand) Validate() error {
	return application.ValidateID("id", c.ID)
}

// Execute runs the set command
func (c *SetFavoriteCommand) Execute(ctx context.Context) (*FavoriteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.store.SetFavorite(ctx, c.ID, c.Favorite); err != nil {
		return nil, fmt.Errorf("failed to set favorite %s: %w", c.ID, err)
	}
	return newFavoriteResult(c.ID, c.Favorite), nil
}
