package commands

import (
	"context"

	"eterea/internal/application"
	"eterea/internal/domain"
	"eterea/internal/ports"
)

// StatsCommand computes corpus aggregates
type StatsCommand struct {
	store   ports.BookmarkStore
	TopTags int
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(store ports.BookmarkStore, topTags int) *StatsCommand {
	return &StatsCommand{store: store, TopTags: topTags}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*domain.Stats, error) {
	if err := application.ValidateNonNegative("top", c.TopTags); err != nil {
		return nil, err
	}
	return c.store.Stats(ctx, c.TopTags)
}

// TagsCommand lists every tag with its usage count
type TagsCommand struct {
	store ports.BookmarkStore
}

// NewTagsCommand creates a new TagsCommand
func NewTagsCommand(store ports.BookmarkStore) *TagsCommand {
	return &TagsCommand{store: store}
}

// Execute runs the tags command
func (c *TagsCommand) Execute(ctx context.Context) ([]domain.TagCount, error) {
	return c.store.ListTags(ctx)
}

// ReindexCommand rebuilds the full-text index from stored bookmarks
type ReindexCommand struct {
	store ports.BookmarkStore
}

// NewReindexCommand creates a new ReindexCommand
func NewReindexCommand(store ports.BookmarkStore) *ReindexCommand {
	return &ReindexCommand{store: store}
}

// Execute runs the reindex command
func (c *ReindexCommand) Execute(ctx context.Context) error {
	return c.store.Reindex(ctx)
}
