package commands

import (
	"context"
	"strings"

	"eterea/internal/application"
	"eterea/internal/domain"
	"eterea/internal/ports"
)

// SearchCommand runs a free-text query over the bookmark index
type SearchCommand struct {
	store ports.BookmarkStore
	Query string
	Limit int
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(store ports.BookmarkStore, query string, limit int) *SearchCommand {
	return &SearchCommand{
		store: store,
		Query: query,
		Limit: limit,
	}
}

// Validate checks the limit; an empty query is allowed and lists the newest
func (c *SearchCommand) Validate() error {
	return application.ValidateNonNegative("limit", c.Limit)
}

// Execute runs the search command, best matches first
func (c *SearchCommand) Execute(ctx context.Context) ([]*domain.Bookmark, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	limit := c.Limit
	if limit == 0 {
		limit = domain.DefaultSearchLimit
	}
	return c.store.Search(ctx, strings.TrimSpace(c.Query), limit)
}

// FilterCommand runs a composed filter and pages the result
type FilterCommand struct {
	store  ports.BookmarkStore
	Filter domain.SearchFilter
}

// NewFilterCommand creates a new FilterCommand
func NewFilterCommand(store ports.BookmarkStore, filter domain.SearchFilter) *FilterCommand {
	return &FilterCommand{
		store:  store,
		Filter: filter,
	}
}

// Validate checks paging values and the date range
func (c *FilterCommand) Validate() error {
	return application.ValidateFilter(c.Filter)
}

// Execute returns one page of matches with the total match count
func (c *FilterCommand) Execute(ctx context.Context) (*domain.Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	f := c.Filter
	f.Query = strings.TrimSpace(f.Query)
	f.Limit = f.EffectiveLimit(domain.DefaultSearchLimit)

	items, err := c.store.SearchWithFilters(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := c.store.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, total, f.Offset, f.Limit), nil
}
