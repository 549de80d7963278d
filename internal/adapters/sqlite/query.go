package sqlite

import (
	"context"
	"math"
	"strings"
	"time"
	"unicode"

	"eterea/internal/domain"
)

// selectQuery assembles a bookmark query from optional predicates.
// Only fixed SQL fragments are concatenated; every value is a bound argument.
type selectQuery struct {
	joins      []string
	joinArgs   []any
	conditions []string
	whereArgs  []any
	ranked     bool
}

func (q *selectQuery) join(clause string, args ...any) {
	q.joins = append(q.joins, clause)
	q.joinArgs = append(q.joinArgs, args...)
}

func (q *selectQuery) where(cond string, args ...any) {
	q.conditions = append(q.conditions, cond)
	q.whereArgs = append(q.whereArgs, args...)
}

func (q *selectQuery) from() (string, []any) {
	var sb strings.Builder
	sb.WriteString(" FROM bookmarks b")
	for _, j := range q.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
	if len(q.conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(q.conditions, " AND "))
	}

	args := make([]any, 0, len(q.joinArgs)+len(q.whereArgs)+2)
	args = append(args, q.joinArgs...)
	args = append(args, q.whereArgs...)
	return sb.String(), args
}

// selectSQL returns the page query: best match first when ranked, then newest
func (q *selectQuery) selectSQL(offset, limit int) (string, []any) {
	from, args := q.from()
	order := " ORDER BY b.tweeted_at DESC, b.id"
	if q.ranked {
		order = " ORDER BY bm25(bookmarks_fts), b.tweeted_at DESC, b.id"
	}
	args = append(args, limit, offset)
	return "SELECT " + bookmarkColumns + from + order + " LIMIT ? OFFSET ?", args
}

func (q *selectQuery) countSQL() (string, []any) {
	from, args := q.from()
	return "SELECT COUNT(*)" + from, args
}

// buildFilterQuery translates a filter into predicates. Empty fields add
// nothing, so the zero filter selects every bookmark.
func buildFilterQuery(f domain.SearchFilter) *selectQuery {
	q := &selectQuery{}

	if match := ftsQuery(f.Query); match != "" {
		q.join(`JOIN bookmarks_fts_content fc ON fc.bookmark_id = b.id`)
		q.join(`JOIN bookmarks_fts ON bookmarks_fts.rowid = fc.rowid`)
		q.where(`bookmarks_fts MATCH ?`, match)
		q.ranked = true
	}

	if f.Tag != "" {
		q.join(`JOIN bookmark_tags bt ON bt.bookmark_id = b.id JOIN tags t ON t.id = bt.tag_id`)
		q.where(`t.name = ?`, f.Tag)
	}

	if f.Author != "" {
		q.where(`b.author_handle = ?`, f.Author)
	}

	if f.From != nil || f.To != nil {
		var from, to int64 = 0, math.MaxInt64
		if f.From != nil {
			from = f.From.Unix()
		}
		if f.To != nil {
			to = f.To.Unix()
		}
		q.where(`b.tweeted_at BETWEEN ? AND ?`, from, to)
	}

	if f.FavoritesOnly {
		q.where(`b.is_favorite = 1`)
	}

	if f.HasMedia != nil {
		if *f.HasMedia {
			q.join(`JOIN (SELECT DISTINCT bookmark_id FROM media) m ON m.bookmark_id = b.id`)
		} else {
			q.where(`NOT EXISTS (SELECT 1 FROM media m WHERE m.bookmark_id = b.id)`)
		}
	}

	return q
}

// ftsQuery turns free text into an FTS5 expression: each whitespace
// separated term becomes a quoted prefix match, terms are ANDed.
// Terms without letters or digits cannot match and are dropped.
func ftsQuery(text string) string {
	var terms []string
	for _, term := range strings.Fields(text) {
		if !strings.ContainsFunc(term, isWordRune) {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(term, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// unsearchable reports a query that has text but nothing the index can match
func unsearchable(text string) bool {
	return strings.TrimSpace(text) != "" && ftsQuery(text) == ""
}

// Search runs a free-text query. An empty query lists the newest bookmarks.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]*domain.Bookmark, error) {
	return s.SearchWithFilters(ctx, domain.SearchFilter{
		Query: query,
		Limit: limit,
	})
}

// SearchWithFilters runs the composed filter query and hydrates the page
func (s *Store) SearchWithFilters(ctx context.Context, f domain.SearchFilter) ([]*domain.Bookmark, error) {
	if unsearchable(f.Query) {
		return []*domain.Bookmark{}, nil
	}
	limit := f.EffectiveLimit(domain.DefaultSearchLimit)
	offset := max(f.Offset, 0)

	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args := buildFilterQuery(f).selectSQL(offset, limit)
	return s.queryBookmarks(ctx, "search", query, args...)
}

// Count returns how many bookmarks match the filter, ignoring paging
func (s *Store) Count(ctx context.Context, f domain.SearchFilter) (int, error) {
	if unsearchable(f.Query) {
		return 0, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args := buildFilterQuery(f).countSQL()
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, &StorageError{Op: "count", Err: err}
	}
	return n, nil
}

// ListBookmarks pages through all bookmarks, newest first
func (s *Store) ListBookmarks(ctx context.Context, offset, limit int) (*domain.Page, error) {
	return s.page(ctx, domain.SearchFilter{Offset: offset, Limit: limit})
}

// ListFavorites pages through favorite bookmarks, newest first
func (s *Store) ListFavorites(ctx context.Context, offset, limit int) (*domain.Page, error) {
	return s.page(ctx, domain.SearchFilter{FavoritesOnly: true, Offset: offset, Limit: limit})
}

func (s *Store) page(ctx context.Context, f domain.SearchFilter) (*domain.Page, error) {
	f.Limit = f.EffectiveLimit(domain.DefaultListLimit)
	f.Offset = max(f.Offset, 0)

	items, err := s.SearchWithFilters(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	return domain.NewPage(items, total, f.Offset, f.Limit), nil
}

// queryBookmarks scans base rows, closes the cursor, then loads tags and
// media. The cursor must be closed first: the store has one connection.
func (s *Store) queryBookmarks(ctx context.Context, op, query string, args ...any) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}

	bookmarks := []*domain.Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			rows.Close()
			return nil, &StorageError{Op: op, Err: err}
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, &StorageError{Op: op, Err: err}
	}
	rows.Close()

	if err := s.hydrate(ctx, bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// hydrate fills Tags and Media, then recomputes SearchText
func (s *Store) hydrate(ctx context.Context, bookmarks []*domain.Bookmark) error {
	for _, b := range bookmarks {
		tags, err := s.loadTags(ctx, b.ID)
		if err != nil {
			return &StorageError{Op: "load tags", Err: err}
		}
		media, err := s.loadMedia(ctx, b.ID)
		if err != nil {
			return &StorageError{Op: "load media", Err: err}
		}
		b.Tags = tags
		b.Media = media
		b.ComputeSearchText()
	}
	return nil
}

func (s *Store) loadTags(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name FROM bookmark_tags bt
		JOIN tags t ON t.id = bt.tag_id
		WHERE bt.bookmark_id = ?
		ORDER BY bt.rowid
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tags = append(tags, name)
	}
	return tags, rows.Err()
}

func (s *Store) loadMedia(ctx context.Context, id string) ([]domain.Media, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, media_type FROM media
		WHERE bookmark_id = ?
		ORDER BY position, id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	media := []domain.Media{}
	for rows.Next() {
		var m domain.Media
		var typ string
		if err := rows.Scan(&m.URL, &typ); err != nil {
			return nil, err
		}
		m.Type = domain.ParseMediaType(typ)
		media = append(media, m)
	}
	return media, rows.Err()
}

func unixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
