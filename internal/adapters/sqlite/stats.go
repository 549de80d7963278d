package sqlite

import (
	"context"
	"database/sql"

	"eterea/internal/domain"
)

// Stats computes corpus aggregates on every call. topTags caps the tag
// ranking; zero leaves it empty.
func (s *Store) Stats(ctx context.Context, topTags int) (*domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		st               domain.Stats
		earliest, latest sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT author_handle),
			COALESCE(SUM(is_favorite), 0),
			MIN(tweeted_at),
			MAX(tweeted_at)
		FROM bookmarks
	`).Scan(&st.TotalBookmarks, &st.UniqueAuthors, &st.FavoriteBookmarks, &earliest, &latest)
	if err != nil {
		return nil, &StorageError{Op: "stats", Err: err}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&st.UniqueTags); err != nil {
		return nil, &StorageError{Op: "stats", Err: err}
	}

	if earliest.Valid {
		t := unixUTC(earliest.Int64)
		st.EarliestDate = &t
	}
	if latest.Valid {
		t := unixUTC(latest.Int64)
		st.LatestDate = &t
	}

	st.TopTags = []domain.TagCount{}
	if topTags > 0 {
		st.TopTags, err = s.tagCounts(ctx, topTags)
		if err != nil {
			return nil, &StorageError{Op: "stats", Err: err}
		}
	}
	return &st, nil
}

// ListTags returns every catalog tag with its usage, most used first
func (s *Store) ListTags(ctx context.Context) ([]domain.TagCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags, err := s.tagCounts(ctx, -1)
	if err != nil {
		return nil, &StorageError{Op: "list tags", Err: err}
	}
	return tags, nil
}

// tagCounts ranks tags by usage then name. A negative limit means no limit.
// Tags no bookmark uses any more are kept with a zero count.
func (s *Store) tagCounts(ctx context.Context, limit int) ([]domain.TagCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name, COUNT(bt.bookmark_id) AS n
		FROM tags t
		LEFT JOIN bookmark_tags bt ON bt.tag_id = t.id
		GROUP BY t.id
		ORDER BY n DESC, t.name ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []domain.TagCount{}
	for rows.Next() {
		var tc domain.TagCount
		if err := rows.Scan(&tc.Name, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}
