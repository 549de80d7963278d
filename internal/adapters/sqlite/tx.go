package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"eterea/internal/domain"
	"eterea/internal/logger"
)

// batchTx writes bookmarks inside one transaction. Each record runs under
// its own savepoint so a duplicate can be undone without losing the batch.
type batchTx struct {
	ctx context.Context
	tx  *sql.Tx
}

// InsertBatch stores bookmarks in a single transaction. A record whose
// tweet URL is already stored is reported as a duplicate and skipped. Any
// other failure rolls the whole batch back and is returned as an error,
// alongside a report marked RolledBack.
func (s *Store) InsertBatch(ctx context.Context, bookmarks []*domain.Bookmark) (*domain.BatchReport, error) {
	report := &domain.BatchReport{Results: make([]domain.RecordResult, 0, len(bookmarks))}
	if len(bookmarks) == 0 {
		return report, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		report.RolledBack = true
		return report, &StorageError{Op: "begin batch", Err: err}
	}
	t := &batchTx{ctx: ctx, tx: tx}

	for _, b := range bookmarks {
		res := domain.RecordResult{ID: b.ID, TweetURL: b.TweetURL}

		dup, err := t.insertOne(b)
		switch {
		case err != nil:
			res.Outcome = domain.OutcomeFailed
			res.Err = err
			report.Results = append(report.Results, res)
			report.RolledBack = true
			if rbErr := tx.Rollback(); rbErr != nil {
				s.log.Error("batch rollback failed", logger.Error(rbErr))
			}
			s.log.Warn("batch rolled back",
				logger.String("tweet_url", b.TweetURL),
				logger.Int("size", len(bookmarks)),
				logger.Error(err))
			return report, &StorageError{Op: "insert " + b.TweetURL, Err: err}
		case dup:
			res.Outcome = domain.OutcomeDuplicate
			s.log.Debug("duplicate skipped", logger.String("tweet_url", b.TweetURL))
		default:
			res.Outcome = domain.OutcomeInserted
		}
		report.Results = append(report.Results, res)
	}

	if err := tx.Commit(); err != nil {
		report.RolledBack = true
		return report, &StorageError{Op: "commit batch", Err: err}
	}

	s.log.Debug("batch committed",
		logger.Int("inserted", report.Inserted()),
		logger.Int("duplicates", report.Duplicates()))
	return report, nil
}

// insertOne writes one bookmark with its tags, media and index row.
// It returns true when the base row collided with a stored natural key.
func (t *batchTx) insertOne(b *domain.Bookmark) (bool, error) {
	if err := t.exec(`SAVEPOINT bookmark`); err != nil {
		return false, err
	}

	err := t.insertBookmark(b)
	if isUniqueViolation(err) {
		if err := t.exec(`ROLLBACK TO bookmark`); err != nil {
			return false, err
		}
		return true, t.exec(`RELEASE bookmark`)
	}
	if err != nil {
		return false, err
	}

	if err := t.insertTags(b); err != nil {
		return false, err
	}
	if err := t.insertMedia(b); err != nil {
		return false, err
	}
	if err := t.insertIndexRow(b); err != nil {
		return false, err
	}
	return false, t.exec(`RELEASE bookmark`)
}

// insertBookmark inserts the base row
func (t *batchTx) insertBookmark(b *domain.Bookmark) error {
	_, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO bookmarks (
			id, tweet_url, content, note_text, tweeted_at, imported_at,
			author_handle, author_name, author_profile_url, author_profile_image,
			comments, is_favorite
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.TweetURL, b.Content, nullString(b.NoteText), b.TweetedAt.Unix(), b.ImportedAt.Unix(),
		b.AuthorHandle, b.AuthorName, nullString(b.AuthorProfileURL), nullString(b.AuthorProfileImage),
		nullString(b.Comments), b.IsFavorite)
	return err
}

// insertTags upserts each tag into the catalog and links it.
// Tags differing only in case share one catalog row.
func (t *batchTx) insertTags(b *domain.Bookmark) error {
	for _, name := range b.Tags {
		if err := t.exec(`INSERT OR IGNORE INTO tags (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		var tagID int64
		if err := t.tx.QueryRowContext(t.ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&tagID); err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		if err := t.exec(`INSERT OR IGNORE INTO bookmark_tags (bookmark_id, tag_id) VALUES (?, ?)`, b.ID, tagID); err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
	}
	return nil
}

// insertMedia inserts attachments keeping their order
func (t *batchTx) insertMedia(b *domain.Bookmark) error {
	for i, m := range b.Media {
		err := t.exec(`INSERT INTO media (bookmark_id, url, media_type, position) VALUES (?, ?, ?, ?)`,
			b.ID, m.URL, m.Type.String(), i)
		if err != nil {
			return fmt.Errorf("media %q: %w", m.URL, err)
		}
	}
	return nil
}

// insertIndexRow writes the shadow row; the insert trigger feeds FTS
func (t *batchTx) insertIndexRow(b *domain.Bookmark) error {
	return t.exec(`
		INSERT INTO bookmarks_fts_content
			(bookmark_id, content, note_text, author_handle, author_name, comments, tags_text)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Content, nullString(b.NoteText), b.AuthorHandle, b.AuthorName,
		nullString(b.Comments), b.TagsText())
}

func (t *batchTx) exec(query string, args ...any) error {
	_, err := t.tx.ExecContext(t.ctx, query, args...)
	return err
}

// nullString returns nil for empty strings (for nullable columns)
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fromNull(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBookmark reads the bookmarkColumns select list
func scanBookmark(row rowScanner) (*domain.Bookmark, error) {
	var (
		b                      domain.Bookmark
		note, profURL, profImg sql.NullString
		comments               sql.NullString
		tweetedAt, importedAt  int64
	)
	err := row.Scan(&b.ID, &b.TweetURL, &b.Content, &note, &tweetedAt, &importedAt,
		&b.AuthorHandle, &b.AuthorName, &profURL, &profImg, &comments, &b.IsFavorite)
	if err != nil {
		return nil, err
	}

	b.NoteText = fromNull(note)
	b.AuthorProfileURL = fromNull(profURL)
	b.AuthorProfileImage = fromNull(profImg)
	b.Comments = fromNull(comments)
	b.TweetedAt = unixUTC(tweetedAt)
	b.ImportedAt = unixUTC(importedAt)
	b.Tags = []string{}
	b.Media = []domain.Media{}
	return &b, nil
}
