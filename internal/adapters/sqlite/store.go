package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"eterea/internal/domain"
	"eterea/internal/logger"
	"eterea/internal/ports"

	_ "modernc.org/sqlite"
)

// MemoryPath is the Path reported by stores opened with OpenMemory
const MemoryPath = ":memory:"

// Store implements ports.BookmarkStore using SQLite with an FTS5 index.
// All access goes through one connection; mu lets readers share it while a
// writer holds it exclusively.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	log  logger.Logger
}

// Ensure Store implements BookmarkStore
var _ ports.BookmarkStore = (*Store)(nil)

// Open opens or creates the database at path and brings its schema up to date
func Open(path string, log logger.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_txlock=immediate"
	return open(dsn, path, log)
}

// OpenMemory opens a private in-memory database, used by tests and dry runs
func OpenMemory(log logger.Logger) (*Store, error) {
	return open(MemoryPath+"?_pragma=foreign_keys(1)&_txlock=immediate", MemoryPath, log)
}

func open(dsn, path string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	// A second connection to :memory: would see a different database
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, log: log.With(logger.String("db", path))}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	s.log.Debug("database ready")
	return s, nil
}

// migrate applies pragmas, tables, late-added columns, then indexes and triggers
func (s *Store) migrate() error {
	if _, err := s.db.Exec(pragmas + schemaTables); err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Databases created before favorites and media ordering existed
	if err := s.ensureColumn("bookmarks", "is_favorite", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	if err := s.ensureColumn("media", "position", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}

	if _, err := s.db.Exec(schemaIndexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return s.updateMeta()
}

func (s *Store) ensureColumn(table, column, definition string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return err
	}
	found := false
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			rows.Close()
			return err
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if found {
		return nil
	}
	s.log.Infof("migrating %s: adding column %s %s", table, column, definition)
	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

// updateMeta records the schema version
func (s *Store) updateMeta() error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	return err
}

// SchemaVersion returns the version stamped by the last migration
func (s *Store) SchemaVersion() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var version string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err != nil {
		return "", &StorageError{Op: "schema version", Err: err}
	}
	return version, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file, or MemoryPath
func (s *Store) Path() string {
	return s.path
}

// GetBookmark retrieves one bookmark with its tags and media
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+bookmarkColumns+` FROM bookmarks b WHERE b.id = ?`, id)
	b, err := scanBookmark(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, &StorageError{Op: "get bookmark", Err: err}
	}

	if err := s.hydrate(ctx, []*domain.Bookmark{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBookmark removes a bookmark and everything attached to it.
// It reports false when no bookmark had that ID.
func (s *Store) DeleteBookmark(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}
	defer tx.Rollback()

	// Removing the shadow row first fires the FTS delete trigger
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks_fts_content WHERE bookmark_id = ?`, id); err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return false, &StorageError{Op: "delete", Err: err}
	}

	if n > 0 {
		s.log.Debug("bookmark deleted", logger.String("id", id))
	}
	return n > 0, nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fav bool
	err := s.db.QueryRowContext(ctx, `
		UPDATE bookmarks SET is_favorite = NOT is_favorite
		WHERE id = ?
		RETURNING is_favorite
	`, id).Scan(&fav)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrNotFound
	}
	if err != nil {
		return false, &StorageError{Op: "toggle favorite", Err: err}
	}
	return fav, nil
}

// SetFavorite sets the favorite flag explicitly
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE bookmarks SET is_favorite = ? WHERE id = ?`, favorite, id)
	if err != nil {
		return &StorageError{Op: "set favorite", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Op: "set favorite", Err: err}
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reindex rebuilds the shadow table from the base rows, then the FTS index
// from the shadow table. It repairs an index that drifted out of sync.
// The index is first rebuilt from the current shadow rows so the delete
// trigger only removes entries the index actually holds.
func (s *Store) Reindex(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "reindex", Err: err}
	}
	defer tx.Rollback()

	stmts := []string{
		`INSERT INTO bookmarks_fts(bookmarks_fts) VALUES ('rebuild')`,
		`DELETE FROM bookmarks_fts_content`,
		`INSERT INTO bookmarks_fts_content
			(bookmark_id, content, note_text, author_handle, author_name, comments, tags_text)
		SELECT b.id, b.content, b.note_text, b.author_handle, b.author_name, b.comments,
			COALESCE((
				SELECT group_concat(t.name, ' ')
				FROM bookmark_tags bt JOIN tags t ON t.id = bt.tag_id
				WHERE bt.bookmark_id = b.id
			), '')
		FROM bookmarks b`,
		`INSERT INTO bookmarks_fts(bookmarks_fts) VALUES ('rebuild')`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &StorageError{Op: "reindex", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Op: "reindex", Err: err}
	}

	s.log.Info("search index rebuilt")
	return nil
}
