package sqlite

const schemaVersion = "2"

const pragmas = `
	PRAGMA foreign_keys = ON;
	PRAGMA synchronous = NORMAL;
	PRAGMA cache_size = -64000;
	PRAGMA temp_store = MEMORY;
	PRAGMA busy_timeout = 5000;
`

// schemaTables creates every table. Indexes and triggers come after the
// column migrations in schemaIndexes.
const schemaTables = `
	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		tweet_url TEXT UNIQUE NOT NULL,
		content TEXT NOT NULL,
		note_text TEXT,
		tweeted_at INTEGER NOT NULL,
		imported_at INTEGER NOT NULL,
		author_handle TEXT NOT NULL,
		author_name TEXT NOT NULL,
		author_profile_url TEXT,
		author_profile_image TEXT,
		comments TEXT,
		is_favorite INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS tags (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT UNIQUE NOT NULL COLLATE NOCASE
	);
	CREATE TABLE IF NOT EXISTS bookmark_tags (
		bookmark_id TEXT NOT NULL,
		tag_id INTEGER NOT NULL,
		PRIMARY KEY (bookmark_id, tag_id),
		FOREIGN KEY (bookmark_id) REFERENCES bookmarks(id) ON DELETE CASCADE,
		FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS media (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bookmark_id TEXT NOT NULL,
		url TEXT NOT NULL,
		media_type TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (bookmark_id) REFERENCES bookmarks(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS bookmarks_fts_content (
		rowid INTEGER PRIMARY KEY,
		bookmark_id TEXT NOT NULL,
		content TEXT,
		note_text TEXT,
		author_handle TEXT,
		author_name TEXT,
		comments TEXT,
		tags_text TEXT,
		FOREIGN KEY (bookmark_id) REFERENCES bookmarks(id) ON DELETE CASCADE
	);
	CREATE VIRTUAL TABLE IF NOT EXISTS bookmarks_fts USING fts5(
		content,
		note_text,
		author_handle,
		author_name,
		comments,
		tags_text,
		content='bookmarks_fts_content',
		content_rowid='rowid',
		tokenize='porter unicode61'
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// schemaIndexes keeps the FTS index in step with the shadow table
const schemaIndexes = `
	CREATE INDEX IF NOT EXISTS idx_bookmarks_tweeted_at ON bookmarks(tweeted_at DESC);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_author_handle ON bookmarks(author_handle);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_imported_at ON bookmarks(imported_at DESC);
	CREATE INDEX IF NOT EXISTS idx_bookmarks_favorite ON bookmarks(is_favorite) WHERE is_favorite = 1;
	CREATE INDEX IF NOT EXISTS idx_bookmark_tags_bookmark ON bookmark_tags(bookmark_id);
	CREATE INDEX IF NOT EXISTS idx_bookmark_tags_tag ON bookmark_tags(tag_id);
	CREATE INDEX IF NOT EXISTS idx_media_bookmark ON media(bookmark_id);
	CREATE INDEX IF NOT EXISTS idx_fts_content_bookmark ON bookmarks_fts_content(bookmark_id);

	CREATE TRIGGER IF NOT EXISTS bookmarks_fts_insert AFTER INSERT ON bookmarks_fts_content BEGIN
		INSERT INTO bookmarks_fts(rowid, content, note_text, author_handle, author_name, comments, tags_text)
		VALUES (NEW.rowid, NEW.content, NEW.note_text, NEW.author_handle, NEW.author_name, NEW.comments, NEW.tags_text);
	END;

	CREATE TRIGGER IF NOT EXISTS bookmarks_fts_delete AFTER DELETE ON bookmarks_fts_content BEGIN
		INSERT INTO bookmarks_fts(bookmarks_fts, rowid, content, note_text, author_handle, author_name, comments, tags_text)
		VALUES ('delete', OLD.rowid, OLD.content, OLD.note_text, OLD.author_handle, OLD.author_name, OLD.comments, OLD.tags_text);
	END;

	CREATE TRIGGER IF NOT EXISTS bookmarks_fts_update AFTER UPDATE ON bookmarks_fts_content BEGIN
		INSERT INTO bookmarks_fts(bookmarks_fts, rowid, content, note_text, author_handle, author_name, comments, tags_text)
		VALUES ('delete', OLD.rowid, OLD.content, OLD.note_text, OLD.author_handle, OLD.author_name, OLD.comments, OLD.tags_text);
		INSERT INTO bookmarks_fts(rowid, content, note_text, author_handle, author_name, comments, tags_text)
		VALUES (NEW.rowid, NEW.content, NEW.note_text, NEW.author_handle, NEW.author_name, NEW.comments, NEW.tags_text);
	END;
`

// bookmarkColumns is the select list scanned by scanBookmark
const bookmarkColumns = `b.id, b.tweet_url, b.content, b.note_text, b.tweeted_at, b.imported_at,
	b.author_handle, b.author_name, b.author_profile_url, b.author_profile_image,
	b.comments, b.is_favorite`
