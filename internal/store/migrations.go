package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS shifts (
	id          TEXT PRIMARY KEY,
	business_id TEXT NOT NULL,
	date        TEXT NOT NULL,
	check_in    TEXT NOT NULL DEFAULT '',
	check_out   TEXT NOT NULL DEFAULT '',
	note        TEXT NOT NULL DEFAULT '',
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS daily_notes (
	id         TEXT PRIMARY KEY,
	date       TEXT NOT NULL,
	text       TEXT NOT NULL DEFAULT '',
	priority   TEXT NOT NULL DEFAULT 'low',
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS pending_changes (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_id   TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	action      TEXT NOT NULL,
	payload     TEXT NOT NULL DEFAULT '{}',
	timestamp   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS sync_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_shifts_date ON shifts(date);
CREATE INDEX IF NOT EXISTS idx_shifts_business ON shifts(business_id);
CREATE INDEX IF NOT EXISTS idx_notes_date ON daily_notes(date);
CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_entity
	ON pending_changes(entity_type, entity_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
