package storage

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

CREATE TABLE IF NOT EXISTS habits (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	icon             TEXT NOT NULL DEFAULT '',
	color            TEXT NOT NULL DEFAULT '',
	target_count     INTEGER NOT NULL,
	unit             TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL,
	is_archived      INTEGER NOT NULL DEFAULT 0,
	sort_order       INTEGER NOT NULL DEFAULT 0,
	reminder_enabled INTEGER NOT NULL DEFAULT 0,
	reminder_time    TEXT NOT NULL DEFAULT '',
	reminder_days    TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS habit_entries (
	id         TEXT PRIMARY KEY,
	habit_id   TEXT NOT NULL REFERENCES habits(id),
	day        TEXT NOT NULL,
	count      INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_habit_day
	ON habit_entries(habit_id, day);
CREATE INDEX IF NOT EXISTS idx_entries_day ON habit_entries(day);
`,
	},
}
