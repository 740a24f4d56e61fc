package db

func (db *DB) initSchema() error {
	schema := `
	-- Materialization records: one per conversation ever written
	CREATE TABLE IF NOT EXISTS materializations (
		uid TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT 0,
		file_path TEXT NOT NULL,
		last_imported_at DATETIME,
		profile TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_materializations_profile ON materializations(profile);
	CREATE INDEX IF NOT EXISTS idx_materializations_file_path ON materializations(file_path);

	-- Global exclusion set: conversations the user never wants auto-selected
	CREATE TABLE IF NOT EXISTS global_ignores (
		uid TEXT PRIMARY KEY,
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Small key/value app state (last export path, active profile)
	CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		name TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Import log: one row per executor run
	CREATE TABLE IF NOT EXISTS import_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		archive_path TEXT NOT NULL,
		provider TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		new_count INTEGER DEFAULT 0,
		updated_count INTEGER DEFAULT 0,
		skipped_count INTEGER DEFAULT 0,
		failed_count INTEGER DEFAULT 0,
		status TEXT CHECK(status IN ('success', 'partial', 'cancelled', 'failed')),
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_import_log_run_id ON import_log(run_id);
	CREATE INDEX IF NOT EXISTS idx_import_log_archive_path ON import_log(archive_path);
	`

	_, err := db.conn.Exec(schema)
	return err
}
