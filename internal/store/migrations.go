package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at         TEXT NOT NULL,
			project          TEXT NOT NULL,
			path             TEXT NOT NULL,
			total_files      INTEGER NOT NULL,
			total_size_bytes INTEGER NOT NULL,
			total_lines      INTEGER NOT NULL,
			comment_lines    INTEGER NOT NULL,
			blank_lines      INTEGER NOT NULL,
			duplicate_files  INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS scan_languages (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id       INTEGER NOT NULL REFERENCES scans(id),
			language      TEXT NOT NULL,
			lines         INTEGER NOT NULL,
			comment_lines INTEGER NOT NULL,
			blank_lines   INTEGER NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_scans_project ON scans(project)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_languages_scan ON scan_languages(scan_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
