package db

import (
	"database/sql"
	"fmt"
)

// migrate applies database migrations for existing databases
func (db *DB) migrate() error {
	// Migration 1: add profile column to materializations
	if err := db.migration001AddProfile(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}

	return nil
}

// migration001AddProfile adds the profile column for databases created
// before multi-profile support.
func (db *DB) migration001AddProfile() error {
	var tableName string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name='materializations'
	`).Scan(&tableName)
	if err == sql.ErrNoRows {
		// Table doesn't exist yet, will be created by initSchema
		return nil
	}
	if err != nil {
		return err
	}

	var hasProfile int
	err = db.conn.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('materializations')
		WHERE name='profile'
	`).Scan(&hasProfile)
	if err != nil {
		return err
	}
	if hasProfile == 0 {
		_, err = db.conn.Exec(`ALTER TABLE materializations ADD COLUMN profile TEXT NOT NULL DEFAULT ''`)
		return err
	}

	return nil
}
