package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/woodae99/nexus-ai-chat-importer/internal/core/models"
)

// GetMaterialization returns the record for a conversation, or nil when the
// conversation has never been written.
func (db *DB) GetMaterialization(uid string) (*models.Materialization, error) {
	var m models.Materialization
	var imported sql.NullTime
	err := db.conn.QueryRow(`
		SELECT uid, content_hash, updated_at, file_path, last_imported_at, profile
		FROM materializations
		WHERE uid = ?
	`, uid).Scan(&m.UID, &m.ContentHash, &m.UpdatedAt, &m.FilePath, &imported, &m.Profile)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load materialization %s: %w", uid, err)
	}
	if imported.Valid {
		m.LastImportedAt = imported.Time
	}
	return &m, nil
}

// PutMaterialization upserts the record for a conversation. Callers invoke
// this only after the corresponding file write has completed, so the store
// never claims a write that did not happen.
func (db *DB) PutMaterialization(m *models.Materialization) error {
	if err := m.Validate(); err != nil {
		return err
	}
	imported := m.LastImportedAt
	if imported.IsZero() {
		imported = time.Now()
	}
	_, err := db.conn.Exec(`
		INSERT INTO materializations (uid, content_hash, updated_at, file_path, last_imported_at, profile)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at,
			file_path = excluded.file_path,
			last_imported_at = excluded.last_imported_at,
			profile = excluded.profile
	`, m.UID, m.ContentHash, m.UpdatedAt, m.FilePath, imported, m.Profile)
	if err != nil {
		return fmt.Errorf("failed to save materialization %s: %w", m.UID, err)
	}
	return nil
}

// ListMaterializations returns all records, most recently imported first.
func (db *DB) ListMaterializations() ([]models.Materialization, error) {
	rows, err := db.conn.Query(`
		SELECT uid, content_hash, updated_at, file_path, last_imported_at, profile
		FROM materializations
		ORDER BY last_imported_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Materialization
	for rows.Next() {
		var m models.Materialization
		var imported sql.NullTime
		if err := rows.Scan(&m.UID, &m.ContentHash, &m.UpdatedAt, &m.FilePath, &imported, &m.Profile); err != nil {
			return nil, err
		}
		if imported.Valid {
			m.LastImportedAt = imported.Time
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
