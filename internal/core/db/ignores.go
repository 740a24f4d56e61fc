package db

import "fmt"

// ListIgnores returns the global exclusion set as uid -> true.
func (db *DB) ListIgnores() (map[string]bool, error) {
	rows, err := db.conn.Query(`SELECT uid FROM global_ignores ORDER BY added_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	ignores := make(map[string]bool)
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, err
		}
		ignores[uid] = true
	}
	return ignores, rows.Err()
}

// AddIgnores adds conversations to the global exclusion set. Adding an
// already-excluded uid is a no-op (idempotent union).
func (db *DB) AddIgnores(uids []string) error {
	if len(uids) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, uid := range uids {
		if uid == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO global_ignores (uid) VALUES (?)`, uid); err != nil {
			return fmt.Errorf("failed to add ignore %s: %w", uid, err)
		}
	}
	return tx.Commit()
}

// RemoveIgnores removes conversations from the global exclusion set.
// Unknown uids are no-ops.
func (db *DB) RemoveIgnores(uids []string) error {
	if len(uids) == 0 {
		return nil
	}
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, uid := range uids {
		if _, err := tx.Exec(`DELETE FROM global_ignores WHERE uid = ?`, uid); err != nil {
			return fmt.Errorf("failed to remove ignore %s: %w", uid, err)
		}
	}
	return tx.Commit()
}

// SetIgnores replaces the entire exclusion set, for manage/cleanup flows.
func (db *DB) SetIgnores(ignores map[string]bool) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM global_ignores`); err != nil {
		return err
	}
	for uid, excluded := range ignores {
		if !excluded || uid == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO global_ignores (uid) VALUES (?)`, uid); err != nil {
			return fmt.Errorf("failed to add ignore %s: %w", uid, err)
		}
	}
	return tx.Commit()
}

// ClearIgnores empties the exclusion set.
func (db *DB) ClearIgnores() error {
	_, err := db.conn.Exec(`DELETE FROM global_ignores`)
	return err
}
