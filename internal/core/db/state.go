package db

import "database/sql"

// Well-known app_state keys.
const (
	StateLastExportPath = "last_export_path"
	StateActiveProfile  = "active_profile"
)

// GetState returns the value for an app_state key, "" when unset.
func (db *DB) GetState(key string) (string, error) {
	var value string
	err := db.conn.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetState upserts an app_state key.
func (db *DB) SetState(key, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// ListProfiles returns all profile names in creation order.
func (db *DB) ListProfiles() ([]string, error) {
	rows, err := db.conn.Query(`SELECT name FROM profiles ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AddProfile creates a profile if it does not already exist.
func (db *DB) AddProfile(name string) error {
	_, err := db.conn.Exec(`INSERT OR IGNORE INTO profiles (name) VALUES (?)`, name)
	return err
}

// ActiveProfile returns the active profile name, "" when none is set.
func (db *DB) ActiveProfile() (string, error) {
	return db.GetState(StateActiveProfile)
}

// SetActiveProfile records the active profile, creating it if needed.
func (db *DB) SetActiveProfile(name string) error {
	if err := db.AddProfile(name); err != nil {
		return err
	}
	return db.SetState(StateActiveProfile, name)
}
