package models

import (
	"errors"
	"time"
)

// Materialization records that a conversation was last written to a vault
// file with a given content hash. One exists per conversation ever written;
// it is overwritten on every update and never claims a write that did not
// complete.
type Materialization struct {
	UID            string
	ContentHash    string
	UpdatedAt      int64 // archive updated_at at write time, epoch ms
	FilePath       string
	LastImportedAt time.Time
	Profile        string
}

// Validate checks that the record has its required fields.
func (m *Materialization) Validate() error {
	if m.UID == "" {
		return errors.New("uid is required")
	}
	if m.FilePath == "" {
		return errors.New("file_path is required")
	}
	return nil
}
