// Package vault renders conversation notes and reads them back. A vault is
// just a directory of markdown files; identity lives in each note's
// frontmatter, so the directory itself can be scanned to rebuild state.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Vault is a root directory that conversation notes are written under.
type Vault struct {
	Root string
}

func New(root string) *Vault {
	return &Vault{Root: root}
}

// Abs resolves a vault-relative note path.
func (v *Vault) Abs(relPath string) string {
	return filepath.Join(v.Root, filepath.FromSlash(relPath))
}

// WriteNote writes a note at a vault-relative path, creating parent
// directories as needed.
func (v *Vault) WriteNote(relPath string, content []byte) error {
	full := v.Abs(relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("failed to create note directory: %w", err)
	}
	if err := os.WriteFile(full, content, 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

// ScannedNote is the identity marker recovered from an existing note.
type ScannedNote struct {
	RelPath     string
	UpdatedAt   int64
	ContentHash string
}

// Scan walks the vault for notes carrying our identity marker and returns
// them keyed by uid. Used as the fallback when the materialization cache
// has no record for a conversation. Unreadable or foreign files are
// skipped.
func (v *Vault) Scan() (map[string]ScannedNote, error) {
	notes := make(map[string]ScannedNote)

	err := filepath.WalkDir(v.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == v.Root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to read %s: %v\n", path, err)
			return nil
		}
		meta, ok := ParseNoteMeta(content)
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(v.Root, path)
		if err != nil {
			rel = path
		}
		notes[meta.ChatUID] = ScannedNote{
			RelPath:     filepath.ToSlash(rel),
			UpdatedAt:   meta.ChatUpdatedAt,
			ContentHash: meta.ChatContentHash,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}
	return notes, nil
}
