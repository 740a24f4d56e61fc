package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user settings for the importer.
type Config struct {
	VaultPath        string // where notes are written
	DBPath           string // durable state database
	NoteFolder       string // vault-relative folder new notes land in
	FilenameTemplate string // "" means the built-in default
	DefaultProvider  string // "" means auto-detect
}

type tomlConfig struct {
	VaultPath        string `toml:"vault_path"`
	DBPath           string `toml:"db_path"`
	NoteFolder       string `toml:"note_folder"`
	FilenameTemplate string `toml:"filename_template"`
	DefaultProvider  string `toml:"default_provider"`
}

// Load reads config from ~/.config/nexus-import/config.toml, falling back
// to defaults when the file is absent or unreadable.
func Load() (*Config, error) {
	cfg := &Config{
		NoteFolder: "AI Chats",
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}
	cfg.VaultPath = filepath.Join(home, "Nexus")
	cfg.DBPath = filepath.Join(home, ".config", "nexus-import", "state.db")

	tomlPath := filepath.Join(home, ".config", "nexus-import", "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.VaultPath != "" {
				cfg.VaultPath = tc.VaultPath
			}
			if tc.DBPath != "" {
				cfg.DBPath = tc.DBPath
			}
			if tc.NoteFolder != "" {
				cfg.NoteFolder = tc.NoteFolder
			}
			cfg.FilenameTemplate = tc.FilenameTemplate
			cfg.DefaultProvider = tc.DefaultProvider
		}
	}

	return cfg, nil
}
