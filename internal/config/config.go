// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Data       DataConfig       `toml:"data"`
	Database   DatabaseConfig   `toml:"database"`
	Collection CollectionConfig `toml:"collection"`
	Export     ExportConfig     `toml:"export"`
	App        AppConfig        `toml:"app"`
}

// DataConfig locates the card catalog data.
type DataConfig struct {
	Dir             string `toml:"dir"`               // Directory of card data JSON files
	StarterDeckFile string `toml:"starter_deck_file"` // Path to starter_decks.json
	WatchForChanges bool   `toml:"watch_for_changes"` // Reload catalog on file changes
	WatchDebounceMS int    `toml:"watch_debounce_ms"` // Debounce for reloads
}

// DatabaseConfig configures the collection database.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // SQLite file path
	AutoMigrate bool   `toml:"auto_migrate"` // Apply migrations on open
}

// CollectionConfig holds collection defaults.
type CollectionConfig struct {
	DefaultCondition string `toml:"default_condition"` // Condition for new entries
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Dialect string   `toml:"dialect"` // "standard" or "dreamborn"
	Columns []string `toml:"columns"` // Standard CSV columns
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:             "data",
			StarterDeckFile: filepath.Join("data", "starter_decks.json"),
			WatchForChanges: false,
			WatchDebounceMS: 500,
		},
		Database: DatabaseConfig{
			Path:        filepath.Join("data", "collection.db"),
			AutoMigrate: true,
		},
		Collection: CollectionConfig{
			DefaultCondition: "Near Mint",
		},
		Export: ExportConfig{
			Dialect: "standard",
			Columns: []string{"Card Name", "Set Name", "Variant", "Quantity"},
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// Load reads a TOML config file, filling unset fields with defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
