// Package config provides configuration loading and structs for shiori.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/shiori/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CatalogConfig describes where document records are loaded from.
type CatalogConfig struct {
	Path string `yaml:"path"`
	// Format is csv, tsv, xlsx or sqlite. Empty picks the format from the file extension.
	Format    string `yaml:"format"`
	Delimiter string `yaml:"delimiter"` // csv only; default ","
	Header    *bool  `yaml:"header"`    // first row is a header; default true
	Sheet     string `yaml:"sheet"`     // xlsx only; default first sheet
	Watch     bool   `yaml:"watch"`     // rebuild the engine when the catalog file changes
}

// HasHeader returns whether the first row is a header; defaults to true when unset.
func (c *CatalogConfig) HasHeader() bool {
	if c.Header != nil {
		return *c.Header
	}
	return true
}

// StorageConfig holds the SQLite catalog path used by import.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SearchConfig holds query defaults and ranking parameters.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	// MaxRadius caps the edit-distance widening. 0 is valid (exact matches only).
	MaxRadius   *int               `yaml:"max_radius"`
	Metric      string             `yaml:"metric"` // levenshtein or damerau
	Mode        string             `yaml:"mode"`   // tokens or titles
	Suggestions int                `yaml:"suggestions"`
	BM25        ranking.BM25Config `yaml:"bm25"`
}

// MaxRadiusOrDefault returns the configured radius cap, or DefaultMaxRadius when unset.
func (s *SearchConfig) MaxRadiusOrDefault() int {
	if s.MaxRadius != nil {
		return *s.MaxRadius
	}
	return DefaultMaxRadius
}

// Load reads and parses the config file at path, applies defaults and
// environment overrides, and expands paths.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path, configDir)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)

	return &cfg, nil
}

// Default returns a config with every default applied, for running without a config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg
}

// Validate rejects values that defaults cannot repair.
func Validate(cfg *Config) error {
	switch cfg.Search.Mode {
	case "tokens", "titles":
	default:
		return fmt.Errorf("invalid search.mode %q: use tokens or titles", cfg.Search.Mode)
	}
	switch cfg.Search.Metric {
	case "levenshtein", "damerau":
	default:
		return fmt.Errorf("invalid search.metric %q: use levenshtein or damerau", cfg.Search.Metric)
	}
	if r := cfg.Search.MaxRadiusOrDefault(); r < 0 {
		return fmt.Errorf("invalid search.max_radius %d: must be >= 0", r)
	}
	return nil
}

// applyEnvOverrides reads SHIORI_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHIORI_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("SHIORI_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SHIORI_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = debug
		}
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
