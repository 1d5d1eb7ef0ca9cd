package config

import "github.com/hyperjump/shiori/internal/ranking"

// DefaultMaxRadius is the widest edit-distance radius a search tries.
const DefaultMaxRadius = 5

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "/usr/local/var/shiori/catalog.csv"
	}
	if cfg.Catalog.Delimiter == "" {
		cfg.Catalog.Delimiter = ","
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/shiori/catalog.db"
	}
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 5
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
	if cfg.Search.MaxRadius == nil {
		r := DefaultMaxRadius
		cfg.Search.MaxRadius = &r
	}
	if cfg.Search.Metric == "" {
		cfg.Search.Metric = "levenshtein"
	}
	if cfg.Search.Mode == "" {
		cfg.Search.Mode = "tokens"
	}
	if cfg.Search.Suggestions == 0 {
		cfg.Search.Suggestions = 3
	}
	def := ranking.DefaultBM25Config()
	if cfg.Search.BM25.K1 == 0 {
		cfg.Search.BM25.K1 = def.K1
	}
	if cfg.Search.BM25.B == 0 {
		cfg.Search.BM25.B = def.B
	}
}
