// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error (default info).
	Level string `json:"level" yaml:"level"`

	// Format selects the encoder: json or console (default console).
	Format string `json:"format" yaml:"format"`
}

// CacheConfig holds settings for the extracted-chat cache.
type CacheConfig struct {
	// Enabled turns on reuse of cached chats for unchanged state databases.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the bbolt file holding cached snapshots.
	Path string `json:"path" yaml:"path"`

	// OpenTimeout bounds how long to wait for the cache file lock (default 1s).
	OpenTimeout time.Duration `json:"open_timeout" yaml:"open_timeout"`
}

// ExportFormat selects the export file format.
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportYAML     ExportFormat = "yaml"
	ExportMarkdown ExportFormat = "markdown"
)

// ExportConfig holds settings for the export command.
type ExportConfig struct {
	// OutputDir is the directory export files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Format selects json, yaml, or markdown (default json).
	Format ExportFormat `json:"format" yaml:"format"`
}

// ServeConfig holds settings for the HTTP bridge.
type ServeConfig struct {
	// Addr is the listen address (default "127.0.0.1:8765").
	Addr string `json:"addr" yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// Config groups all settings read from the config file, environment, and flags.
type Config struct {
	// StorageDir is an editor workspaceStorage directory used by list.
	// It must be an already-resolved path; no platform default is guessed.
	StorageDir string `json:"storage_dir" yaml:"storage_dir"`

	Log    LogConfig    `json:"log" yaml:"log"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Export ExportConfig `json:"export" yaml:"export"`
	Serve  ServeConfig  `json:"serve" yaml:"serve"`
}
