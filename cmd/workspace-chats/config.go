// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/workspace-chats/internal/cache"
	"github.com/pdiddy/workspace-chats/internal/history"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}

// loadConfig assembles the effective configuration from flags, environment,
// config file, and defaults, in that order of precedence.
func loadConfig() types.Config {
	return types.Config{
		StorageDir: viper.GetString("storage_dir"),
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
		Cache: types.CacheConfig{
			Enabled:     viper.GetBool("cache.enabled"),
			Path:        viper.GetString("cache.path"),
			OpenTimeout: viper.GetDuration("cache.open_timeout"),
		},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
			Format:    types.ExportFormat(viper.GetString("export.format")),
		},
		Serve: types.ServeConfig{
			Addr:            viper.GetString("serve.addr"),
			ShutdownTimeout: viper.GetDuration("serve.shutdown_timeout"),
		},
	}
}

// defaultCachePath places the cache under the user cache directory.
func defaultCachePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache directory: %w", err)
	}
	return filepath.Join(dir, "workspace-chats", "chats.db"), nil
}

func openCache(cfg types.CacheConfig) (*cache.Cache, error) {
	path := cfg.Path
	if path == "" {
		p, err := defaultCachePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return cache.Open(path, cfg.OpenTimeout)
}

// newReader builds a history.Reader, attaching the cache when enabled.
// The returned func releases the cache and must always be called.
func newReader(cfg types.Config) (*history.Reader, func(), error) {
	if !cfg.Cache.Enabled {
		return history.NewReader(logger, nil), func() {}, nil
	}
	c, err := openCache(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	return history.NewReader(logger, c), func() { c.Close() }, nil
}
