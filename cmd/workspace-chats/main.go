// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the workspace-chats CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/workspace-chats/internal/logging"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built from config before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the workspace-chats CLI.
var rootCmd = &cobra.Command{
	Use:   "workspace-chats",
	Short: "Read chat history out of editor workspace state databases",
	Long: `workspace-chats extracts question/answer pairs from the interactive
session history an editor keeps in each workspace's state.vscdb file.

Paths are taken as given: pass the state database (or the workspaceStorage
directory for list) explicitly or set it in the config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(loadConfig().Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./workspace-chats.yaml or ~/.config/workspace-chats/config.yaml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	flags.Bool("cache", false, "reuse cached chats for state databases that have not changed")
	flags.String("cache-path", "", "cache file (default: <user cache dir>/workspace-chats/chats.db)")

	bindFlag("log.level", flags.Lookup("log-level"))
	bindFlag("log.format", flags.Lookup("log-format"))
	bindFlag("cache.enabled", flags.Lookup("cache"))
	bindFlag("cache.path", flags.Lookup("cache-path"))

	viper.SetDefault("cache.open_timeout", time.Second)
	viper.SetDefault("export.format", string(types.ExportJSON))
	viper.SetDefault("export.output_dir", ".")
	viper.SetDefault("serve.addr", "127.0.0.1:8765")
	viper.SetDefault("serve.shutdown_timeout", 5*time.Second)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("workspace-chats")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "workspace-chats"))
		}
	}

	viper.SetEnvPrefix("WORKSPACE_CHATS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
