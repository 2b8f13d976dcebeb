// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/workspace-chats/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chats and workspace listings over HTTP",
	Long: `Serve starts a local HTTP bridge for a host UI:

  GET /health
  GET /api/v1/chats?path=<state.vscdb>
  GET /api/v1/workspaces?dir=<workspaceStorage>[&with_state=true]
  GET /metrics

Each request opens its own read-only connection to the state database.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	reader, closeReader, err := newReader(cfg)
	if err != nil {
		return err
	}
	defer closeReader()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(reader, logger, cfg.Serve).Start(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8765", "listen address")
	bindFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}
