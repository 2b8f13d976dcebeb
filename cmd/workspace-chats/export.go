// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/workspace-chats/internal/export"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <state.vscdb>",
	Short: "Write the chats of a workspace state database to a file",
	Long: `Export reads a workspace state database and writes its chats to
<out>/<name>.<ext> as JSON, YAML, or Markdown. The name defaults to the
workspace directory holding the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(filepath.Dir(args[0]))
	}

	if _, err := export.Extension(cfg.Export.Format); err != nil {
		return err
	}

	reader, closeReader, err := newReader(cfg)
	if err != nil {
		return err
	}
	defer closeReader()

	chats, err := reader.Read(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	path, err := export.Write(cfg.Export.OutputDir, name, chats, cfg.Export.Format)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d chats to %s\n", len(chats), path)
	return nil
}

func init() {
	exportCmd.Flags().String("out", ".", "directory to write the export file to")
	exportCmd.Flags().String("format", string(types.ExportJSON), "export format: json, yaml, or markdown")
	exportCmd.Flags().String("name", "", "export file name without extension (default: workspace directory name)")
	bindFlag("export.output_dir", exportCmd.Flags().Lookup("out"))
	bindFlag("export.format", exportCmd.Flags().Lookup("format"))

	rootCmd.AddCommand(exportCmd)
}
