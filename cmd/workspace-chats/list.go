// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/workspace-chats/internal/workspace"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list [workspaceStorage dir]",
	Short: "List workspaces in an editor workspaceStorage directory",
	Long: `List shows each workspace directory under workspaceStorage, the folder
it belongs to, and whether it has a state database. The directory comes
from the argument, --storage-dir, or storage_dir in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	dir := loadConfig().StorageDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("workspaceStorage directory required: pass it as an argument or set --storage-dir")
	}

	workspaces, err := workspace.List(dir)
	if err != nil {
		return err
	}
	if all, _ := cmd.Flags().GetBool("all"); !all {
		workspaces = workspace.WithState(workspaces)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(workspaces)
	}
	return formatWorkspaceTable(cmd.OutOrStdout(), workspaces)
}

func formatWorkspaceTable(w io.Writer, workspaces []types.Workspace) error {
	if len(workspaces) == 0 {
		_, err := fmt.Fprintln(w, "No workspaces found.")
		return err
	}

	fmt.Fprintf(w, "%-34s  %-5s  %s\n", "Name", "State", "Folder")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, ws := range workspaces {
		state := "no"
		if ws.HasState() {
			state = "yes"
		}
		fmt.Fprintf(w, "%-34s  %-5s  %s\n", truncate(ws.Name, 34), state, ws.Folder)
	}
	_, err := fmt.Fprintf(w, "\n%d workspaces\n", len(workspaces))
	return err
}

func init() {
	listCmd.Flags().String("storage-dir", "", "editor workspaceStorage directory")
	listCmd.Flags().Bool("all", false, "include entries without a state database")
	listCmd.Flags().Bool("json", false, "output workspaces as JSON")
	bindFlag("storage_dir", listCmd.Flags().Lookup("storage-dir"))

	rootCmd.AddCommand(listCmd)
}
