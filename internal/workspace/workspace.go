// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workspace enumerates an editor's workspaceStorage directory.
// Each subdirectory belongs to one opened folder or workspace file and may
// hold a state.vscdb database.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/workspace-chats/internal/vscdb"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

const (
	// StateFile is the state database inside a workspace directory.
	StateFile = "state.vscdb"

	metaFile = "workspace.json"
)

// List returns the entries of storageDir sorted by name. Plain files are
// included with IsDirectory false so callers can show or filter them.
func List(storageDir string) ([]types.Workspace, error) {
	entries, err := os.ReadDir(storageDir)
	if err != nil {
		return nil, fmt.Errorf("reading workspace storage %s: %w", storageDir, err)
	}

	workspaces := make([]types.Workspace, 0, len(entries))
	for _, entry := range entries {
		ws := types.Workspace{
			Name:        entry.Name(),
			IsDirectory: entry.IsDir(),
		}
		if entry.IsDir() {
			dir := filepath.Join(storageDir, entry.Name())
			ws.Folder = readFolder(dir)
			if state := filepath.Join(dir, StateFile); vscdb.Exists(state) {
				ws.StatePath = state
			}
		}
		workspaces = append(workspaces, ws)
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].Name < workspaces[j].Name
	})
	return workspaces, nil
}

// WithState filters workspaces down to those that have a state database.
func WithState(workspaces []types.Workspace) []types.Workspace {
	out := make([]types.Workspace, 0, len(workspaces))
	for _, ws := range workspaces {
		if ws.HasState() {
			out = append(out, ws)
		}
	}
	return out
}

// readFolder returns the folder (or workspace file) URI recorded in
// dir/workspace.json, or "" when it cannot be read.
func readFolder(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, metaFile))
	if err != nil || !gjson.ValidBytes(data) {
		return ""
	}
	meta := gjson.ParseBytes(data)
	for _, key := range []string{"folder", "workspace"} {
		if v := meta.Get(key); v.Type == gjson.String {
			return v.Str
		}
	}
	return ""
}
