// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/workspace-chats/internal/vscdb"
	"github.com/pdiddy/workspace-chats/internal/vscdb/vscdbtest"
)

// execute runs the CLI with args. Flags keep their values between runs,
// so every test passes the flags it depends on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func fixture(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "a1b2c3")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "state.vscdb")
	vscdbtest.WriteStateDB(t, path, vscdbtest.Row{
		Key: vscdb.SessionsKey,
		Value: vscdbtest.SessionsJSON(t,
			vscdbtest.Request{Question: "Q1", Answer: "A1"},
			vscdbtest.Request{Question: "Q2", Answer: "A2"},
		),
	})
	return path
}

func TestReadCommand(t *testing.T) {
	path := fixture(t)

	out, err := execute(t, "read", "--cache=false", "--format", "json", path)
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`+"\n", out)

	out, err = execute(t, "read", "--cache=false", "--format", "table", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Q2")
	assert.Contains(t, out, "2 chats")
}

func TestReadCommandMissingFile(t *testing.T) {
	_, err := execute(t, "read", "--cache=false", "--format", "json", filepath.Join(t.TempDir(), "none.vscdb"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}

func TestReadCommandWithCache(t *testing.T) {
	path := fixture(t)
	cachePath := filepath.Join(t.TempDir(), "chats.db")

	for i := 0; i < 2; i++ {
		out, err := execute(t, "read", "--cache", "--cache-path", cachePath, "--format", "json", path)
		require.NoError(t, err)
		assert.Equal(t, `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`+"\n", out)
	}

	out, err := execute(t, "cache", "list", "--cache-path", cachePath)
	require.NoError(t, err)
	assert.Contains(t, out, "2 chats")
	assert.Contains(t, out, "1 cached")

	out, err = execute(t, "cache", "clear", "--cache-path", cachePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared.")
}

func TestExportCommand(t *testing.T) {
	path := fixture(t)
	outDir := t.TempDir()

	out, err := execute(t, "export", "--cache=false", "--out", outDir, "--format", "markdown", "--name", "", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 chats")

	data, err := os.ReadFile(filepath.Join(outDir, "a1b2c3.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Question 2")
}

func TestListCommand(t *testing.T) {
	path := fixture(t)
	storage := filepath.Dir(filepath.Dir(path))

	out, err := execute(t, "list", "--all=false", "--json=false", storage)
	require.NoError(t, err)
	assert.Contains(t, out, "a1b2c3")
	assert.Contains(t, out, "1 workspaces")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "workspace-chats dev\n", out)
}
