// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/workspace-chats/pkg/types"
)

var sampleChats = []types.ChatRecord{
	{Question: "What is a goroutine?", Answer: "A lightweight thread."},
	{Question: "Q2", Answer: "A2\n"},
}

func TestWriteJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := Write(dir, "api", sampleChats, types.ExportJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "api.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []types.ChatRecord
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleChats, got)
}

func TestWriteYAML(t *testing.T) {
	path, err := Write(t.TempDir(), "api", sampleChats, types.ExportYAML)
	require.NoError(t, err)
	assert.Equal(t, ".yaml", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []types.ChatRecord
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, sampleChats, got)
}

func TestRenderMarkdown(t *testing.T) {
	data, err := Render(sampleChats, types.ExportMarkdown, "api")
	require.NoError(t, err)
	assert.Equal(t, "# api\n"+
		"\n## Question 1\n\nWhat is a goroutine?\n\n### Answer\n\nA lightweight thread.\n"+
		"\n## Question 2\n\nQ2\n\n### Answer\n\nA2\n", string(data))
}

func TestRenderEmpty(t *testing.T) {
	tests := []struct {
		format types.ExportFormat
		want   string
	}{
		{types.ExportJSON, "[]\n"},
		{types.ExportYAML, "[]\n"},
		{types.ExportMarkdown, "# chats\n\nNo chat records.\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			data, err := Render(nil, tt.format, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Write(t.TempDir(), "x", sampleChats, "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"api", "api"},
		{"  a/b\\c:d  ", "a-b-c-d"},
		{"../..", "chats"},
		{"", "chats"},
		{"what?*", "what"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.in), "input %q", tt.in)
	}
}
