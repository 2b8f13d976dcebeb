// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes extracted chats to files in JSON, YAML, or Markdown.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/workspace-chats/pkg/types"
)

const defaultName = "chats"

// Extension returns the file extension used for format.
func Extension(format types.ExportFormat) (string, error) {
	switch format {
	case types.ExportJSON, "":
		return ".json", nil
	case types.ExportYAML:
		return ".yaml", nil
	case types.ExportMarkdown:
		return ".md", nil
	default:
		return "", fmt.Errorf("unsupported format %q: use json, yaml, or markdown", format)
	}
}

// Render encodes chats in format. title is used as the Markdown heading.
func Render(chats []types.ChatRecord, format types.ExportFormat, title string) ([]byte, error) {
	if chats == nil {
		chats = []types.ChatRecord{}
	}
	switch format {
	case types.ExportJSON, "":
		data, err := json.MarshalIndent(chats, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	case types.ExportYAML:
		data, err := yaml.Marshal(chats)
		if err != nil {
			return nil, fmt.Errorf("marshaling YAML: %w", err)
		}
		return data, nil
	case types.ExportMarkdown:
		return []byte(markdown(chats, title)), nil
	default:
		_, err := Extension(format)
		return nil, err
	}
}

// Write renders chats and writes them to dir/<name>.<ext>, creating dir
// if needed. It returns the written path.
func Write(dir, name string, chats []types.ChatRecord, format types.ExportFormat) (string, error) {
	ext, err := Extension(format)
	if err != nil {
		return "", err
	}
	data, err := Render(chats, format, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(name)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// FileName turns name into a safe base file name. Path separators and
// characters that are invalid on common filesystems become '-'.
func FileName(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ". -")
	if out == "" {
		return defaultName
	}
	return out
}

func markdown(chats []types.ChatRecord, title string) string {
	if title == "" {
		title = defaultName
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	if len(chats) == 0 {
		b.WriteString("\nNo chat records.\n")
		return b.String()
	}
	for i, c := range chats {
		fmt.Fprintf(&b, "\n## Question %d\n\n%s\n\n### Answer\n\n%s\n", i+1, strings.TrimRight(c.Question, "\n"), strings.TrimRight(c.Answer, "\n"))
	}
	return b.String()
}
