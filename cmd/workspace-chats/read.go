// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/workspace-chats/internal/export"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

var readCmd = &cobra.Command{
	Use:   "read <state.vscdb>",
	Short: "Print the chats stored in a workspace state database",
	Long: `Read opens a workspace state database read-only, extracts every
question/answer pair from its interactive session history, and prints them.

The default json format prints a compact JSON array of {question, answer}
objects, identical on every run against an unchanged file.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func runRead(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg := loadConfig()

	reader, closeReader, err := newReader(cfg)
	if err != nil {
		return err
	}
	defer closeReader()

	out := cmd.OutOrStdout()
	if format == "json" {
		body, err := reader.ReadJSON(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, body)
		return err
	}

	chats, err := reader.Read(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch format {
	case "table":
		return formatChatTable(out, chats)
	case "yaml", "markdown":
		data, err := export.Render(chats, types.ExportFormat(format), args[0])
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use json, table, yaml, or markdown", format)
	}
}

func formatChatTable(w io.Writer, chats []types.ChatRecord) error {
	if len(chats) == 0 {
		_, err := fmt.Fprintln(w, "No chat records.")
		return err
	}

	fmt.Fprintf(w, "%-4s  %-50s  %s\n", "#", "Question", "Answer")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, c := range chats {
		fmt.Fprintf(w, "%-4d  %-50s  %s\n", i+1, truncate(c.Question, 50), truncate(c.Answer, 52))
	}
	_, err := fmt.Fprintf(w, "\n%d chats\n", len(chats))
	return err
}

// truncate shortens s to at most n runes on a single line.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	readCmd.Flags().String("format", "json", "output format: json, table, yaml, or markdown")

	rootCmd.AddCommand(readCmd)
}
