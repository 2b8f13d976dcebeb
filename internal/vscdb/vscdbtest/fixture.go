// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vscdbtest builds state database fixtures for tests.
package vscdbtest

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// Row is one ItemTable row. A nil Value is stored as NULL.
type Row struct {
	Key   string
	Value any
}

// NewStateDB writes a state.vscdb under a fresh temp directory containing
// an ItemTable with rows inserted in order, and returns its path. The
// table has no uniqueness constraint so tests can store several values
// under one key.
func NewStateDB(t *testing.T, rows ...Row) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.vscdb")
	WriteStateDB(t, path, rows...)
	return path
}

// WriteStateDB creates the ItemTable at path and inserts rows.
func WriteStateDB(t *testing.T, path string, rows ...Row) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ItemTable (key TEXT, value BLOB)`); err != nil {
		t.Fatalf("creating ItemTable: %v", err)
	}
	for _, r := range rows {
		if _, err := db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?)`, r.Key, r.Value); err != nil {
			t.Fatalf("inserting %s: %v", r.Key, err)
		}
	}
}

// Request is a minimal request entry in the shape the editor stores.
type Request struct {
	Question string
	Answer   string
}

// SessionsJSON renders one session holding the given requests in the
// shape stored under interactive.sessions.
func SessionsJSON(t *testing.T, requests ...Request) string {
	t.Helper()
	entries := make([]map[string]any, len(requests))
	for i, r := range requests {
		entries[i] = map[string]any{
			"message":  map[string]any{"text": r.Question},
			"response": []any{map[string]any{"value": r.Answer}},
		}
	}
	data, err := json.Marshal([]any{map[string]any{"requests": entries}})
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
