// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vscdb reads interactive session history out of an editor's
// workspace state database (state.vscdb), a SQLite key/value table.
// The database is only ever opened read-only.
package vscdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Schema of the editor's state database. Changing any of these breaks
// compatibility with the files the editor writes.
const (
	TableName   = "ItemTable"
	KeyColumn   = "key"
	ValueColumn = "value"
	SessionsKey = "interactive.sessions"
)

const driverName = "sqlite3"

var sessionsQuery = fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, ValueColumn, TableName, KeyColumn)

// ReadSessions returns every value stored under SessionsKey in the state
// database at path, in table order. An absent key yields an empty slice
// and no error. Rows whose value is not text are skipped.
//
// A missing path is reported before any connection is attempted. The
// connection is closed before ReadSessions returns.
func ReadSessions(ctx context.Context, path string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := CheckPath(path); err != nil {
		return nil, err
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, &Error{Kind: KindOpen, Path: path, Err: err}
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, &Error{Kind: KindOpen, Path: path, Err: err}
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, &Error{Kind: KindOpen, Path: path, Err: err}
	}

	stmt, err := db.PrepareContext(ctx, sessionsQuery)
	if err != nil {
		return nil, &Error{Kind: KindPrepare, Path: path, Err: err}
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, SessionsKey)
	if err != nil {
		return nil, &Error{Kind: KindQuery, Path: path, Err: err}
	}
	defer rows.Close()

	values := []string{}
	row := 0
	for rows.Next() {
		row++
		var raw any
		if err := rows.Scan(&raw); err != nil {
			logger.Debug("skipping unreadable row", zap.Int("row", row), zap.Error(err))
			continue
		}
		value, ok := asText(raw)
		if !ok {
			logger.Debug("skipping non-text row", zap.Int("row", row), zap.String("type", fmt.Sprintf("%T", raw)))
			continue
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Kind: KindQuery, Path: path, Err: err}
	}

	logger.Debug("read session rows",
		zap.String("path", path),
		zap.Int("rows", row),
		zap.Int("values", len(values)),
	)
	return values, nil
}

// asText converts a scanned column to a string. The driver returns TEXT
// as string or []byte depending on the declared column type; anything
// else, and bytes that are not valid UTF-8, cannot be read as text.
func asText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		if !utf8.Valid(t) {
			return "", false
		}
		return string(t), true
	default:
		return "", false
	}
}

// readOnlyDSN builds a SQLite URI that opens path read-only. The path is
// made absolute and percent-escaped so names containing '?', '#', or
// spaces survive URI parsing.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String(), nil
}
