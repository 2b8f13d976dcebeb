// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history runs the read pipeline for one workspace state database:
// validate the path, read the stored session values, extract chats, and
// serialize them for the host.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/workspace-chats/internal/cache"
	"github.com/pdiddy/workspace-chats/internal/extract"
	"github.com/pdiddy/workspace-chats/internal/vscdb"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

// Reader reads chats from state databases. The zero value is not usable;
// construct with NewReader.
type Reader struct {
	logger *zap.Logger
	cache  *cache.Cache
	now    func() time.Time
}

// NewReader returns a Reader. A nil logger discards logs. A nil cache
// disables snapshot reuse.
func NewReader(logger *zap.Logger, c *cache.Cache) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger, cache: c, now: time.Now}
}

// Read returns the chats stored in the state database at path, in store
// order. Only path, open, and query failures are returned; malformed rows
// and entries are skipped.
func (r *Reader) Read(ctx context.Context, path string) ([]types.ChatRecord, error) {
	if err := vscdb.CheckPath(path); err != nil {
		return nil, err
	}

	if r.cache == nil {
		return r.readStore(ctx, path)
	}

	key, modTime, err := sourceState(path)
	if err != nil {
		r.logger.Warn("cannot stat state database, bypassing cache", zap.String("path", path), zap.Error(err))
		return r.readStore(ctx, path)
	}

	entry, ok, err := r.cache.Get(key)
	if err != nil {
		r.logger.Warn("cache read failed", zap.String("path", key), zap.Error(err))
	}
	if ok && entry.SourceModTime.Equal(modTime) {
		r.logger.Debug("using cached chats",
			zap.String("path", key),
			zap.Time("last_updated", entry.LastUpdated),
			zap.Int("records", len(entry.Chats)),
		)
		return entry.Chats, nil
	}

	chats, err := r.readStore(ctx, path)
	if err != nil {
		return nil, err
	}
	snapshot := types.CachedChats{Chats: chats, LastUpdated: r.now().UTC(), SourceModTime: modTime}
	if err := r.cache.Put(key, snapshot); err != nil {
		r.logger.Warn("cache write failed", zap.String("path", key), zap.Error(err))
	}
	return chats, nil
}

// ReadJSON runs Read and serializes the result.
func (r *Reader) ReadJSON(ctx context.Context, path string) (string, error) {
	chats, err := r.Read(ctx, path)
	if err != nil {
		return "", err
	}
	return Serialize(chats)
}

func (r *Reader) readStore(ctx context.Context, path string) ([]types.ChatRecord, error) {
	values, err := vscdb.ReadSessions(ctx, path, r.logger)
	if err != nil {
		return nil, err
	}
	chats, stats := extract.ExtractAll(values)
	r.logger.Debug("extracted chats",
		zap.String("path", path),
		zap.Int("values", stats.Values),
		zap.Int("malformed", stats.Malformed),
		zap.Int("skipped_entries", stats.SkippedEntries),
		zap.Int("records", stats.Records),
	)
	return chats, nil
}

// Serialize encodes chats as a compact JSON array of {question, answer}
// objects. Nil encodes as []. HTML characters are not escaped.
func Serialize(chats []types.ChatRecord) (string, error) {
	if chats == nil {
		chats = []types.ChatRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(chats); err != nil {
		return "", &vscdb.Error{Kind: vscdb.KindSerialize, Err: err}
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// sourceState returns the cache key and the effective modification time
// of the database at path. A newer write-ahead log counts as a change.
func sourceState(path string) (string, time.Time, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", time.Time{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", time.Time{}, err
	}
	mod := info.ModTime()
	if wal, err := os.Stat(abs + "-wal"); err == nil && wal.ModTime().After(mod) {
		mod = wal.ModTime()
	}
	return abs, mod.UTC(), nil
}
