// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/workspace-chats/internal/cache"
	"github.com/pdiddy/workspace-chats/internal/vscdb"
	"github.com/pdiddy/workspace-chats/internal/vscdb/vscdbtest"
	"github.com/pdiddy/workspace-chats/pkg/types"
)

func sessionsRow(t *testing.T, reqs ...vscdbtest.Request) vscdbtest.Row {
	return vscdbtest.Row{Key: vscdb.SessionsKey, Value: vscdbtest.SessionsJSON(t, reqs...)}
}

func TestReadJSONPreservesOrder(t *testing.T) {
	path := vscdbtest.NewStateDB(t, vscdbtest.Row{
		Key:   vscdb.SessionsKey,
		Value: `[{"requests":[{"message":{"text":"Q1"},"response":[{"value":"A1"}]},{"message":{"text":"Q2"},"response":[{"value":"A2"}]}]}]`,
	})

	got, err := NewReader(nil, nil).ReadJSON(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`, got)
}

func TestReadJSONAcrossRows(t *testing.T) {
	path := vscdbtest.NewStateDB(t,
		sessionsRow(t, vscdbtest.Request{Question: "Q1", Answer: "A1"}),
		vscdbtest.Row{Key: vscdb.SessionsKey, Value: "{{ not json"},
		vscdbtest.Row{Key: "unrelated", Value: "x"},
		sessionsRow(t, vscdbtest.Request{Question: "Q2", Answer: "A2"}, vscdbtest.Request{Question: "Q3", Answer: "A3"}),
	)

	got, err := NewReader(nil, nil).Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []types.ChatRecord{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
		{Question: "Q3", Answer: "A3"},
	}, got)
}

func TestReadJSONKeyAbsent(t *testing.T) {
	path := vscdbtest.NewStateDB(t, vscdbtest.Row{Key: "workbench.sideBar", Value: "{}"})

	got, err := NewReader(nil, nil).ReadJSON(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestReadJSONIsIdempotent(t *testing.T) {
	path := vscdbtest.NewStateDB(t, sessionsRow(t,
		vscdbtest.Request{Question: "How do I <b>bold</b> & more?", Answer: "Use **text**"},
		vscdbtest.Request{Question: "Q2", Answer: "A2"},
	))
	r := NewReader(nil, nil)

	first, err := r.ReadJSON(context.Background(), path)
	require.NoError(t, err)
	second, err := r.ReadJSON(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.vscdb")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	tests := []struct {
		name   string
		path   string
		kind   vscdb.Kind
		prefix string
	}{
		{"missing file", filepath.Join(dir, "missing.vscdb"), vscdb.KindNotExist, "file does not exist"},
		{"empty path", "", vscdb.KindNotExist, "file does not exist"},
		{"file without ItemTable", empty, vscdb.KindPrepare, "query preparation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader(nil, nil).ReadJSON(context.Background(), tt.path)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.Equal(t, tt.kind, vscdb.KindOf(err))
			assert.Contains(t, err.Error(), tt.prefix)
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name  string
		chats []types.ChatRecord
		want  string
	}{
		{"nil", nil, "[]"},
		{"empty", []types.ChatRecord{}, "[]"},
		{
			"html is not escaped",
			[]types.ChatRecord{{Question: "a < b && c > d", Answer: `say "hi"`}},
			`[{"question":"a < b && c > d","answer":"say \"hi\""}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.chats)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadUsesCacheForUnchangedFile(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"), 0)
	require.NoError(t, err)
	defer c.Close()

	path := vscdbtest.NewStateDB(t, sessionsRow(t, vscdbtest.Request{Question: "Q1", Answer: "A1"}))
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	r := NewReader(nil, c)
	r.now = func() time.Time { return stamp.Add(time.Hour) }

	got, err := r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []types.ChatRecord{{Question: "Q1", Answer: "A1"}}, got)

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	entry, ok, err := c.Get(abs)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, entry.LastUpdated.Equal(stamp.Add(time.Hour)))
	assert.True(t, entry.SourceModTime.Equal(stamp))

	// Add a row but keep the modification time: the snapshot is reused.
	vscdbtest.WriteStateDB(t, path, sessionsRow(t, vscdbtest.Request{Question: "Q2", Answer: "A2"}))
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	got, err = r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []types.ChatRecord{{Question: "Q1", Answer: "A1"}}, got)

	// A newer modification time invalidates it.
	later := stamp.Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	got, err = r.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []types.ChatRecord{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}, got)
}

func TestReadWithCacheStillReportsMissingFile(t *testing.T) {
	c, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"), 0)
	require.NoError(t, err)
	defer c.Close()

	path := vscdbtest.NewStateDB(t, sessionsRow(t, vscdbtest.Request{Question: "Q", Answer: "A"}))
	r := NewReader(nil, c)
	_, err = r.Read(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = r.Read(context.Background(), path)
	assert.True(t, errors.Is(err, vscdb.ErrNotExist))
}
