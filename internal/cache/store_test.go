package cache

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyStable(t *testing.T) {
	a, err := Key("GetContacts", "q", map[string]any{"b": 1, "a": "x"})
	require.NoError(t, err)
	b, err := Key("GetContacts", "q", map[string]any{"a": "x", "b": 1})
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Key("GetContacts", "q", map[string]any{"a": "y", "b": 1})
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	d, err := Key("GetContacts", "q2", nil)
	require.NoError(t, err)
	require.Contains(t, d, "GetContacts:")
}

func TestEntryFresh(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := Entry{StoredAt: now.Add(-time.Minute)}
	require.True(t, e.Fresh(now, 5*time.Minute))
	require.False(t, e.Fresh(now, 30*time.Second))
	require.True(t, e.Fresh(now, 0))
}

func TestMemoryEvicts(t *testing.T) {
	ctx := context.Background()
	m, err := NewMemory(2)
	require.NoError(t, err)
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, m.Put(ctx, Entry{Key: k}))
	}
	require.Equal(t, 2, m.Len())
	_, ok, _ := m.Get(ctx, "a")
	require.False(t, ok, "oldest entry should be evicted")

	require.NoError(t, m.Purge(ctx))
	require.Equal(t, 0, m.Len())
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache", "responses.db")

	s, err := OpenSQLite(path, 8)
	require.NoError(t, err)
	stored := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, Entry{
		Key:       "GetContacts:abc",
		Operation: "GetContacts",
		Data:      json.RawMessage(`{"contacts":[]}`),
		StoredAt:  stored,
	}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	e, ok, err := s.Get(ctx, "GetContacts:abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "GetContacts", e.Operation)
	require.JSONEq(t, `{"contacts":[]}`, string(e.Data))
	require.True(t, e.StoredAt.Equal(stored))

	_, ok, err = s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteUpsertAndPurge(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "responses.db"), 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Put(ctx, Entry{Key: "k", Operation: "Op", Data: json.RawMessage(`1`), StoredAt: time.Now()}))
	require.NoError(t, s.Put(ctx, Entry{Key: "k", Operation: "Op", Data: json.RawMessage(`2`), StoredAt: time.Now()}))

	e, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", string(e.Data))

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM responses`).Scan(&n))
	require.Equal(t, 1, n)

	require.NoError(t, s.Purge(ctx))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}
