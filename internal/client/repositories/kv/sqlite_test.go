package kv

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

// tickingClock advances one second per call so write order is observable.
func tickingClock() func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", `{"a":1}`))

	v, ok, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestSet_UpsertRefreshesTimestamp(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t)).WithClock(tickingClock())
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "old"))
	require.NoError(t, r.Set(ctx, "b", "x"))
	require.NoError(t, r.Set(ctx, "a", "new"))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Key, "b is now the oldest write")
	assert.Equal(t, "a", list[1].Key)

	v, _, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestListAndUsage_CountBytes(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t)).WithClock(tickingClock())
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "ab", "1234"))
	require.NoError(t, r.Set(ctx, "é", "ü"))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, EntrySize("ab", "1234"), list[0].Size)
	assert.Equal(t, EntrySize("é", "ü"), list[1].Size)
	assert.Equal(t, int64(4), list[1].Size, "sizes are utf-8 bytes")

	usage, err := r.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), usage)
}

func TestUsage_EmptyTier(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	usage, err := r.Usage(context.Background())
	require.NoError(t, err)
	assert.Zero(t, usage)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", "1"))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	_, ok, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, r.Set(ctx, "k", "v"), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")

	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")

	_, err = r.Usage(ctx)
	require.ErrorContains(t, err, "failed to compute kv usage")
}
