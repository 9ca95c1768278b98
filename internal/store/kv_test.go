package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.db")
	d, err := sql.Open("sqlite", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", path))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	_, err = d.Exec(`
		CREATE TABLE records (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	require.NoError(t, err)

	return NewKV(d)
}

func TestKVGetMissing(t *testing.T) {
	kv := openTestKV(t)

	_, ok, err := kv.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVSetGet(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "wardrobe_items", `[{"id":"a"}]`))

	value, ok, err := kv.Get(ctx, "wardrobe_items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, value)
}

func TestKVSetOverwrites(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "first"))
	require.NoError(t, kv.Set(ctx, "k", "second"))

	value, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestKVDelete(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v"))
	require.NoError(t, kv.Delete(ctx, "k"))

	_, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	assert.NoError(t, kv.Delete(ctx, "k"))
}

func TestVersionStamping(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	v, err := Version(ctx, kv)
	require.NoError(t, err)
	assert.Zero(t, v)

	require.NoError(t, InitializeVersion(ctx, kv))

	v, err = Version(ctx, kv)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, v)
}

func TestVersionMalformed(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyVersion, "not-a-number"))

	v, err := Version(ctx, kv)
	require.NoError(t, err)
	assert.Zero(t, v)
}
