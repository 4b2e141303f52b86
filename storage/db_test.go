package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemDBGetMissingReturnsErrNotFound(t *testing.T) {
	db := NewMemDB()
	_, err := db.Get([]byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)
	ok, err := db.Has([]byte("missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemDBBatchInvisibleUntilWrite(t *testing.T) {
	db := NewMemDB()
	batch := db.NewBatch()
	batch.Put([]byte("a"), []byte("1"))
	batch.Put([]byte("b"), []byte("2"))
	require.Equal(t, 2, batch.Len())

	_, err := db.Get([]byte("a"))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, batch.Write())
	got, err := db.Get([]byte("b"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), got)
}

func TestLevelDBBatchPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	db1, err := NewLevelDB(dir)
	require.NoError(t, err)
	batch := db1.NewBatch()
	batch.Put([]byte("key"), []byte("value"))
	require.NoError(t, batch.Write())
	db1.Close()

	db2, err := NewLevelDB(dir)
	require.NoError(t, err)
	defer db2.Close()

	got, err := db2.Get([]byte("key"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)

	_, err = db2.Get([]byte("other"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBoltDBBatchPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	db1, err := NewBoltDB(path)
	require.NoError(t, err)
	batch := db1.NewBatch()
	batch.Put([]byte("a"), []byte("1"))
	batch.Put([]byte("b"), []byte("2"))
	require.Equal(t, 2, batch.Len())

	_, err = db1.Get([]byte("a"))
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, batch.Write())
	db1.Close()

	db2, err := NewBoltDB(path)
	require.NoError(t, err)
	defer db2.Close()

	got, err := db2.Get([]byte("b"))
	require.NoError(t, err)
	require.Equal(t, []byte("2"), got)
	ok, err := db2.Has([]byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = db2.Has([]byte("c"))
	require.NoError(t, err)
	require.False(t, ok)
}
