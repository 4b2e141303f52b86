package state

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"connectsphere/storage"
)

type record struct {
	Owner  [20]byte
	Amount *big.Int
	Active bool
}

func TestOverlayWritesInvisibleUntilCommit(t *testing.T) {
	db := storage.NewMemDB()
	root := NewManager(db)

	tx := root.Begin()
	require.NoError(t, tx.KVPut([]byte("k"), &record{Amount: big.NewInt(7), Active: true}))

	var got record
	ok, err := tx.KVGet([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(7), got.Amount.Int64())

	ok, err = root.KVGet([]byte("k"), &got)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, tx.Commit())
	ok, err = root.KVGet([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, got.Active)
}

func TestOverlayDiscardLeavesStateUntouched(t *testing.T) {
	root := NewManager(storage.NewMemDB())
	require.NoError(t, root.KVPut([]byte("k"), uint64(1)))

	tx := root.Begin()
	require.NoError(t, tx.KVPut([]byte("k"), uint64(2)))
	tx.Discard()

	var got uint64
	ok, err := root.KVGet([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), got)

	require.Error(t, tx.KVPut([]byte("k"), uint64(3)))
}

func TestNestedOverlayCommitsIntoParent(t *testing.T) {
	root := NewManager(storage.NewMemDB())
	outer := root.Begin()
	inner := outer.Begin()
	require.NoError(t, inner.KVPut([]byte("k"), uint64(9)))
	require.NoError(t, inner.Commit())
	require.Equal(t, 1, outer.Pending())

	var got uint64
	ok, err := root.KVGet([]byte("k"), &got)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, outer.Commit())
	ok, err = root.KVGet([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(9), got)
}

func TestRolesGrantRevoke(t *testing.T) {
	root := NewManager(storage.NewMemDB())
	a := []byte{0x01}
	b := []byte{0x02}

	require.NoError(t, root.SetRole("moderator", b))
	require.NoError(t, root.SetRole("moderator", a))
	require.NoError(t, root.SetRole("moderator", a))

	members, err := root.RoleMembers("moderator")
	require.NoError(t, err)
	require.Equal(t, [][]byte{a, b}, members)
	require.True(t, root.HasRole("moderator", a))
	require.False(t, root.HasRole("validator", a))

	require.NoError(t, root.RevokeRole("moderator", a))
	require.False(t, root.HasRole("moderator", a))
	require.True(t, root.HasRole("moderator", b))
	require.Error(t, root.SetRole(" ", a))
}

func TestPauseFlags(t *testing.T) {
	root := NewManager(storage.NewMemDB())
	require.False(t, root.IsPaused("content"))
	require.NoError(t, root.SetPaused("Content", true))
	require.True(t, root.IsPaused("content"))
	require.NoError(t, root.SetPaused("content", false))
	require.False(t, root.IsPaused("content"))
}

func TestKVAppendAndList(t *testing.T) {
	root := NewManager(storage.NewMemDB())
	require.NoError(t, root.KVAppend([]byte("idx"), []byte{1}))
	require.NoError(t, root.KVAppend([]byte("idx"), []byte{2}))
	require.NoError(t, root.KVAppend([]byte("idx"), []byte{1}))

	var list [][]byte
	require.NoError(t, root.KVGetList([]byte("idx"), &list))
	require.Equal(t, [][]byte{{1}, {2}}, list)

	var empty [][]byte
	require.NoError(t, root.KVGetList([]byte("missing"), &empty))
	require.NotNil(t, empty)
	require.Len(t, empty, 0)
}
