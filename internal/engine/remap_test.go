package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemapTablePutAllAndGet(t *testing.T) {
	table := NewRemapTable()

	err := table.PutAll("r1", "v4-r1", map[string]string{
		"n1": "v4-n1",
		"n2": "v4-n2",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	entry, ok := table.Get(Key{Instance: "r1", Node: "n1"})
	require.True(t, ok)
	assert.Equal(t, Entry{Instance: "v4-r1", Node: "v4-n1"}, entry)

	_, ok = table.Get(Key{Instance: "r1", Node: "missing"})
	assert.False(t, ok)
}

func TestRemapTableSameNodeIDAcrossInstances(t *testing.T) {
	table := NewRemapTable()

	require.NoError(t, table.PutAll("r1", "v4-r1", map[string]string{"n1": "a"}))
	require.NoError(t, table.PutAll("r2", "v4-r2", map[string]string{"n1": "b"}))

	e1, _ := table.Get(Key{Instance: "r1", Node: "n1"})
	e2, _ := table.Get(Key{Instance: "r2", Node: "n1"})
	assert.NotEqual(t, e1, e2)
}

func TestRemapTableCollision(t *testing.T) {
	table := NewRemapTable()

	require.NoError(t, table.PutAll("r1", "v4-r1", map[string]string{"n1": "a", "n2": "b"}))

	err := table.PutAll("r1", "v4-r1-again", map[string]string{"n2": "c", "n3": "d"})
	require.Error(t, err)

	var collision *RemapCollisionError
	require.True(t, errors.As(err, &collision))
	assert.Equal(t, "r1", collision.Instance)
	assert.Equal(t, "n2", collision.Node)

	// The colliding batch must not be partially applied.
	assert.Equal(t, 2, table.Len())
	_, ok := table.Get(Key{Instance: "r1", Node: "n3"})
	assert.False(t, ok)
}

func TestRemapTableFreeze(t *testing.T) {
	table := NewRemapTable()
	require.NoError(t, table.PutAll("r1", "v4-r1", map[string]string{"n1": "a"}))

	table.Freeze()

	err := table.PutAll("r2", "v4-r2", map[string]string{"n1": "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frozen")

	// Reads still work after freezing.
	_, ok := table.Get(Key{Instance: "r1", Node: "n1"})
	assert.True(t, ok)
	assert.Equal(t, 1, table.Len())
}

func TestRemapTableSnapshot(t *testing.T) {
	table := NewRemapTable()
	require.NoError(t, table.PutAll("r1", "v4-r1", map[string]string{"n1": "a"}))

	snap := table.Snapshot()
	require.Len(t, snap, 1)

	snap[Key{Instance: "r9", Node: "n9"}] = Entry{}
	assert.Equal(t, 1, table.Len(), "snapshot must be a copy")
}
