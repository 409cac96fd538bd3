package inode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdrive/rofs/fsinfo"
)

type fakeBackend struct {
	root fsinfo.FileInfo
	dirs map[uint32][]fsinfo.FileInfo
}

func (f *fakeBackend) RootInfo() fsinfo.FileInfo { return f.root }

func (f *fakeBackend) ListDirectory(firstCluster uint32) ([]fsinfo.FileInfo, error) {
	return f.dirs[firstCluster], nil
}

func (f *fakeBackend) ReadRange(fi fsinfo.FileInfo, offset int64, buf []byte) (int, error) {
	return 0, nil
}

func TestCacheLazyExpansionAndLookup(t *testing.T) {
	root := fsinfo.FileInfo{ID: fsinfo.RootID, Name: "/", IsDir: true, FirstCluster: 2}
	child := fsinfo.FileInfo{ID: fsinfo.MakeID(2, 0), Name: "foo.txt", Size: 5}
	backend := &fakeBackend{
		root: root,
		dirs: map[uint32][]fsinfo.FileInfo{2: {child}},
	}

	c := New(backend)

	entries, err := c.ReadDir(fsinfo.RootID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foo.txt", entries[0].Name)

	found, ok, err := c.Lookup(fsinfo.RootID, "foo.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, child.ID, found.ID)

	_, ok, err = c.Lookup(fsinfo.RootID, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheOpenCloseRefcount(t *testing.T) {
	root := fsinfo.FileInfo{ID: fsinfo.RootID, Name: "/", IsDir: true, FirstCluster: 2}
	backend := &fakeBackend{root: root, dirs: map[uint32][]fsinfo.FileInfo{}}
	c := New(backend)

	fi, ok := c.Open(fsinfo.RootID)
	require.True(t, ok)
	assert.Equal(t, fsinfo.RootID, fi.ID)
	c.Close(fsinfo.RootID)

	_, ok = c.Open(999)
	assert.False(t, ok)
}
