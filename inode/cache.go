// Package inode is the lazily-expanded directory cache sitting between
// core.Backend and the bridge layer, per spec §4.9. It caches reduced
// FileInfo records and child-id lists, never raw cluster data, and tracks
// open counts so a file's info stays pinned while something holds it open.
package inode

import (
	"sync"

	"github.com/quietdrive/rofs/core"
	"github.com/quietdrive/rofs/fsinfo"
)

// Cache is the id-keyed, lazily-populated view over one mounted volume.
// All methods are safe for concurrent use (spec §5: reads may run
// concurrently; the cache serializes its own bookkeeping with a mutex).
type Cache struct {
	backend core.Backend

	mu        sync.Mutex
	infos     map[uint64]fsinfo.FileInfo
	children  map[uint64][]uint64 // populated only for directories already expanded
	expanded  map[uint64]bool
	openCount map[uint64]int
}

// New builds a Cache over backend, seeding only the root entry; every
// other directory is expanded lazily on first ReadDir/Lookup.
func New(backend core.Backend) *Cache {
	root := backend.RootInfo()
	return &Cache{
		backend:   backend,
		infos:     map[uint64]fsinfo.FileInfo{root.ID: root},
		children:  map[uint64][]uint64{},
		expanded:  map[uint64]bool{},
		openCount: map[uint64]int{},
	}
}

// GetInfo returns the cached FileInfo for id, if known.
func (c *Cache) GetInfo(id uint64) (fsinfo.FileInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fi, ok := c.infos[id]
	return fi, ok
}

// expandLocked lists directory id's children from the backend and records
// them, returning the child ids in on-disk order. Caller must hold c.mu.
func (c *Cache) expandLocked(id uint64) ([]uint64, error) {
	if c.expanded[id] {
		return c.children[id], nil
	}

	dir, ok := c.infos[id]
	if !ok {
		return nil, nil
	}

	entries, err := c.backend.ListDirectory(dir.FirstCluster)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(entries))
	for _, e := range entries {
		c.infos[e.ID] = e
		ids = append(ids, e.ID)
	}
	c.children[id] = ids
	c.expanded[id] = true
	return ids, nil
}

// ReadDir returns the FileInfo records of id's children, expanding the
// directory on first access.
func (c *Cache) ReadDir(id uint64) ([]fsinfo.FileInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.expandLocked(id)
	if err != nil {
		return nil, err
	}

	out := make([]fsinfo.FileInfo, 0, len(ids))
	for _, childID := range ids {
		out = append(out, c.infos[childID])
	}
	return out, nil
}

// Lookup finds a child of directory id by exact name match, expanding the
// directory if needed.
func (c *Cache) Lookup(id uint64, name string) (fsinfo.FileInfo, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids, err := c.expandLocked(id)
	if err != nil {
		return fsinfo.FileInfo{}, false, err
	}
	for _, childID := range ids {
		if fi := c.infos[childID]; fi.Name == name {
			return fi, true, nil
		}
	}
	return fsinfo.FileInfo{}, false, nil
}

// Open increments id's open-reference count and returns its current
// FileInfo. The info stays pinned in the cache until a matching Close.
func (c *Cache) Open(id uint64) (fsinfo.FileInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fi, ok := c.infos[id]
	if ok {
		c.openCount[id]++
	}
	return fi, ok
}

// Close decrements id's open-reference count.
func (c *Cache) Close(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openCount[id] > 0 {
		c.openCount[id]--
	}
}

// Read copies up to len(buf) bytes from id's file content at offset,
// delegating the actual cluster I/O to the backend (inode never caches
// raw block data, spec §4.9).
func (c *Cache) Read(id uint64, offset int64, buf []byte) (int, error) {
	c.mu.Lock()
	fi, ok := c.infos[id]
	c.mu.Unlock()
	if !ok {
		return 0, nil
	}
	return c.backend.ReadRange(fi, offset, buf)
}
