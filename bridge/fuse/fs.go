//go:build linux
// +build linux

// Package fuse is the thin bazil.org/fuse adapter mounting a core.Backend
// (via inode.Cache) as a read-only kernel filesystem, grounded on
// ostafen-digler's internal/fuse/fuse.go shape but reading through the
// inode cache instead of a flat offset/size map.
package fuse

import (
	"context"
	"os"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"

	"github.com/quietdrive/rofs/bridge"
	"github.com/quietdrive/rofs/fsinfo"
	"github.com/quietdrive/rofs/inode"
)

// FS is the root of the mounted, read-only file system.
type FS struct {
	cache *inode.Cache
	// blockSize is the volume's bytes-per-cluster, used only to size
	// reported block counts in Attr.
	blockSize int64
}

// New builds a FUSE-mountable FS over cache.
func New(cache *inode.Cache, blockSize int64) *FS {
	return &FS{cache: cache, blockSize: blockSize}
}

// Root returns the root directory node.
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, id: fsinfo.RootID}, nil
}

// Dir implements fs.Node, fs.HandleReadDirAller, and fs.NodeStringLookuper
// for one directory.
type Dir struct {
	fs *FS
	id uint64
}

// Attr fills a fills a directory's FUSE attributes.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	fi, ok := d.fs.cache.GetInfo(d.id)
	if !ok {
		return fuse.ENOENT
	}
	stat := bridge.StatFromFileInfo(fi, d.fs.blockSize)
	a.Inode = stat.InodeNumber
	a.Mode = os.ModeDir | 0555
	a.Mtime = stat.LastModified
	a.Atime = stat.LastAccessed
	a.Crtime = stat.CreatedAt
	return nil
}

// Lookup resolves one path component under this directory.
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	fi, found, err := d.fs.cache.Lookup(d.id, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fuse.ENOENT
	}
	if fi.IsDir {
		return &Dir{fs: d.fs, id: fi.ID}, nil
	}
	return &File{fs: d.fs, id: fi.ID}, nil
}

// ReadDirAll lists this directory's children.
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	entries, err := d.fs.cache.ReadDir(d.id)
	if err != nil {
		return nil, err
	}

	out := make([]fuse.Dirent, 0, len(entries))
	for _, e := range entries {
		dtype := fuse.DT_File
		if e.IsDir {
			dtype = fuse.DT_Dir
		}
		out = append(out, fuse.Dirent{Inode: e.ID, Name: e.Name, Type: dtype})
	}
	return out, nil
}

// File implements fs.Node and fs.HandleReader for one regular file.
type File struct {
	fs *FS
	id uint64
}

// Attr fills a file's FUSE attributes.
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	fi, ok := f.fs.cache.GetInfo(f.id)
	if !ok {
		return fuse.ENOENT
	}
	stat := bridge.StatFromFileInfo(fi, f.fs.blockSize)
	a.Inode = stat.InodeNumber
	a.Mode = 0444
	a.Size = uint64(stat.Size)
	a.Mtime = stat.LastModified
	a.Atime = stat.LastAccessed
	a.Crtime = stat.CreatedAt
	return nil
}

// Read services one FUSE read request by delegating to the inode cache,
// which in turn walks the backend's cluster chain for this file (spec
// §4.8).
func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	buf := make([]byte, req.Size)
	n, err := f.fs.cache.Read(f.id, req.Offset, buf)
	if err != nil {
		return err
	}
	resp.Data = buf[:n]
	return nil
}
