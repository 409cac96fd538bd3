// Package core dispatches the format-agnostic directory/file operations
// (spec §4.7, §4.8) over whichever concrete backend (FAT32 or exFAT) a
// mounted volume turns out to be, shaped from the teacher's
// FATDriverCommon interface but generalized across both on-disk formats.
package core

import (
	"github.com/quietdrive/rofs/fsinfo"
)

// Backend is the uniform read-only surface core/inode consumes, regardless
// of on-disk format.
type Backend interface {
	// RootInfo returns the synthetic file-info record for the volume root
	// (id == fsinfo.RootID).
	RootInfo() fsinfo.FileInfo

	// ListDirectory reduces every entry found in the cluster chain rooted
	// at firstCluster into FileInfo records, in on-disk order.
	ListDirectory(firstCluster uint32) ([]fsinfo.FileInfo, error)

	// ReadRange reads up to len(buf) bytes from fi starting at offset,
	// returning the number of bytes actually copied (0 at or past EOF).
	ReadRange(fi fsinfo.FileInfo, offset int64, buf []byte) (int, error)
}
