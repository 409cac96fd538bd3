package bridge

import (
	"os"
	"time"

	"github.com/quietdrive/rofs/fsinfo"
)

// FileStat is a platform-independent form of syscall.Stat_t, adapted from
// the teacher's api.go FileStat, trimmed to inode number, mode, size,
// block size and count, and the three timestamps (Uid/Gid/Nlinks,
// DeletedAt and Rdev are not carried).
type FileStat struct {
	InodeNumber  uint64
	ModeFlags    os.FileMode
	Size         int64
	BlockSize    int64
	NumBlocks    int64
	CreatedAt    time.Time
	LastAccessed time.Time
	LastModified time.Time
}

// IsDir reports whether stat describes a directory.
func (stat *FileStat) IsDir() bool { return stat.ModeFlags.IsDir() }

// IsFile reports whether stat describes a regular file.
func (stat *FileStat) IsFile() bool { return stat.ModeFlags.IsRegular() }

// FSStat is a platform-independent form of syscall.Statfs_t, trimmed to
// the read-only fields a mounted FAT32/exFAT volume can report.
type FSStat struct {
	BlockSize     int64
	TotalBlocks   uint64
	Files         uint64
	MaxNameLength int64
	Label         string
}

// StatFromFileInfo converts a fsinfo.FileInfo into a FileStat, per spec
// §4.9/§7. blockSize is the volume's bytes-per-cluster, used to derive
// NumBlocks.
func StatFromFileInfo(fi fsinfo.FileInfo, blockSize int64) FileStat {
	mode := os.FileMode(0)
	if fi.IsDir {
		mode = os.ModeDir | 0555
	} else {
		mode = 0444
	}
	if fi.IsReadOnly {
		mode &^= 0222
	}

	numBlocks := int64(0)
	if blockSize > 0 {
		numBlocks = (int64(fi.Size) + blockSize - 1) / blockSize
	}

	return FileStat{
		InodeNumber:  fi.ID,
		ModeFlags:    mode,
		Size:         int64(fi.Size),
		BlockSize:    blockSize,
		NumBlocks:    numBlocks,
		CreatedAt:    fi.CreateTime,
		LastAccessed: fi.AccessTime,
		LastModified: fi.WriteTime,
	}
}
