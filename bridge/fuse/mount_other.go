//go:build !linux
// +build !linux

package fuse

import (
	"fmt"

	"github.com/quietdrive/rofs/inode"
)

// Mount is unsupported outside Linux: bazil.org/fuse's FUSE client only
// talks to the Linux/macOS kernel modules this driver targets Linux for.
func Mount(mountpoint string, cache *inode.Cache, blockSize int64) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
