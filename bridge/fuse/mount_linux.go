//go:build linux
// +build linux

package fuse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"github.com/dsoprea/go-logging"

	"github.com/quietdrive/rofs/inode"
)

var mountLog = log.NewLogger("bridge.fuse")

// Mount serves cache as a read-only FUSE file system at mountpoint until a
// termination signal is received or the mount is externally unmounted,
// grounded on ostafen-digler's internal/fuse/mount_linux.go.
func Mount(mountpoint string, cache *inode.Cache, blockSize int64) error {
	created, err := prepareMountpoint(mountpoint)
	if err != nil {
		return err
	}
	if created {
		defer os.Remove(mountpoint)
	}

	conn, err := fuse.Mount(mountpoint, fuse.ReadOnly())
	if err != nil {
		return err
	}
	defer conn.Close()

	root := New(cache, blockSize)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- fusefs.New(conn, nil).Serve(root)
	}()

	return waitForUnmountOrError(mountpoint, serveErr)
}

func waitForUnmountOrError(mountpoint string, serveErr <-chan error) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	const maxUnmountRetries = 3
	attempts := 0

	for {
		select {
		case err := <-serveErr:
			return err
		case sig := <-sigc:
			mountLog.Warningf(nil, "received signal %v, attempting unmount of %s", sig, mountpoint)
			if attempts >= maxUnmountRetries {
				return fmt.Errorf("exceeded %d unmount retries for %s", maxUnmountRetries, mountpoint)
			}
			if err := fuse.Unmount(mountpoint); err != nil {
				attempts++
				mountLog.Warningf(nil, "unmount attempt %d/%d failed: %s", attempts, maxUnmountRetries, err)
				continue
			}
			return nil
		}
	}
}

func prepareMountpoint(mountpoint string) (bool, error) {
	st, err := os.Stat(mountpoint)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(mountpoint, 0755); err != nil {
			return false, fmt.Errorf("creating mountpoint %s: %w", mountpoint, err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat mountpoint %s: %w", mountpoint, err)
	}
	if !st.IsDir() {
		return false, fmt.Errorf("mountpoint %s is not a directory", mountpoint)
	}

	empty, err := isDirEmpty(mountpoint)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, fmt.Errorf("mountpoint %s is not empty", mountpoint)
	}
	return false, nil
}

func isDirEmpty(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdir(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
