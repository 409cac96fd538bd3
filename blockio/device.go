// Package blockio is the lowest layer of the core: a random-access,
// read-only view of a block device, addressed by absolute byte offset.
// Everything above this package (geometry, cluster I/O, FAT walking,
// directory decoding) is pure computation driven by reads through this
// interface.
package blockio

import (
	"fmt"
	"io"
)

// Device is a positioned byte source. The core assumes reads are
// sector-multiple and sector-aligned in practice, but the interface itself
// is byte-addressed, matching the "read_exact_at(offset, buf)" boundary of
// spec §4.1.
type Device interface {
	// ReadExactAt reads len(buf) bytes starting at absolute byte offset
	// off, filling buf completely or returning an error. The caller
	// guarantees off+len(buf) is within the device length.
	ReadExactAt(off int64, buf []byte) error

	// Size returns the total size of the device in bytes.
	Size() int64
}

// readerAtDevice adapts any io.ReaderAt (an *os.File, a bytesextra
// ReadSeeker wrapped with io.NewSectionReader, etc.) into a Device.
type readerAtDevice struct {
	r    io.ReaderAt
	size int64
}

// NewDevice wraps an io.ReaderAt as a Device of the given size in bytes.
func NewDevice(r io.ReaderAt, size int64) Device {
	return &readerAtDevice{r: r, size: size}
}

func (d *readerAtDevice) Size() int64 {
	return d.size
}

func (d *readerAtDevice) ReadExactAt(off int64, buf []byte) error {
	if off < 0 || off+int64(len(buf)) > d.size {
		return fmt.Errorf("read of %d bytes at offset %d exceeds device size %d", len(buf), off, d.size)
	}

	n, err := d.r.ReadAt(buf, off)
	if err != nil && err != io.EOF {
		return err
	}
	if n < len(buf) {
		return fmt.Errorf("short read at offset %d: wanted %d bytes, got %d", off, len(buf), n)
	}
	return nil
}
