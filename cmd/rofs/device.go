package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/quietdrive/rofs/blockio"
	"github.com/quietdrive/rofs/roimg"
)

// openDeviceFile wraps an already-opened image file as a blockio.Device.
func openDeviceFile(f *os.File, size int64) blockio.Device {
	return blockio.NewDevice(f, size)
}

// openImagePath opens path as a blockio.Device, transparently
// decompressing it first if it's a gzip+RLE8 image (the format
// roimg.LoadCompressedImage reads). The returned closer must be called
// once the caller is done with the device.
func openImagePath(path string) (blockio.Device, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	var magic [2]byte
	if _, err := f.ReadAt(magic[:], 0); err != nil && err != io.EOF {
		f.Close()
		return nil, nil, err
	}

	if !roimg.IsGzipMagic(magic[:]) {
		info, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, nil, err
		}
		return openDeviceFile(f, info.Size()), f.Close, nil
	}

	compressed, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, nil, err
	}

	stream, err := roimg.LoadCompressedImage(compressed, 0, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, nil, err
	}
	device := blockio.NewDevice(bytes.NewReader(data), int64(len(data)))
	return device, func() error { return nil }, nil
}
