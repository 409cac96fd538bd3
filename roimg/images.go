// Package roimg builds synthetic FAT32 disk images and loads compressed
// FAT32/exFAT disk images for tests, adapted from the teacher's testing/images.go (same
// compression+bytesextra pairing, generalized to a non-test-only helper
// and joined by a from-scratch synthetic image builder).
package roimg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xaionaro-go/bytesextra"

	"github.com/quietdrive/rofs/utilities/compression"
)

// LoadCompressedImage decompresses a gzip+RLE8 disk image (the same format
// the fat32/exfat/mbr/ext2 CLI subcommands accept when the file starts with
// the gzip magic, and tests use for golden fixtures) and returns a seekable stream over it. When sectorSize
// and totalSectors are both nonzero, the uncompressed size is checked
// against sectorSize*totalSectors; pass zero for either when the image's
// exact geometry isn't known up front (e.g. a CLI caller hasn't parsed the
// boot sector yet).
func LoadCompressedImage(compressedImageBytes []byte, sectorSize, totalSectors uint) (io.ReadWriteSeeker, error) {
	if len(compressedImageBytes) == 0 {
		return nil, fmt.Errorf("compressed image is empty")
	}

	imageBytes, err := compression.DecompressImageToBytes(bytes.NewBuffer(compressedImageBytes))
	if err != nil {
		return nil, err
	}

	if sectorSize != 0 && totalSectors != 0 {
		want := totalSectors * sectorSize
		if uint(len(imageBytes)) != want {
			return nil, fmt.Errorf("uncompressed image is %d bytes, want %d", len(imageBytes), want)
		}
	}
	return bytesextra.NewReadWriteSeeker(imageBytes), nil
}

// IsGzipMagic reports whether the first two bytes of data are gzip's magic
// number, used by the CLI to auto-detect a compressed image; there is no
// flag for it.
func IsGzipMagic(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}
