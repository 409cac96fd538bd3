// Package ext2ro reads (but never traverses) an ext2 superblock for
// informational display, a peripheral sibling to the FAT32/exFAT core
// sharing only the block-device abstraction, not any algorithm. Grounded
// on original_source/src/ext2.rs's Sblk; directory/inode traversal is a
// non-goal (dump-only).
package ext2ro

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"

	rofserrors "github.com/quietdrive/rofs/errors"
)

const magicEXT2 = 0xEF53

// rawSuperblock mirrors the on-disk ext2 superblock's first 264 bytes.
type rawSuperblock struct {
	InodesCount       uint32
	BlocksCount       uint32
	RBlocksCount      uint32
	FreeBlocksCount   uint32
	FreeInodesCount   uint32
	FirstDataBlock    uint32
	Log2BlockSize     uint32
	Log2FragSize      uint32
	BlocksPerGroup    uint32
	FragsPerGroup     uint32
	InodesPerGroup    uint32
	Mtime             uint32
	Wtime             uint32
	MountCount        uint16
	MaxMountCount     uint16
	Magic             uint16
	State             uint16
	Errors            uint16
	MinorRevLevel     uint16
	LastCheck         uint32
	CheckInterval     uint32
	CreatorOS         uint32
	RevLevel          uint32
	DefResUID         uint16
	DefResGID         uint16
	FirstIno          uint32
	InodeSize         uint16
	BlockGroupNr      uint16
	FeatureCompat     uint32
	FeatureIncompat   uint32
	FeatureROCompat   uint32
	UUID              [16]byte
	VolumeName        [16]byte
	LastMounted       [64]byte
	AlgoBitmap        uint32
	PreallocBlocks    uint8
	ReallocDirBlocks  uint8
	_pad              [2]byte
	JournalUUID       [16]byte
	JournalInum       uint32
	JournalDev        uint32
	LastOrphan        uint32
	HashSeed          [4]uint32
	DefHashVersion    uint8
}

// Superblock is the informational subset of the ext2 superblock this
// driver reports.
type Superblock struct {
	InodesCount     uint32
	BlocksCount     uint32
	FreeBlocksCount uint32
	FreeInodesCount uint32
	BlockSize       uint32
	InodesPerGroup  uint32
	BlocksPerGroup  uint32
	InodeSize       uint16
	VolumeName      string
}

// Parse decodes an ext2 superblock from the 1024-byte region that starts
// 1024 bytes into the volume.
func Parse(region []byte) (*Superblock, error) {
	if len(region) < 264 {
		return nil, rofserrors.ErrTruncatedRecord.WithMessage("ext2 superblock region shorter than 264 bytes")
	}

	var raw rawSuperblock
	if err := restruct.Unpack(region[:264], binary.LittleEndian, &raw); err != nil {
		return nil, rofserrors.ErrGeometryInvalid.WrapError(err)
	}

	if raw.Magic != magicEXT2 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("missing ext2 0xEF53 magic")
	}

	name := raw.VolumeName[:]
	for i, b := range name {
		if b == 0 {
			name = name[:i]
			break
		}
	}

	return &Superblock{
		InodesCount:     raw.InodesCount,
		BlocksCount:     raw.BlocksCount,
		FreeBlocksCount: raw.FreeBlocksCount,
		FreeInodesCount: raw.FreeInodesCount,
		BlockSize:       1024 << raw.Log2BlockSize,
		InodesPerGroup:  raw.InodesPerGroup,
		BlocksPerGroup:  raw.BlocksPerGroup,
		InodeSize:       raw.InodeSize,
		VolumeName:      string(name),
	}, nil
}
