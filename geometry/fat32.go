package geometry

import (
	"encoding/binary"
	"fmt"

	rofserrors "github.com/quietdrive/rofs/errors"
)

// rawFAT32BPB is the on-disk layout of the first 90 bytes of a FAT32 boot
// sector, adapted from the teacher's RawFATBootSectorWithBPB +
// RawFAT32BootSector (drivers/fat/common.go, drivers/fat/fat32.go),
// narrowed to the fields spec §4.2 actually validates or derives from.
type rawFAT32BPB struct {
	jmpBoot           [3]byte
	oemName           [8]byte
	bytesPerSector    uint16
	sectorsPerCluster uint8
	reservedSectors   uint16
	numFATs           uint8
	rootEntryCount    uint16
	totalSectors16    uint16
	media             uint8
	sectorsPerFAT16   uint16
	sectorsPerTrack   uint16
	numHeads          uint16
	hiddenSectors     uint32
	totalSectors32    uint32
	sectorsPerFAT32   uint32
	extFlags          uint16
	fsVersion         uint16
	rootCluster       uint32
}

// ParseFAT32BootSector validates and derives geometry from the first 512
// bytes of a FAT32 volume (spec §4.2).
func ParseFAT32BootSector(sector []byte) (*Geometry, error) {
	if len(sector) < 512 {
		return nil, rofserrors.ErrTruncatedRecord.WithMessage("boot sector shorter than 512 bytes")
	}

	if binary.LittleEndian.Uint16(sector[510:512]) != 0xAA55 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("missing 0xAA55 boot signature")
	}

	raw := rawFAT32BPB{
		bytesPerSector:    binary.LittleEndian.Uint16(sector[11:13]),
		sectorsPerCluster: sector[13],
		reservedSectors:   binary.LittleEndian.Uint16(sector[14:16]),
		numFATs:           sector[16],
		rootEntryCount:    binary.LittleEndian.Uint16(sector[17:19]),
		totalSectors16:    binary.LittleEndian.Uint16(sector[19:21]),
		media:             sector[21],
		sectorsPerFAT16:   binary.LittleEndian.Uint16(sector[22:24]),
		sectorsPerTrack:   binary.LittleEndian.Uint16(sector[24:26]),
		numHeads:          binary.LittleEndian.Uint16(sector[26:28]),
		hiddenSectors:     binary.LittleEndian.Uint32(sector[28:32]),
		totalSectors32:    binary.LittleEndian.Uint32(sector[32:36]),
		sectorsPerFAT32:   binary.LittleEndian.Uint32(sector[36:40]),
		extFlags:          binary.LittleEndian.Uint16(sector[40:42]),
		fsVersion:         binary.LittleEndian.Uint16(sector[42:44]),
		rootCluster:       binary.LittleEndian.Uint32(sector[44:48]),
	}

	if raw.bytesPerSector != 512 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("bytes per sector must be 512, got %d", raw.bytesPerSector))
	}
	if raw.sectorsPerCluster == 0 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("sectors per cluster is zero")
	}
	if raw.numFATs != 2 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("FAT32 requires exactly 2 FATs, got %d", raw.numFATs))
	}
	if raw.rootEntryCount != 0 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("FAT32 root entry count must be zero")
	}

	totalSectors := uint32(raw.totalSectors16)
	if totalSectors == 0 {
		totalSectors = raw.totalSectors32
	}

	fatStart := uint32(raw.reservedSectors)
	dataStart := fatStart + raw.sectorsPerFAT32*uint32(raw.numFATs)

	dataSectors := totalSectors - dataStart
	clusterCount := dataSectors / uint32(raw.sectorsPerCluster)
	if clusterCount < 65526 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("derived cluster count %d is below the FAT32 minimum of 65526", clusterCount))
	}

	bytesPerCluster := uint32(raw.bytesPerSector) * uint32(raw.sectorsPerCluster)
	if bytesPerCluster > 32*1024*1024 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("bytes per cluster exceeds 32 MiB")
	}

	return &Geometry{
		Format:               FormatFAT32,
		BytesPerSector:       uint32(raw.bytesPerSector),
		SectorsPerCluster:    uint32(raw.sectorsPerCluster),
		BytesPerCluster:      bytesPerCluster,
		FATRegionStartSector: fatStart,
		FATRegionLenSectors:  raw.sectorsPerFAT32,
		ClusterHeapStartByte: int64(dataStart) * int64(raw.bytesPerSector),
		ClusterCount:         clusterCount,
		RootFirstCluster:     raw.rootCluster,
	}, nil
}
