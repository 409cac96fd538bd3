package geometry

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"

	rofserrors "github.com/quietdrive/rofs/errors"
)

// rawExFATBootSector mirrors the exFAT Main Boot Sector layout (fields we
// need only), adapted in shape from dsoprea-go-exfat/structures.go's
// BootSectorHeader but decoded with go-restruct rather than hand-rolled
// binary.Read calls at each field.
type rawExFATBootSector struct {
	JumpBoot                    [3]byte
	FileSystemName              [8]byte
	MustBeZero                  [53]byte
	PartitionOffset             uint64
	VolumeLength                uint64
	FatOffset                   uint32
	FatLength                   uint32
	ClusterHeapOffset           uint32
	ClusterCount                uint32
	FirstClusterOfRootDirectory uint32
	VolumeSerialNumber          uint32
	FileSystemRevision          [2]uint8
	VolumeFlags                 uint16
	BytesPerSectorShift         uint8
	SectorsPerClusterShift      uint8
	NumberOfFats                uint8
	DriveSelect                 uint8
	PercentInUse                uint8
	Reserved                    [7]byte
}

var requiredFileSystemName = []byte("EXFAT   ")

// ParseExFATBootSector validates and derives geometry from the first 512
// bytes of an exFAT volume (spec §4.2).
func ParseExFATBootSector(sector []byte) (*Geometry, error) {
	if len(sector) < 512 {
		return nil, rofserrors.ErrTruncatedRecord.WithMessage("boot sector shorter than 512 bytes")
	}

	if !bytes.Equal(sector[3:11], requiredFileSystemName) {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(`missing "EXFAT   " file system name`)
	}
	for _, b := range sector[11:64] {
		if b != 0 {
			return nil, rofserrors.ErrGeometryInvalid.WithMessage("MustBeZero region is not all zero")
		}
	}
	if binary.LittleEndian.Uint16(sector[510:512]) != 0xAA55 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("missing 0xAA55 boot signature")
	}

	var raw rawExFATBootSector
	if err := restruct.Unpack(sector[:120], binary.LittleEndian, &raw); err != nil {
		return nil, rofserrors.ErrGeometryInvalid.WrapError(err)
	}

	if raw.FileSystemRevision[1] != 1 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("unsupported file system major revision %d", raw.FileSystemRevision[1]))
	}
	if raw.NumberOfFats != 1 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("exFAT requires exactly 1 FAT, got %d", raw.NumberOfFats))
	}
	if raw.BytesPerSectorShift < 9 || raw.BytesPerSectorShift > 12 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("bytes-per-sector-shift %d outside [9, 12]", raw.BytesPerSectorShift))
	}
	maxClusterShift := 25 - raw.BytesPerSectorShift
	if raw.SectorsPerClusterShift > maxClusterShift {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage(
			fmt.Sprintf("sectors-per-cluster-shift %d exceeds max %d", raw.SectorsPerClusterShift, maxClusterShift))
	}

	bytesPerSector := uint32(1) << raw.BytesPerSectorShift
	sectorsPerCluster := uint32(1) << raw.SectorsPerClusterShift
	bytesPerCluster := bytesPerSector * sectorsPerCluster

	return &Geometry{
		Format:               FormatExFAT,
		BytesPerSector:       bytesPerSector,
		SectorsPerCluster:    sectorsPerCluster,
		BytesPerCluster:      bytesPerCluster,
		FATRegionStartSector: raw.FatOffset,
		FATRegionLenSectors:  raw.FatLength,
		ClusterHeapStartByte: int64(raw.ClusterHeapOffset) * int64(bytesPerSector),
		ClusterCount:         raw.ClusterCount,
		RootFirstCluster:     raw.FirstClusterOfRootDirectory,
	}, nil
}
