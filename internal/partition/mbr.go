// Package partition reads a classic MBR partition table, a peripheral
// concern kept separate from the FAT32/exFAT core: it shares no algorithms
// with cluster/directory walking, only the same block-device abstraction.
// Grounded on original_source/src/mbr.rs.
package partition

import (
	"encoding/binary"

	"github.com/go-restruct/restruct"

	rofserrors "github.com/quietdrive/rofs/errors"
)

// Entry is one 16-byte MBR partition-table entry.
type Entry struct {
	Active    uint8
	FirstCHS  [3]uint8
	Type      uint8
	LastCHS   [3]uint8
	LBAStart  uint32
	NumSector uint32
}

// IsActive reports the bootable flag (0x80).
func (e Entry) IsActive() bool { return e.Active == 0x80 }

// IsEmpty reports whether this slot holds no partition.
func (e Entry) IsEmpty() bool { return e.Type == 0 }

// Table is a decoded MBR: its four primary partition entries.
type Table struct {
	Partitions [4]Entry
}

type rawEntry struct {
	Active    uint8
	FirstCHS  [3]uint8
	Type      uint8
	LastCHS   [3]uint8
	LBAStart  uint32
	NumSector uint32
}

// Parse decodes the first 512 bytes of a disk image as an MBR.
func Parse(sector []byte) (*Table, error) {
	if len(sector) < 512 {
		return nil, rofserrors.ErrTruncatedRecord.WithMessage("MBR sector shorter than 512 bytes")
	}
	if binary.LittleEndian.Uint16(sector[510:512]) != 0xAA55 {
		return nil, rofserrors.ErrGeometryInvalid.WithMessage("missing 0xAA55 MBR signature")
	}

	var t Table
	for i := 0; i < 4; i++ {
		off := 446 + i*16
		var raw rawEntry
		if err := restruct.Unpack(sector[off:off+16], binary.LittleEndian, &raw); err != nil {
			return nil, rofserrors.ErrGeometryInvalid.WrapError(err)
		}
		t.Partitions[i] = Entry(raw)
	}
	return &t, nil
}
