// Package exfatdirent decodes exFAT directory entry sets (primary File
// entry + secondary Stream Extension + secondary FileName entries) into
// reduced file-info records, per spec §4.6. Struct layouts are grounded on
// dsoprea-go-exfat's navigator_entry_types.go, decoded with go-restruct
// rather than its hand-rolled reflect-based dispatch.
package exfatdirent

import (
	"github.com/go-restruct/restruct"

	rofserrors "github.com/quietdrive/rofs/errors"
)

// RecordSize is the fixed size of any exFAT directory-entry record.
const RecordSize = 32

// Entry type bytes, spec §4.6.
const (
	TypeFinalUnused     = 0x00
	TypeAllocationBmp   = 0x81
	TypeUpcaseTable     = 0x82
	TypeVolumeLabel     = 0x83
	TypeFileOrDir       = 0x85
	TypeStreamExtension = 0xC0
	TypeFileName        = 0xC1
)

// File attribute bits, spec §4.6.
const (
	AttrReadOnly  = 0x0001
	AttrHidden    = 0x0002
	AttrSystem    = 0x0004
	AttrDirectory = 0x0010
	AttrArchive   = 0x0020
)

// IsUnusedMarker reports whether an entry type byte marks a not-in-use,
// reusable slot (0x01..0x7F), not a real record.
func IsUnusedMarker(entryType byte) bool {
	return entryType >= 0x01 && entryType <= 0x7F
}

// IsInUse reports whether the high bit (bit 7) is set, marking a live
// entry rather than a deleted/reusable one.
func IsInUse(entryType byte) bool {
	return entryType&0x80 != 0
}

// fileEntry mirrors the primary File directory entry (§7.4), trimmed to
// the fields the spec's read-only surface needs.
type fileEntry struct {
	EntryType                 uint8
	SecondaryCount            uint8
	SetChecksum               uint16
	FileAttributes            uint16
	Reserved1                 uint16
	CreateTimestamp           uint32
	LastModifiedTimestamp     uint32
	LastAccessedTimestamp     uint32
	Create10msIncrement       uint8
	LastModified10msIncrement uint8
	CreateUtcOffset           uint8
	LastModifiedUtcOffset     uint8
	LastAccessedUtcOffset     uint8
	Reserved2                 [7]byte
}

// streamExtensionEntry mirrors the secondary Stream Extension entry (§7.6).
type streamExtensionEntry struct {
	EntryType             uint8
	GeneralSecondaryFlags uint8
	Reserved1             [1]byte
	NameLength            uint8
	NameHash              uint16
	Reserved2             [2]byte
	ValidDataLength       uint64
	Reserved3             [4]byte
	FirstCluster          uint32
	DataLength            uint64
}

// fileNameEntry mirrors one secondary FileName fragment (§7.7): 15 UTF-16LE
// code units packed into 30 bytes.
type fileNameEntry struct {
	EntryType             uint8
	GeneralSecondaryFlags uint8
	FileName              [30]byte
}

func decodeFileEntry(record []byte) (fileEntry, error) {
	var e fileEntry
	if err := restruct.Unpack(record, binaryOrder, &e); err != nil {
		return fileEntry{}, rofserrors.ErrEntrySetCorrupt.WrapError(err)
	}
	return e, nil
}

func decodeStreamExtensionEntry(record []byte) (streamExtensionEntry, error) {
	var e streamExtensionEntry
	if err := restruct.Unpack(record, binaryOrder, &e); err != nil {
		return streamExtensionEntry{}, rofserrors.ErrEntrySetCorrupt.WrapError(err)
	}
	return e, nil
}

func decodeFileNameEntry(record []byte) (fileNameEntry, error) {
	var e fileNameEntry
	if err := restruct.Unpack(record, binaryOrder, &e); err != nil {
		return fileNameEntry{}, rofserrors.ErrEntrySetCorrupt.WrapError(err)
	}
	return e, nil
}
