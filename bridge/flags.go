// Package bridge translates fsinfo.FileInfo records into POSIX-shaped
// stat structures for the mount-facing peripheral layer (spec §7), thin
// enough to be shared by any future bridge beyond bridge/fuse. Adapted
// from the teacher's flags.go, stripped to the mode bits a read-only
// driver needs.
package bridge

// File-type and permission bits, mirroring <sys/stat.h>.
const (
	ModeIXOTH = 1 << iota
	ModeIWOTH
	ModeIROTH
	ModeIXGRP
	ModeIWGRP
	ModeIRGRP
	ModeIXUSR
	ModeIWUSR
	ModeIRUSR
	_ // S_ISVTX, unused: no write surface to protect
	_ // S_ISGID, unused
	_ // S_ISUID, unused
	_ // S_IFIFO, unused: no special files on a read-only FAT/exFAT volume
	_ // S_IFCHR, unused
	ModeIFDIR
	ModeIFREG
)

const ModeIFMT = 0xf000

const ModeRXOTH = ModeIXOTH | ModeIROTH
const ModeRXGRP = ModeIXGRP | ModeIRGRP
const ModeRXUSR = ModeIXUSR | ModeIRUSR

// DefaultDirMode and DefaultFileMode are applied uniformly: FAT32/exFAT
// carry no POSIX permission bits on disk, so every entry gets the same
// read-and-list/read-only mode, gated only by the volume's own mount
// read-only state.
const DefaultDirMode = ModeIFDIR | ModeRXUSR | ModeRXGRP | ModeRXOTH
const DefaultFileMode = ModeIFREG | ModeIRUSR | ModeIRGRP | ModeIROTH
