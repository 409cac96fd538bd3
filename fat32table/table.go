// Package fat32table classifies 32-bit FAT entries and walks cluster
// chains, per spec §4.3. Grounded on drivers/fat/driverbase.go's
// listClusters/getClusterInChain, reshaped into a chain walker that returns
// the whole chain as a slice (not a lazy iterator) and the exact entry
// classification of spec §3.
package fat32table

import (
	"encoding/binary"
	"fmt"

	"github.com/quietdrive/rofs/blockio"
	rofserrors "github.com/quietdrive/rofs/errors"
)

// EntryKind classifies a single 32-bit FAT32 entry.
type EntryKind int

const (
	KindNext EntryKind = iota
	KindEndOfChain
	KindBad
	KindReserved
	KindUnused
)

// Entry is a classified FAT32 entry. Next is only meaningful when Kind ==
// KindNext.
type Entry struct {
	Kind EntryKind
	Next uint32
}

// Table reads and classifies FAT32 entries from the FAT region of a volume.
type Table struct {
	dev               blockio.Device
	fatStartByte      int64
	bytesPerSector    uint32
	clusterCount      uint32
	entriesPerSector  uint32
}

// NewTable builds a Table over the FAT region starting at sector
// fatStartSector, bytesPerSector bytes per sector, describing a volume with
// clusterCount data clusters.
func NewTable(dev blockio.Device, fatStartSector, bytesPerSector, clusterCount uint32) *Table {
	return &Table{
		dev:              dev,
		fatStartByte:     int64(fatStartSector) * int64(bytesPerSector),
		bytesPerSector:   bytesPerSector,
		clusterCount:     clusterCount,
		entriesPerSector: bytesPerSector / 4,
	}
}

func (t *Table) maxValidCluster() uint32 {
	return t.clusterCount + 1
}

// classify interprets the low 28 bits of a raw 32-bit FAT32 entry, ignoring
// the top 4 reserved bits, per spec §3/§4.3.
func classify(raw uint32, maxValid uint32) Entry {
	value := raw & 0x0FFFFFFF

	switch {
	case value == 0:
		return Entry{Kind: KindUnused}
	case value == 1:
		return Entry{Kind: KindReserved}
	case value == 0x0FFFFFF7:
		return Entry{Kind: KindBad}
	case value >= 0x0FFFFFF8:
		return Entry{Kind: KindEndOfChain}
	case value >= 2 && value <= maxValid:
		return Entry{Kind: KindNext, Next: value}
	default:
		return Entry{Kind: KindReserved}
	}
}

// ReadEntry reads and classifies the FAT entry for cluster number clusno.
func (t *Table) ReadEntry(clusno uint32) (Entry, error) {
	if clusno < 2 || clusno > t.maxValidCluster() {
		return Entry{}, rofserrors.ErrClusterOutOfRange.WithMessage(
			fmt.Sprintf("cluster %d not in range [2, %d]", clusno, t.maxValidCluster()))
	}

	sectorIndex := clusno / t.entriesPerSector
	inSectorOffset := (clusno % t.entriesPerSector) * 4

	sector := make([]byte, t.bytesPerSector)
	if err := t.dev.ReadExactAt(t.fatStartByte+int64(sectorIndex)*int64(t.bytesPerSector), sector); err != nil {
		return Entry{}, err
	}

	raw := binary.LittleEndian.Uint32(sector[inSectorOffset : inSectorOffset+4])
	return classify(raw, t.maxValidCluster()), nil
}

// Iterate reads the cluster chain starting at firstClusno up to EndOfChain
// (spec §4.3) and returns it as a slice once the whole chain has been
// read; the chain is not produced lazily. Encountering Bad mid-chain is a
// fatal structural error; encountering Reserved mid-chain terminates the
// iteration early (the permissive behavior spec §9's Open Question
// prescribes to match observable behavior — the source has a
// "TODO: check out the bitmap first" that was never acted on).
func (t *Table) Iterate(firstClusno uint32) ([]uint32, error) {
	if firstClusno < 2 || firstClusno > t.maxValidCluster() {
		return nil, rofserrors.ErrClusterOutOfRange.WithMessage(
			fmt.Sprintf("start cluster %d not in range [2, %d]", firstClusno, t.maxValidCluster()))
	}

	chain := make([]uint32, 0, 8)
	current := firstClusno

	// Bounded by cluster_count so a corrupt circular chain can't loop
	// forever.
	for i := uint32(0); i <= t.clusterCount; i++ {
		chain = append(chain, current)

		entry, err := t.ReadEntry(current)
		if err != nil {
			return nil, err
		}

		switch entry.Kind {
		case KindEndOfChain:
			return chain, nil
		case KindBad:
			return nil, rofserrors.ErrBadCluster.WithMessage(
				fmt.Sprintf("cluster %d's chain hit a bad cluster", firstClusno))
		case KindReserved, KindUnused:
			return chain, nil
		case KindNext:
			current = entry.Next
		}
	}

	return chain, nil
}
