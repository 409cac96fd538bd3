package exfatdirent

import (
	"github.com/boljen/go-bitmap"
	"github.com/go-restruct/restruct"

	rofserrors "github.com/quietdrive/rofs/errors"
)

// rawAllocationBitmapEntry mirrors the exFAT Allocation Bitmap directory
// entry (§7.1).
type rawAllocationBitmapEntry struct {
	EntryType    uint8
	BitmapFlags  uint8
	Reserved     [18]byte
	FirstCluster uint32
	DataLength   uint64
}

// AllocationBitmapRef is a read-only view of the exFAT allocation bitmap:
// where it lives (FirstCluster/DataLength) and, once its cluster data has
// been read by the caller, which clusters it marks in-use. This driver
// never consults the bitmap to validate a FAT chain (spec §9 non-goal) —
// it exists purely for informational display, adapted from
// drivers/common/allocatormap.go with the allocate/free write paths
// stripped.
type AllocationBitmapRef struct {
	FirstCluster uint32
	DataLength   uint64

	bits bitmap.Bitmap
}

// DecodeAllocationBitmapEntry parses the primary Allocation Bitmap entry
// locating the bitmap's own cluster chain.
func DecodeAllocationBitmapEntry(record []byte) (AllocationBitmapRef, error) {
	var raw rawAllocationBitmapEntry
	if err := restruct.Unpack(record, binaryOrder, &raw); err != nil {
		return AllocationBitmapRef{}, rofserrors.ErrEntrySetCorrupt.WrapError(err)
	}
	return AllocationBitmapRef{FirstCluster: raw.FirstCluster, DataLength: raw.DataLength}, nil
}

// LoadBits attaches the bitmap's raw cluster bytes (already read by the
// caller via clusterio) so IsAllocated can answer queries.
func (a *AllocationBitmapRef) LoadBits(data []byte) {
	a.bits = bitmap.Bitmap(data)
}

// IsAllocated reports whether clusterIndex (0-based, cluster number minus
// 2) is marked in-use in the bitmap.
func (a AllocationBitmapRef) IsAllocated(clusterIndex int) bool {
	if a.bits == nil || clusterIndex < 0 || clusterIndex >= a.bits.Len() {
		return false
	}
	return a.bits.Get(clusterIndex)
}

// CountAllocated returns how many of the first total clusters are marked
// in-use, for informational display (e.g. "X of Y clusters used").
func (a AllocationBitmapRef) CountAllocated(total int) int {
	if a.bits == nil {
		return 0
	}
	if total > a.bits.Len() {
		total = a.bits.Len()
	}
	count := 0
	for i := 0; i < total; i++ {
		if a.bits.Get(i) {
			count++
		}
	}
	return count
}
