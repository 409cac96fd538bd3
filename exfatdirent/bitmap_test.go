package exfatdirent

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAllocationBitmapEntry(t *testing.T) {
	record := make([]byte, RecordSize)
	record[0] = TypeAllocationBmp
	binary.LittleEndian.PutUint32(record[20:24], 7)
	binary.LittleEndian.PutUint64(record[24:32], 512)

	ref, err := DecodeAllocationBitmapEntry(record)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), ref.FirstCluster)
	assert.Equal(t, uint64(512), ref.DataLength)
}

func TestAllocationBitmapRefIsAllocatedWithoutBitsLoaded(t *testing.T) {
	var ref AllocationBitmapRef
	assert.False(t, ref.IsAllocated(0))
	assert.Equal(t, 0, ref.CountAllocated(10))
}
