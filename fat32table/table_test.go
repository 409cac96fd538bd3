package fat32table

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdrive/rofs/blockio"
)

func buildFATRegion(entries map[uint32]uint32, bytesPerSector uint32, numEntries uint32) []byte {
	region := make([]byte, numEntries*4)
	for clusno, value := range entries {
		binary.LittleEndian.PutUint32(region[clusno*4:clusno*4+4], value)
	}
	if pad := int(bytesPerSector) - len(region)%int(bytesPerSector); pad != int(bytesPerSector) {
		region = append(region, make([]byte, pad)...)
	}
	return region
}

func newTestTable(t *testing.T, region []byte, clusterCount uint32) *Table {
	t.Helper()
	dev := blockio.NewDevice(bytes.NewReader(region), int64(len(region)))
	return NewTable(dev, 0, 512, clusterCount)
}

func TestReadEntryClassifiesChainLink(t *testing.T) {
	region := buildFATRegion(map[uint32]uint32{2: 3, 3: 0x0FFFFFF8}, 512, 16)
	table := newTestTable(t, region, 16)

	entry, err := table.ReadEntry(2)
	require.NoError(t, err)
	assert.Equal(t, KindNext, entry.Kind)
	assert.Equal(t, uint32(3), entry.Next)
}

func TestReadEntryClassifiesEndOfChainAndUnused(t *testing.T) {
	region := buildFATRegion(map[uint32]uint32{2: 0x0FFFFFFF, 3: 0}, 512, 16)
	table := newTestTable(t, region, 16)

	eoc, err := table.ReadEntry(2)
	require.NoError(t, err)
	assert.Equal(t, KindEndOfChain, eoc.Kind)

	unused, err := table.ReadEntry(3)
	require.NoError(t, err)
	assert.Equal(t, KindUnused, unused.Kind)
}

func TestIterateFollowsChainToEnd(t *testing.T) {
	region := buildFATRegion(map[uint32]uint32{
		2: 3,
		3: 4,
		4: 0x0FFFFFF8,
	}, 512, 16)
	table := newTestTable(t, region, 16)

	chain, err := table.Iterate(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3, 4}, chain)
}

func TestIterateReservedMidChainTerminatesPermissively(t *testing.T) {
	region := buildFATRegion(map[uint32]uint32{
		2: 3,
		3: 1, // reserved
	}, 512, 16)
	table := newTestTable(t, region, 16)

	chain, err := table.Iterate(2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 3}, chain)
}

func TestIterateBadClusterIsFatal(t *testing.T) {
	region := buildFATRegion(map[uint32]uint32{
		2: 3,
		3: 0x0FFFFFF7, // bad
	}, 512, 16)
	table := newTestTable(t, region, 16)

	_, err := table.Iterate(2)
	assert.Error(t, err)
}

func TestReadEntryRejectsOutOfRangeCluster(t *testing.T) {
	region := buildFATRegion(map[uint32]uint32{}, 512, 16)
	table := newTestTable(t, region, 16)

	_, err := table.ReadEntry(1)
	assert.Error(t, err)

	_, err = table.ReadEntry(9999)
	assert.Error(t, err)
}
