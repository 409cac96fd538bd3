package geometry

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFAT32BootSector(totalSectors, sectorsPerFAT uint32) []byte {
	sector := make([]byte, 512)
	binary.LittleEndian.PutUint16(sector[11:13], 512)
	sector[13] = 1 // sectors per cluster
	binary.LittleEndian.PutUint16(sector[14:16], 32)
	sector[16] = 2 // num FATs
	binary.LittleEndian.PutUint16(sector[17:19], 0)
	binary.LittleEndian.PutUint32(sector[32:36], totalSectors)
	binary.LittleEndian.PutUint32(sector[36:40], sectorsPerFAT)
	binary.LittleEndian.PutUint32(sector[44:48], 2)
	binary.LittleEndian.PutUint16(sector[510:512], 0xAA55)
	return sector
}

func TestParseFAT32BootSectorValid(t *testing.T) {
	sector := buildFAT32BootSector(200000, 1000)
	geo, err := ParseFAT32BootSector(sector)
	require.NoError(t, err)
	assert.Equal(t, FormatFAT32, geo.Format)
	assert.Equal(t, uint32(32), geo.FATRegionStartSector)
	assert.Equal(t, uint32(1000), geo.FATRegionLenSectors)
	assert.Equal(t, uint32(2), geo.RootFirstCluster)
}

func TestParseFAT32BootSectorRejectsBadSignature(t *testing.T) {
	sector := buildFAT32BootSector(200000, 1000)
	sector[510] = 0
	_, err := ParseFAT32BootSector(sector)
	assert.Error(t, err)
}

func TestParseFAT32BootSectorRejectsTooFewClusters(t *testing.T) {
	sector := buildFAT32BootSector(2000, 10)
	_, err := ParseFAT32BootSector(sector)
	assert.Error(t, err)
}

func TestParseFAT32BootSectorTruncated(t *testing.T) {
	_, err := ParseFAT32BootSector(make([]byte, 100))
	assert.Error(t, err)
}
