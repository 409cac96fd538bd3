package geometry

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildExFATBootSector() []byte {
	sector := make([]byte, 512)
	copy(sector[3:11], "EXFAT   ")
	binary.LittleEndian.PutUint32(sector[80:84], 128)     // FatOffset
	binary.LittleEndian.PutUint32(sector[84:88], 256)      // FatLength
	binary.LittleEndian.PutUint32(sector[88:92], 1024)     // ClusterHeapOffset
	binary.LittleEndian.PutUint32(sector[92:96], 100000)   // ClusterCount
	binary.LittleEndian.PutUint32(sector[96:100], 5)       // FirstClusterOfRootDirectory
	sector[104] = 0 // FileSystemRevision minor
	sector[105] = 1 // FileSystemRevision major
	sector[108] = 9 // BytesPerSectorShift (512)
	sector[109] = 3 // SectorsPerClusterShift
	sector[110] = 1 // NumberOfFats
	binary.LittleEndian.PutUint16(sector[510:512], 0xAA55)
	return sector
}

func TestParseExFATBootSectorValid(t *testing.T) {
	sector := buildExFATBootSector()
	geo, err := ParseExFATBootSector(sector)
	require.NoError(t, err)
	assert.Equal(t, FormatExFAT, geo.Format)
	assert.Equal(t, uint32(512), geo.BytesPerSector)
	assert.Equal(t, uint32(8), geo.SectorsPerCluster)
	assert.Equal(t, uint32(4096), geo.BytesPerCluster)
	assert.Equal(t, uint32(5), geo.RootFirstCluster)
}

func TestParseExFATBootSectorRejectsBadName(t *testing.T) {
	sector := buildExFATBootSector()
	copy(sector[3:11], "NOTEXFAT")
	_, err := ParseExFATBootSector(sector)
	assert.Error(t, err)
}

func TestParseExFATBootSectorRejectsWrongFatCount(t *testing.T) {
	sector := buildExFATBootSector()
	sector[110] = 2
	_, err := ParseExFATBootSector(sector)
	assert.Error(t, err)
}
