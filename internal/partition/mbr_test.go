package partition

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildMBRSector() []byte {
	sector := make([]byte, 512)
	off := 446
	sector[off] = 0x80 // active
	sector[off+4] = 0x0C // FAT32 LBA type
	binary.LittleEndian.PutUint32(sector[off+8:off+12], 2048)
	binary.LittleEndian.PutUint32(sector[off+12:off+16], 1048576)
	binary.LittleEndian.PutUint16(sector[510:512], 0xAA55)
	return sector
}

func TestParseMBRValid(t *testing.T) {
	table, err := Parse(buildMBRSector())
	require.NoError(t, err)

	first := table.Partitions[0]
	assert.True(t, first.IsActive())
	assert.False(t, first.IsEmpty())
	assert.Equal(t, uint8(0x0C), first.Type)
	assert.Equal(t, uint32(2048), first.LBAStart)
	assert.Equal(t, uint32(1048576), first.NumSector)

	assert.True(t, table.Partitions[1].IsEmpty())
}

func TestParseMBRRejectsBadSignature(t *testing.T) {
	sector := buildMBRSector()
	sector[511] = 0
	_, err := Parse(sector)
	assert.Error(t, err)
}

func TestParseMBRRejectsTruncated(t *testing.T) {
	_, err := Parse(make([]byte, 100))
	assert.Error(t, err)
}
