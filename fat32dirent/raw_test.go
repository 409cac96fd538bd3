package fat32dirent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSFNRecord(name [11]byte, attr byte) []byte {
	record := make([]byte, RecordSize)
	copy(record[0:11], name[:])
	record[11] = attr
	return record
}

func TestShortNameBasic(t *testing.T) {
	var name [11]byte
	copy(name[:], "README  TXT")
	s := DecodeSFN(makeSFNRecord(name, 0))
	assert.Equal(t, "README.TXT", ShortName(s))
}

func TestShortNameNoExtension(t *testing.T) {
	var name [11]byte
	copy(name[:], "FOO        ")
	s := DecodeSFN(makeSFNRecord(name, AttrDirectory))
	assert.Equal(t, "FOO", ShortName(s))
}

func TestShortNameLowerCaseFlag(t *testing.T) {
	var name [11]byte
	copy(name[:], "README  TXT")
	record := makeSFNRecord(name, 0)
	record[12] = ntBodyLowerCase
	s := DecodeSFN(record)
	assert.Equal(t, "readme.txt", ShortName(s))
}

func TestShortName0x05Substitution(t *testing.T) {
	var name [11]byte
	copy(name[:], "AAAAAAA TXT")
	name[0] = 0x05
	s := DecodeSFN(makeSFNRecord(name, 0))
	got := ShortName(s)
	require.Equal(t, byte(0xE5), []byte(got)[0])
}

func TestIsEndMarker(t *testing.T) {
	var name [11]byte
	s := DecodeSFN(makeSFNRecord(name, 0))
	assert.True(t, IsEndMarker(s))
}

func TestIsDeleted(t *testing.T) {
	var name [11]byte
	name[0] = 0xE5
	s := DecodeSFN(makeSFNRecord(name, 0))
	assert.True(t, IsDeleted(s))
}

func TestFirstCluster(t *testing.T) {
	var name [11]byte
	record := makeSFNRecord(name, 0)
	record[20] = 0x02
	record[21] = 0x00
	record[26] = 0x01
	record[27] = 0x00
	s := DecodeSFN(record)
	assert.Equal(t, uint32(0x00020001), s.FirstCluster())
}

func TestChecksumMatchesKnownValue(t *testing.T) {
	var name [11]byte
	copy(name[:], "README  TXT")
	got := Checksum(name)
	assert.Equal(t, uint8(0x73), got)
}
