package roimg

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/afero"
)

func TestBuildFAT32StagingFSWritesFilesAndDirs(t *testing.T) {
	fs, err := BuildFAT32StagingFS([]BuilderFile{
		{Name: "a.txt", Content: []byte("hi")},
		{Name: "sub", IsDir: true},
	})
	require.NoError(t, err)

	got, err := afero.ReadFile(fs, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(got))

	isDir, err := afero.IsDir(fs, "/sub")
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestBuildFAT32ImageProducesDecodableBootSectorAndEntries(t *testing.T) {
	img, err := BuildFAT32Image([]BuilderFile{
		{Name: "A.TXT", Content: []byte("content")},
	})
	require.NoError(t, err)

	assert.Equal(t, uint16(0xAA55), binary.LittleEndian.Uint16(img[510:512]))
	assert.Equal(t, uint16(bytesPerSector), binary.LittleEndian.Uint16(img[11:13]))
	assert.Equal(t, uint8(2), img[16]) // numFATs

	rootCluster := binary.LittleEndian.Uint32(img[44:48])
	assert.Equal(t, uint32(2), rootCluster)
}

func TestBuildFAT32ImageRejectsOversizedFile(t *testing.T) {
	_, err := BuildFAT32Image([]BuilderFile{
		{Name: "BIG.BIN", Content: make([]byte, bytesPerSector*sectorsPerCluster+1)},
	})
	assert.Error(t, err)
}
