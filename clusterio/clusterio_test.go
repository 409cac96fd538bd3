package clusterio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietdrive/rofs/blockio"
)

func newTestReader(t *testing.T, heapStart int64, bytesPerCluster uint32, clusterCount uint32, data []byte) *Reader {
	t.Helper()
	dev := blockio.NewDevice(bytes.NewReader(data), int64(len(data)))
	return NewReader(dev, Geometry{
		ClusterHeapStartByte: heapStart,
		BytesPerCluster:      bytesPerCluster,
		ClusterCount:         clusterCount,
	})
}

func TestOffsetComputesFromClusterTwo(t *testing.T) {
	reader := newTestReader(t, 1024, 512, 16, make([]byte, 1024+512*4))
	assert.Equal(t, int64(1024), reader.Offset(2))
	assert.Equal(t, int64(1024+512), reader.Offset(3))
}

func TestReadClusterReturnsExactBytes(t *testing.T) {
	data := make([]byte, 1024+512*4)
	copy(data[1024:1024+512], bytes.Repeat([]byte{0x7A}, 512))
	reader := newTestReader(t, 1024, 512, 16, data)

	got, err := reader.ReadCluster(2)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x7A}, 512), got)
}

func TestReadClusterOutOfRangeReturnsEmptyBufferNotError(t *testing.T) {
	reader := newTestReader(t, 1024, 512, 16, make([]byte, 1024+512*4))

	got, err := reader.ReadCluster(1)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 512), got)

	got, err = reader.ReadCluster(9999)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 512), got)
}

func TestReadAllConcatenatesChainInOrder(t *testing.T) {
	data := make([]byte, 1024+512*4)
	copy(data[1024:1024+512], bytes.Repeat([]byte{0x01}, 512))
	copy(data[1024+512:1024+1024], bytes.Repeat([]byte{0x02}, 512))
	reader := newTestReader(t, 1024, 512, 16, data)

	got, err := reader.ReadAll([]uint32{2, 3})
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x01}, 512), got[:512])
	assert.Equal(t, bytes.Repeat([]byte{0x02}, 512), got[512:])
}
