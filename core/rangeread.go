package core

import (
	"github.com/quietdrive/rofs/clusterio"
	"github.com/quietdrive/rofs/fsinfo"
)

// readRangeFromChain implements the range-read algorithm of spec §4.8:
// clamp the requested range to the file's size, locate the covering
// clusters by offset/bytesPerCluster, read only those clusters, and slice
// out the requested bytes by offset-mod-clustersize.
func readRangeFromChain(reader *clusterio.Reader, chain []uint32, fi fsinfo.FileInfo, offset int64, buf []byte) (int, error) {
	if offset < 0 || offset >= int64(fi.Size) || len(buf) == 0 {
		return 0, nil
	}

	remaining := int64(fi.Size) - offset
	want := int64(len(buf))
	if want > remaining {
		want = remaining
	}

	bytesPerCluster := int64(reader.Geometry().BytesPerCluster)
	startClusterIdx := offset / bytesPerCluster
	endByte := offset + want - 1
	endClusterIdx := endByte / bytesPerCluster

	if startClusterIdx >= int64(len(chain)) {
		return 0, nil
	}
	if endClusterIdx >= int64(len(chain)) {
		endClusterIdx = int64(len(chain)) - 1
	}

	span := chain[startClusterIdx : endClusterIdx+1]
	data, err := reader.ReadAll(span)
	if err != nil {
		return 0, err
	}

	startWithinSpan := offset % bytesPerCluster
	endWithinSpan := startWithinSpan + want
	if endWithinSpan > int64(len(data)) {
		endWithinSpan = int64(len(data))
	}
	if startWithinSpan >= int64(len(data)) {
		return 0, nil
	}

	n := copy(buf, data[startWithinSpan:endWithinSpan])
	return n, nil
}
