// Package clusterio maps cluster numbers onto byte offsets on a blockio.Device
// and bulk-reads the clusters of a chain, per spec §4.4.
package clusterio

import (
	log "github.com/dsoprea/go-logging"
	"github.com/noxer/bytewriter"

	"github.com/quietdrive/rofs/blockio"
)

var clusterLog = log.NewLogger("clusterio")

// Geometry is the subset of volume geometry that cluster I/O needs: where
// cluster 2 begins and how big a cluster is.
type Geometry struct {
	ClusterHeapStartByte int64
	BytesPerCluster      uint32
	ClusterCount         uint32
}

// Reader reads whole clusters off a block device.
type Reader struct {
	dev blockio.Device
	geo Geometry
}

func NewReader(dev blockio.Device, geo Geometry) *Reader {
	return &Reader{dev: dev, geo: geo}
}

// maxValidCluster is the highest cluster number that may legally appear,
// per spec §3 ("max valid cluster number is cluster_count + 1").
func (r *Reader) maxValidCluster() uint32 {
	return r.geo.ClusterCount + 1
}

// Geometry returns the cluster geometry this reader was built with.
func (r *Reader) Geometry() Geometry {
	return r.geo
}

// Offset converts a cluster number to its absolute byte offset.
func (r *Reader) Offset(clusno uint32) int64 {
	return r.geo.ClusterHeapStartByte + int64(clusno-2)*int64(r.geo.BytesPerCluster)
}

// ReadCluster reads one cluster's worth of bytes. Per spec §4.4, an
// out-of-range cluster number is not fatal: it's logged here and an empty
// buffer is returned instead of an error.
func (r *Reader) ReadCluster(clusno uint32) ([]byte, error) {
	if clusno < 2 || clusno > r.maxValidCluster() {
		clusterLog.Warningf(nil, "cluster %d out of range [2, %d], returning empty buffer", clusno, r.maxValidCluster())
		return make([]byte, r.geo.BytesPerCluster), nil
	}

	buf := make([]byte, r.geo.BytesPerCluster)
	if err := r.dev.ReadExactAt(r.Offset(clusno), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadAll reads and concatenates every cluster in chain, in order.
func (r *Reader) ReadAll(chain []uint32) ([]byte, error) {
	out := make([]byte, len(chain)*int(r.geo.BytesPerCluster))
	bw := bytewriter.New(out)

	for _, clusno := range chain {
		data, err := r.ReadCluster(clusno)
		if err != nil {
			return nil, err
		}
		if _, err := bw.Write(data); err != nil {
			return nil, err
		}
	}

	return out, nil
}
