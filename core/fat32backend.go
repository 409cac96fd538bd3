package core

import (
	"github.com/dsoprea/go-logging"
	"github.com/hashicorp/go-multierror"

	"github.com/quietdrive/rofs/clusterio"
	"github.com/quietdrive/rofs/fat32dirent"
	"github.com/quietdrive/rofs/fat32table"
	"github.com/quietdrive/rofs/fsinfo"
	"github.com/quietdrive/rofs/geometry"
)

var fat32Log = log.NewLogger("core.fat32")

// FAT32Backend implements Backend over a FAT32 volume, wiring
// geometry.Geometry, fat32table.Table, clusterio.Reader, and
// fat32dirent.Reducer together (spec §4.7, grounded on
// drivers/fat/driverbase.go's directory-walking shape, generalized to the
// uniform Backend surface).
type FAT32Backend struct {
	geo    *geometry.Geometry
	table  *fat32table.Table
	reader *clusterio.Reader
}

// NewFAT32Backend builds a backend from a parsed geometry and the table
// reader built atop the same block device.
func NewFAT32Backend(geo *geometry.Geometry, table *fat32table.Table, reader *clusterio.Reader) *FAT32Backend {
	return &FAT32Backend{geo: geo, table: table, reader: reader}
}

// RootInfo returns the synthetic root record.
func (b *FAT32Backend) RootInfo() fsinfo.FileInfo {
	return fsinfo.FileInfo{
		ID:           fsinfo.RootID,
		Name:         "/",
		IsDir:        true,
		FirstCluster: b.geo.RootFirstCluster,
	}
}

// ListDirectory walks the cluster chain rooted at firstCluster, reducing
// its 32-byte records into FileInfo entries, per spec §4.7. Deleted and
// volume-label records are skipped. A malformed LFN run does not drop the
// entry: it is listed under its short name, and no warning is logged for
// it. A cluster that fails to read is skipped and reported in one logged
// warning; errors walking the FAT itself are fatal.
func (b *FAT32Backend) ListDirectory(firstCluster uint32) ([]fsinfo.FileInfo, error) {
	chain, err := b.table.Iterate(firstCluster)
	if err != nil {
		return nil, err
	}

	var out []fsinfo.FileInfo
	var warnings *multierror.Error
	reducer := fat32dirent.NewReducer()

	for _, clusno := range chain {
		data, err := b.reader.ReadCluster(clusno)
		if err != nil {
			warnings = multierror.Append(warnings, err)
			continue
		}

		done := false
		for off := 0; off+fat32dirent.RecordSize <= len(data); off += fat32dirent.RecordSize {
			record := data[off : off+fat32dirent.RecordSize]
			entry, ok, stop := reducer.Feed(record)
			if stop {
				done = true
				break
			}
			if ok {
				out = append(out, fat32EntryToFileInfo(clusno, uint32(off), entry))
			}
		}
		if done {
			break
		}
	}

	if warnings.ErrorOrNil() != nil {
		fat32Log.Warningf(nil, "directory listing encountered recoverable errors: %s", warnings)
	}
	return out, nil
}

func fat32EntryToFileInfo(dirCluster uint32, offset uint32, entry fat32dirent.Reduced) fsinfo.FileInfo {
	s := entry.Short
	return fsinfo.FileInfo{
		ID:           fsinfo.MakeID(dirCluster, offset),
		Name:         entry.Name,
		IsDir:        s.Attribute&fat32dirent.AttrDirectory != 0,
		IsReadOnly:   s.Attribute&fat32dirent.AttrReadOnly != 0,
		IsHidden:     s.Attribute&fat32dirent.AttrHidden != 0,
		IsSystem:     s.Attribute&fat32dirent.AttrSystem != 0,
		Size:         uint64(s.FileSize),
		FirstCluster: s.FirstCluster(),
		CreateTime:   s.CreateTime(),
		WriteTime:    s.WriteTimestamp(),
		AccessTime:   s.AccessTime(),
	}
}

// ReadRange reads fi's data, per spec §4.8.
func (b *FAT32Backend) ReadRange(fi fsinfo.FileInfo, offset int64, buf []byte) (int, error) {
	if fi.Size == 0 {
		return 0, nil
	}
	chain, err := b.table.Iterate(fi.FirstCluster)
	if err != nil {
		return 0, err
	}
	return readRangeFromChain(b.reader, chain, fi, offset, buf)
}
