package core

import (
	"github.com/dsoprea/go-logging"
	"github.com/hashicorp/go-multierror"

	"github.com/quietdrive/rofs/clusterio"
	rofserrors "github.com/quietdrive/rofs/errors"
	"github.com/quietdrive/rofs/exfatdirent"
	"github.com/quietdrive/rofs/fat32table"
	"github.com/quietdrive/rofs/fsinfo"
	"github.com/quietdrive/rofs/geometry"
)

var exfatLog = log.NewLogger("core.exfat")

// ExFATBackend implements Backend over an exFAT volume. exFAT's FAT region
// uses the same 32-bit next-cluster/EOF/bad encoding as FAT32 (spec §3), so
// chain walking reuses fat32table.Table; only the directory-entry-set
// reduction differs, handled by exfatdirent.
type ExFATBackend struct {
	geo    *geometry.Geometry
	table  *fat32table.Table
	reader *clusterio.Reader

	bitmap *exfatdirent.AllocationBitmapRef
}

// NewExFATBackend builds a backend from a parsed geometry and shared table
// reader.
func NewExFATBackend(geo *geometry.Geometry, table *fat32table.Table, reader *clusterio.Reader) *ExFATBackend {
	return &ExFATBackend{geo: geo, table: table, reader: reader}
}

// RootInfo returns the synthetic root record.
func (b *ExFATBackend) RootInfo() fsinfo.FileInfo {
	return fsinfo.FileInfo{
		ID:           fsinfo.RootID,
		Name:         "/",
		IsDir:        true,
		FirstCluster: b.geo.RootFirstCluster,
	}
}

// ListDirectory walks the cluster chain rooted at firstCluster, reducing
// its entry sets into FileInfo records, per spec §4.6/§4.7.
func (b *ExFATBackend) ListDirectory(firstCluster uint32) ([]fsinfo.FileInfo, error) {
	chain, err := b.table.Iterate(firstCluster)
	if err != nil {
		return nil, err
	}

	var out []fsinfo.FileInfo
	var warnings *multierror.Error
	reducer := exfatdirent.NewReducer()

	for _, clusno := range chain {
		data, err := b.reader.ReadCluster(clusno)
		if err != nil {
			warnings = multierror.Append(warnings, err)
			continue
		}

		done := false
		for off := 0; off+exfatdirent.RecordSize <= len(data); off += exfatdirent.RecordSize {
			record := data[off : off+exfatdirent.RecordSize]
			entry, ok, stop := reducer.Feed(record)
			if stop {
				done = true
				break
			}
			if ok {
				out = append(out, exfatEntryToFileInfo(clusno, uint32(off), entry))
			}
		}
		if done {
			break
		}
	}

	if warnings.ErrorOrNil() != nil {
		exfatLog.Warningf(nil, "directory listing encountered recoverable errors: %s", warnings)
	}
	return out, nil
}

func exfatEntryToFileInfo(dirCluster uint32, offset uint32, entry exfatdirent.Reduced) fsinfo.FileInfo {
	return fsinfo.FileInfo{
		ID:           fsinfo.MakeID(dirCluster, offset),
		Name:         entry.Name,
		IsDir:        entry.IsDir,
		IsReadOnly:   entry.IsReadOnly,
		IsHidden:     entry.IsHidden,
		IsSystem:     entry.IsSystem,
		Size:         entry.DataLength,
		FirstCluster: entry.FirstCluster,
		CreateTime:   entry.CreateTime,
		WriteTime:    entry.WriteTime,
		AccessTime:   entry.AccessTime,
	}
}

// AllocationBitmap discovers and loads the volume's allocation-bitmap
// directory entry from the root directory (spec §6: "additionally reads
// the root directory once to discover the allocation-bitmap cluster").
// The result is cached after the first successful call; Geometry's
// BitmapFirstCluster is populated as a side effect, mirroring the mount
// path's one-time root scan.
func (b *ExFATBackend) AllocationBitmap() (*exfatdirent.AllocationBitmapRef, error) {
	if b.bitmap != nil {
		return b.bitmap, nil
	}

	chain, err := b.table.Iterate(b.geo.RootFirstCluster)
	if err != nil {
		return nil, err
	}

	var found *exfatdirent.AllocationBitmapRef
	for _, clusno := range chain {
		data, err := b.reader.ReadCluster(clusno)
		if err != nil {
			return nil, err
		}
		for off := 0; off+exfatdirent.RecordSize <= len(data); off += exfatdirent.RecordSize {
			record := data[off : off+exfatdirent.RecordSize]
			if record[0] != exfatdirent.TypeAllocationBmp {
				continue
			}
			ref, err := exfatdirent.DecodeAllocationBitmapEntry(record)
			if err != nil {
				exfatLog.Warningf(nil, "dropping unparseable allocation-bitmap entry: %s", err)
				continue
			}
			found = &ref
			break
		}
		if found != nil {
			break
		}
	}

	if found == nil {
		return nil, rofserrors.ErrEntrySetCorrupt.WithMessage("root directory has no allocation-bitmap entry")
	}

	bitmapChain, err := b.table.Iterate(found.FirstCluster)
	if err != nil {
		return nil, err
	}
	bits, err := b.reader.ReadAll(bitmapChain)
	if err != nil {
		return nil, err
	}
	found.LoadBits(bits)

	b.geo.BitmapFirstCluster = found.FirstCluster
	b.bitmap = found
	return b.bitmap, nil
}

// ReadRange reads fi's data, per spec §4.8.
func (b *ExFATBackend) ReadRange(fi fsinfo.FileInfo, offset int64, buf []byte) (int, error) {
	if fi.Size == 0 {
		return 0, nil
	}
	chain, err := b.table.Iterate(fi.FirstCluster)
	if err != nil {
		return 0, err
	}
	return readRangeFromChain(b.reader, chain, fi, offset, buf)
}
