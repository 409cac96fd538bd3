package roimg

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/afero"
)

// BuilderFile describes one root-level file to embed in a synthetic FAT32
// image. Content must fit in a single cluster — this builder targets unit
// tests exercising directory listing and range reads, not arbitrary image
// construction.
type BuilderFile struct {
	Name    string
	Content []byte
	IsDir   bool
}

// bytesPerSector, sectorsPerCluster are fixed for every image this builder
// produces; FAT32's minimum cluster-count floor (65526) means a
// from-scratch test image must still carry a large reserved area, so this
// builder deliberately produces a geometry smaller than a real FAT32
// volume would allow — it exists to exercise the decode/walk logic against
// known bytes, not to pass as a real-world-compliant volume.
const (
	bytesPerSector    = 512
	sectorsPerCluster = 1
	reservedSectors   = 32
	numFATs           = 2
)

// BuildFAT32StagingFS stages files into an in-memory afero filesystem so
// callers can inspect the intended layout. BuildFAT32Image does not read
// this filesystem: it packs the []BuilderFile it is given, so changes made
// to the staged filesystem do not reach the image.
func BuildFAT32StagingFS(files []BuilderFile) (afero.Fs, error) {
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if f.IsDir {
			if err := fs.MkdirAll("/"+f.Name, 0755); err != nil {
				return nil, err
			}
			continue
		}
		if err := afero.WriteFile(fs, "/"+f.Name, f.Content, 0644); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

// BuildFAT32Image bakes files into a minimal-but-decodable FAT32 disk
// image: one boot sector, two identical FATs, and a single-cluster root
// directory whose SFN entries point at one data cluster per file.
func BuildFAT32Image(files []BuilderFile) ([]byte, error) {
	sectorsPerFAT := uint32(8)
	dataStartSector := uint32(reservedSectors) + sectorsPerFAT*numFATs
	clusterCount := uint32(len(files)) + 1 // +1 for the root directory's own cluster

	totalSectors := dataStartSector + clusterCount*sectorsPerCluster
	img := make([]byte, totalSectors*bytesPerSector)

	writeBootSector(img, sectorsPerFAT, totalSectors)

	fatStart := reservedSectors * bytesPerSector
	rootCluster := uint32(2)
	writeFATEntry(img, fatStart, int(sectorsPerFAT)*bytesPerSector, rootCluster, 0x0FFFFFFF)

	dataStart := int(dataStartSector) * bytesPerSector

	clusterOf := func(n uint32) int {
		return dataStart + int(n-2)*bytesPerSector*sectorsPerCluster
	}

	nextCluster := rootCluster + 1
	rootDirOffset := clusterOf(rootCluster)
	entryOffset := rootDirOffset

	for _, f := range files {
		if len(f.Content) > bytesPerSector*sectorsPerCluster {
			return nil, fmt.Errorf("file %q content exceeds one cluster", f.Name)
		}

		fileCluster := nextCluster
		nextCluster++
		writeFATEntry(img, fatStart, int(sectorsPerFAT)*bytesPerSector, fileCluster, 0x0FFFFFFF)

		attr := byte(0x20) // archive
		if f.IsDir {
			attr = 0x10
		}
		writeSFNEntry(img[entryOffset:entryOffset+32], f.Name, attr, fileCluster, uint32(len(f.Content)))
		entryOffset += 32

		copy(img[clusterOf(fileCluster):], f.Content)
	}

	return img, nil
}

func writeBootSector(img []byte, sectorsPerFAT, totalSectors uint32) {
	binary.LittleEndian.PutUint16(img[11:13], bytesPerSector)
	img[13] = sectorsPerCluster
	binary.LittleEndian.PutUint16(img[14:16], reservedSectors)
	img[16] = numFATs
	binary.LittleEndian.PutUint16(img[17:19], 0) // rootEntryCount == 0 for FAT32
	binary.LittleEndian.PutUint32(img[32:36], totalSectors)
	binary.LittleEndian.PutUint32(img[36:40], sectorsPerFAT)
	binary.LittleEndian.PutUint32(img[44:48], 2) // root directory's first cluster
	binary.LittleEndian.PutUint16(img[510:512], 0xAA55)
}

func writeFATEntry(img []byte, fatStart, fatSize int, clusno, value uint32) {
	off := fatStart + int(clusno)*4
	binary.LittleEndian.PutUint32(img[off:off+4], value)
	// Mirror into the second FAT copy.
	binary.LittleEndian.PutUint32(img[off+fatSize:off+fatSize+4], value)
}

func writeSFNEntry(record []byte, name string, attr byte, clusno, size uint32) {
	base, ext := splitName(name)
	for i := 0; i < 8; i++ {
		if i < len(base) {
			record[i] = base[i]
		} else {
			record[i] = ' '
		}
	}
	for i := 0; i < 3; i++ {
		if i < len(ext) {
			record[8+i] = ext[i]
		} else {
			record[8+i] = ' '
		}
	}
	record[11] = attr
	binary.LittleEndian.PutUint16(record[20:22], uint16(clusno>>16))
	binary.LittleEndian.PutUint16(record[26:28], uint16(clusno&0xFFFF))
	binary.LittleEndian.PutUint32(record[28:32], size)
}

func splitName(name string) (base, ext string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
