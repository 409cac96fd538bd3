package main

import (
	"bytes"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/quietdrive/rofs/bridge/fuse"
	"github.com/quietdrive/rofs/clusterio"
	"github.com/quietdrive/rofs/core"
	"github.com/quietdrive/rofs/fat32table"
	"github.com/quietdrive/rofs/geometry"
	"github.com/quietdrive/rofs/inode"
)

var mountCommand = &cli.Command{
	Name:      "mount",
	Usage:     "mount a FAT32 or exFAT disk image read-only via FUSE",
	ArgsUsage: "IMAGE_FILE MOUNTPOINT",
	Action:    runMount,
}

func runMount(c *cli.Context) error {
	path := c.Args().Get(0)
	mountpoint := c.Args().Get(1)
	if path == "" || mountpoint == "" {
		return fmt.Errorf("usage: rofs mount IMAGE_FILE MOUNTPOINT")
	}

	device, closeDevice, err := openImagePath(path)
	if err != nil {
		return err
	}
	defer closeDevice()

	sector := make([]byte, 512)
	if err := device.ReadExactAt(0, sector); err != nil {
		return err
	}

	var geo *geometry.Geometry
	if bytes.Equal(sector[3:11], []byte("EXFAT   ")) {
		geo, err = geometry.ParseExFATBootSector(sector)
	} else {
		geo, err = geometry.ParseFAT32BootSector(sector)
	}
	if err != nil {
		return err
	}

	table := fat32table.NewTable(device, geo.FATRegionStartSector, geo.BytesPerSector, geo.ClusterCount)
	reader := clusterio.NewReader(device, clusterio.Geometry{
		ClusterHeapStartByte: geo.ClusterHeapStartByte,
		BytesPerCluster:      geo.BytesPerCluster,
		ClusterCount:         geo.ClusterCount,
	})

	var backend core.Backend
	if geo.Format == geometry.FormatExFAT {
		exfatBackend := core.NewExFATBackend(geo, table, reader)
		if _, err := exfatBackend.AllocationBitmap(); err != nil {
			return err
		}
		backend = exfatBackend
	} else {
		backend = core.NewFAT32Backend(geo, table, reader)
	}

	cache := inode.New(backend)
	return fuse.Mount(mountpoint, cache, int64(geo.BytesPerCluster))
}
