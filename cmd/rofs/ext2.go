package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/quietdrive/rofs/internal/ext2ro"
)

var ext2Command = &cli.Command{
	Name:      "ext2",
	Usage:     "dump an ext2 superblock (informational only, no directory traversal)",
	ArgsUsage: "IMAGE_FILE",
	Action:    runExt2,
}

func runExt2(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing IMAGE_FILE argument")
	}

	device, closeDevice, err := openImagePath(path)
	if err != nil {
		return err
	}
	defer closeDevice()

	region := make([]byte, 264)
	if err := device.ReadExactAt(1024, region); err != nil {
		return err
	}

	sb, err := ext2ro.Parse(region)
	if err != nil {
		return err
	}

	fmt.Printf("Volume name:     %q\n", sb.VolumeName)
	fmt.Printf("Block size:      %s\n", humanize.Bytes(uint64(sb.BlockSize)))
	fmt.Printf("Blocks:          %d (free: %d)\n", sb.BlocksCount, sb.FreeBlocksCount)
	fmt.Printf("Inodes:          %d (free: %d)\n", sb.InodesCount, sb.FreeInodesCount)
	fmt.Printf("Inode size:      %d\n", sb.InodeSize)
	return nil
}
