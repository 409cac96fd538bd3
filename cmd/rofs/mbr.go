package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/quietdrive/rofs/internal/partition"
)

var mbrCommand = &cli.Command{
	Name:      "mbr",
	Usage:     "dump a classic MBR partition table",
	ArgsUsage: "IMAGE_FILE",
	Action:    runMBR,
}

func runMBR(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing IMAGE_FILE argument")
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

	table, err := partition.Parse(sector)
	if err != nil {
		return err
	}

	for i, p := range table.Partitions {
		if p.IsEmpty() {
			continue
		}
		fmt.Printf("partition %d: type=0x%02x active=%v start_lba=%d size=%s\n",
			i+1, p.Type, p.IsActive(), p.LBAStart, humanize.Bytes(uint64(p.NumSector)*512))
	}
	return nil
}
