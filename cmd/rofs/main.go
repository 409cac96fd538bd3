// Command rofs inspects and mounts read-only FAT32/exFAT disk images, with
// peripheral MBR and ext2-superblock dump subcommands. Shaped on the
// teacher's cmd/main.go single-subcommand urfave/cli/v2 app, generalized
// to the subcommands spec §7 calls for.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "rofs",
		Usage: "inspect and mount read-only FAT32/exFAT disk images",
		Commands: []*cli.Command{
			fat32Command,
			exfatCommand,
			mbrCommand,
			ext2Command,
			mountCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rofs: %s\n", err)
		os.Exit(1)
	}
}
