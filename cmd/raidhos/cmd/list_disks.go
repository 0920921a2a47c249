// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/internal/pkg/blockdev"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
)

var listDisksCmd = &cobra.Command{
	Use:   "list-disks",
	Short: "List block devices and whether they are safe install targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		inventory := blockdev.NewInventory(execute.NewHostRunner())

		disks, err := inventory.ListDisks(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tMODEL\tSIZE\tREMOVABLE\tSYSTEM\tMOUNTPOINTS")

		for _, disk := range disks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\t%s\n",
				disk.ID,
				disk.Model,
				humanize.IBytes(disk.SizeBytes),
				disk.Removable,
				disk.IsSystem,
				strings.Join(disk.Mountpoints, ","),
			)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listDisksCmd)
}
