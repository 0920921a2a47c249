// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/internal/pkg/blockdev"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
)

var listPartitionsCmd = &cobra.Command{
	Use:   "list-partitions <device>",
	Short: "List the partitions of one disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inventory := blockdev.NewInventory(execute.NewHostRunner())

		parts, err := inventory.ListPartitions(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "DEVICE\tLABEL\tFSTYPE\tMOUNTPOINTS")

		for _, part := range parts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				part.ID,
				part.Label,
				part.FSType,
				strings.Join(part.Mountpoints, ","),
			)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listPartitionsCmd)
}
