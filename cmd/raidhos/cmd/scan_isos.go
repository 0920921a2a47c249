// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/internal/pkg/iso"
	"github.com/sebastienrousseau/raidhos/pkg/config"
)

var scanISOsCmdFlags struct {
	dirs []string
}

var scanISOsCmd = &cobra.Command{
	Use:   "scan-isos",
	Short: "Scan directories for ISO images",
	RunE: func(cmd *cobra.Command, args []string) error {
		dirs := scanISOsCmdFlags.dirs

		if len(dirs) == 0 {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			dirs = cfg.ISODirs
		}

		images, err := iso.Scan(dirs)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TITLE\tPATH\tSIZE\tPARAMS")

		for _, image := range images {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				image.Title,
				image.Path,
				humanize.IBytes(image.SizeBytes),
				image.Params,
			)
		}

		return w.Flush()
	},
}

func init() {
	scanISOsCmd.Flags().StringSliceVar(&scanISOsCmdFlags.dirs, "dirs", nil, "directories to scan (defaults to the configured isoDirs)")

	rootCmd.AddCommand(scanISOsCmd)
}
