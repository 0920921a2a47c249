// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/pkg/bootcfg"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

var copyISOsCmdFlags struct {
	mount string
}

var copyISOsCmd = &cobra.Command{
	Use:   "copy-isos <iso>...",
	Short: "Copy ISO images onto the mounted data volume",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destDir := filepath.Join(copyISOsCmdFlags.mount, bootcfg.ISODir)

		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return xerrors.Io("creating %s: %v", destDir, err)
		}

		for _, src := range args {
			dest := filepath.Join(destDir, filepath.Base(src))

			if err := copyFile(src, dest); err != nil {
				return err
			}

			fmt.Printf("copied %s\n", dest)
		}

		return nil
	},
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return xerrors.Io("opening %s: %v", src, err)
	}

	defer in.Close() //nolint:errcheck

	out, err := os.Create(dest)
	if err != nil {
		return xerrors.Io("creating %s: %v", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close() //nolint:errcheck

		return xerrors.Io("copying to %s: %v", dest, err)
	}

	return out.Close()
}

func init() {
	copyISOsCmd.Flags().StringVar(&copyISOsCmdFlags.mount, "mount", "", "mount path of the data partition")
	copyISOsCmd.MarkFlagRequired("mount") //nolint:errcheck

	rootCmd.AddCommand(copyISOsCmd)
}
