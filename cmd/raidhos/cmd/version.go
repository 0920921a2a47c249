// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version.PrintLong(os.Stdout)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
