// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/internal/pkg/partition"
	"github.com/sebastienrousseau/raidhos/pkg/bootcfg"
	"github.com/sebastienrousseau/raidhos/pkg/config"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// scriptRelPath is where firmware expects the generated boot script on the
// EFI partition.
var scriptRelPath = filepath.Join("EFI", "BOOT", "grub.cfg")

var bootConfigCmdFlags struct {
	configPath string
	espMount   string
	dataMount  string
	label      string
}

var renderConfigCmd = &cobra.Command{
	Use:   "render-config",
	Short: "Render the boot menu description into a boot-loader script",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootcfg.Load(bootConfigCmdFlags.configPath)
		if err != nil {
			return err
		}

		script, err := bootcfg.Render(cfg, dataLabel())
		if err != nil {
			return err
		}

		fmt.Print(script)

		return nil
	},
}

var writeConfigCmd = &cobra.Command{
	Use:   "write-config",
	Short: "Write the rendered boot script to a mounted EFI partition",
	Long: `Renders the boot menu description and writes the script to EFI/BOOT on
the given ESP mount. With --data-mount, the menu description itself is also
saved on the data volume so it can be edited later.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := bootcfg.Load(bootConfigCmdFlags.configPath)
		if err != nil {
			return err
		}

		script, err := bootcfg.Render(cfg, dataLabel())
		if err != nil {
			return err
		}

		scriptPath := filepath.Join(bootConfigCmdFlags.espMount, scriptRelPath)

		if err := os.MkdirAll(filepath.Dir(scriptPath), 0o755); err != nil {
			return xerrors.Io("creating %s: %v", filepath.Dir(scriptPath), err)
		}

		if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
			return xerrors.Io("writing %s: %v", scriptPath, err)
		}

		fmt.Printf("wrote %s\n", scriptPath)

		if bootConfigCmdFlags.dataMount != "" {
			saved, err := bootcfg.Save(filepath.Join(bootConfigCmdFlags.dataMount, "raidhos"), cfg)
			if err != nil {
				return err
			}

			fmt.Printf("wrote %s\n", saved)
		}

		return nil
	},
}

func dataLabel() string {
	if bootConfigCmdFlags.label != "" {
		return bootConfigCmdFlags.label
	}

	if cfg, err := config.Load(); err == nil && cfg.DataLabel != "" {
		return cfg.DataLabel
	}

	return partition.DataPartitionLabel
}

func init() {
	for _, cmd := range []*cobra.Command{renderConfigCmd, writeConfigCmd} {
		cmd.Flags().StringVar(&bootConfigCmdFlags.configPath, "config", "", "path to the boot menu description (boot.json)")
		cmd.Flags().StringVar(&bootConfigCmdFlags.label, "label", "", "data volume label referenced by the script")
		cmd.MarkFlagRequired("config") //nolint:errcheck
	}

	writeConfigCmd.Flags().StringVar(&bootConfigCmdFlags.espMount, "esp-mount", "", "mount path of the EFI partition")
	writeConfigCmd.Flags().StringVar(&bootConfigCmdFlags.dataMount, "data-mount", "", "mount path of the data partition")
	writeConfigCmd.MarkFlagRequired("esp-mount") //nolint:errcheck

	rootCmd.AddCommand(renderConfigCmd)
	rootCmd.AddCommand(writeConfigCmd)
}
