// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sebastienrousseau/raidhos/internal/pkg/installer"
	"github.com/sebastienrousseau/raidhos/pkg/config"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/report"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

var installCmdFlags struct {
	device         string
	payloadVersion string
	wipe           bool
	dryRun         bool
	allowWrite     bool
	release        bool
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Repartition a removable drive and stage the boot payload",
	Long: `Install validates the target, then partitions, formats and stages the
payload onto it. The operation is destructive; it requires both --wipe and
--allow-write, and refuses system disks and disks with mounted partitions.
The default is a dry run that reports what would happen without touching
the device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		runner := execute.NewHostRunner()

		if installCmdFlags.release && !installCmdFlags.dryRun {
			// releasing wipes signatures, so it sits behind the same
			// two flags as the install itself
			if !installCmdFlags.wipe || !installCmdFlags.allowWrite {
				return xerrors.Validation("release blocked: both wipe and allow-write must be set")
			}

			if err := installer.ReleaseDevice(cmd.Context(), runner, installCmdFlags.device); err != nil {
				return err
			}
		}

		payloadVersion := installCmdFlags.payloadVersion
		if payloadVersion == "" {
			payloadVersion = installer.PayloadVersion(cfg.PayloadDir)
		}

		ins := installer.NewInstaller(&installer.Options{
			Request: installer.Request{
				Device:         installCmdFlags.device,
				PayloadVersion: payloadVersion,
				Wipe:           installCmdFlags.wipe,
				DryRun:         installCmdFlags.dryRun,
				AllowWrite:     installCmdFlags.allowWrite,
			},
			PayloadDir: cfg.PayloadDir,
			Runner:     runner,
		})

		return ins.Install(cmd.Context(), report.NewTerminalSink(os.Stdout))
	},
}

func init() {
	installCmd.Flags().StringVar(&installCmdFlags.device, "device", "", "target disk device path, e.g. /dev/sdb")
	installCmd.Flags().StringVar(&installCmdFlags.payloadVersion, "payload-version", "", "payload version tag (defaults to the payload manifest)")
	installCmd.Flags().BoolVar(&installCmdFlags.wipe, "wipe", false, "declare destructive intent")
	installCmd.Flags().BoolVar(&installCmdFlags.dryRun, "dry-run", true, "simulate without mutating the device")
	installCmd.Flags().BoolVar(&installCmdFlags.allowWrite, "allow-write", false, "final confirmation gate for real writes")
	installCmd.Flags().BoolVar(&installCmdFlags.release, "release", false, "unmount the device's partitions and clear stale signatures first")

	installCmd.MarkFlagRequired("device") //nolint:errcheck

	rootCmd.AddCommand(installCmd)
}
