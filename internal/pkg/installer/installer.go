// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package installer turns a removable block device into a multi-ISO bootable
// drive: validation, partitioning, formatting and payload staging, with
// structured progress reporting and a non-destructive dry-run mode.
package installer

import (
	"context"
	"log"
	"strings"

	"github.com/sebastienrousseau/raidhos/internal/pkg/blockdev"
	"github.com/sebastienrousseau/raidhos/internal/pkg/partition"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/report"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// Request describes one install invocation. It is immutable and never
// persisted.
//
// Wipe declares destructive intent; AllowWrite is a second, independent gate
// that must also be set before anything physical happens. The two are checked
// separately so a single mistaken flag cannot trigger data loss.
type Request struct {
	// Device is the target disk device path, e.g. /dev/sdb.
	Device string
	// PayloadVersion tags the payload being staged.
	PayloadVersion string
	// Wipe must be set for any install; it declares destructive intent.
	Wipe bool
	// DryRun runs validation and reporting without issuing any command.
	DryRun bool
	// AllowWrite must be set for a real write even when DryRun is false.
	AllowWrite bool
}

// Options represents the set of options available for an install.
type Options struct {
	Request

	// PayloadDir is the payload source directory with esp/ and data/
	// subtrees.
	PayloadDir string
	// Runner executes external commands; defaults to the host runner.
	Runner execute.Runner
	// Printf logs non-progress diagnostics; defaults to log.Printf.
	Printf func(string, ...any)
}

// Installer orchestrates one install invocation. It owns the target device
// for the duration of the call; no device-level locking is performed.
type Installer struct {
	options   *Options
	inventory *blockdev.Inventory
}

// NewInstaller initializes and returns an Installer. Defaults are applied to
// a private copy; the caller's options are never written to.
func NewInstaller(opts *Options) *Installer {
	options := *opts

	if options.Runner == nil {
		options.Runner = execute.NewHostRunner()
	}

	if options.Printf == nil {
		options.Printf = log.Printf
	}

	return &Installer{
		options:   &options,
		inventory: blockdev.NewInventory(options.Runner),
	}
}

// Install runs the linear phase machine. Progress events are delivered
// synchronously to the sink, strictly in phase order. Every error is terminal
// for the call; validation failures are always detected before any
// destructive command is issued.
func (i *Installer) Install(ctx context.Context, sink report.Sink) error {
	progress := newProgress(sink, i.options.DryRun)

	if err := i.validate(ctx, progress); err != nil {
		return err
	}

	progress.emit(report.PhasePrepare, 20, "Preparing partition layout")
	progress.emit(report.PhasePayload, 45, "Staging payload %s", i.options.PayloadVersion)
	progress.emit(report.PhaseWrite, 70, "Writing boot structures")
	progress.emit(report.PhaseFinalize, 90, "Final checks")

	if i.options.DryRun {
		progress.emit(report.PhaseComplete, 100, "Dry-run complete. No changes made.")

		return nil
	}

	if !i.options.AllowWrite {
		return xerrors.Validation("write blocked: allow-write must be set to proceed")
	}

	progress.emit(report.PhasePartition, 30, "Creating GPT partitions")

	if err := partition.CreateTable(ctx, i.options.Runner, i.options.Device); err != nil {
		return err
	}

	progress.emit(report.PhaseFormat, 60, "Formatting partitions")

	espDev := partition.DevName(i.options.Device, partition.EFIPartitionIndex)
	dataDev := partition.DevName(i.options.Device, partition.DataPartitionIndex)

	if err := partition.Format(ctx, i.options.Runner, espDev, partition.FormatOptions{
		Label:          partition.EFIPartitionLabel,
		FileSystemType: partition.FilesystemTypeVFAT,
	}, i.options.Printf); err != nil {
		return err
	}

	if err := partition.Format(ctx, i.options.Runner, dataDev, partition.FormatOptions{
		Label:          partition.DataPartitionLabel,
		FileSystemType: partition.FilesystemTypeExFAT,
	}, i.options.Printf); err != nil {
		return err
	}

	if err := i.copyPayload(ctx, progress, espDev, dataDev); err != nil {
		return err
	}

	progress.emit(report.PhaseComplete, 100, "Install complete.")

	return nil
}

// validate re-checks every safety gate against a fresh inventory snapshot; it
// never trusts caller-asserted safety.
func (i *Installer) validate(ctx context.Context, progress *progress) error {
	if !strings.HasPrefix(i.options.Device, "/dev/") {
		return xerrors.Validation("device must be an absolute /dev path")
	}

	progress.emit(report.PhaseValidate, 5, "Validating target %s", i.options.Device)

	if !i.options.Wipe {
		return xerrors.Validation("wipe flag must be set for destructive install")
	}

	disks, err := i.inventory.ListDisks(ctx)
	if err != nil {
		return err
	}

	target := blockdev.FindDisk(disks, i.options.Device)
	if target == nil {
		return xerrors.Validation("device not found: %s", i.options.Device)
	}

	if target.IsSystem {
		return xerrors.Validation("refusing to operate on system disk %s", target.ID)
	}

	if len(target.Mountpoints) > 0 {
		return xerrors.Validation("device has mounted partitions; unmount first")
	}

	return nil
}

// ReleaseDevice best-effort unmounts every partition of the device and clears
// stale signatures, so a previously used drive passes install validation. The
// signature wipe is destructive, so the same system-disk refusal applies here
// as in validate, against a fresh inventory snapshot.
func ReleaseDevice(ctx context.Context, runner execute.Runner, device string) error {
	inventory := blockdev.NewInventory(runner)

	disks, err := inventory.ListDisks(ctx)
	if err != nil {
		return err
	}

	target := blockdev.FindDisk(disks, device)
	if target == nil {
		return xerrors.Validation("device not found: %s", device)
	}

	if target.IsSystem {
		return xerrors.Validation("refusing to operate on system disk %s", target.ID)
	}

	for _, mp := range target.Mountpoints {
		_ = runner.Run(ctx, "umount", mp) //nolint:errcheck
	}

	return partition.Wipe(ctx, runner, device)
}
