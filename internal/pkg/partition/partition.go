// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package partition creates the on-disk layout for a multi-ISO boot drive by
// driving the host partition-table tool.
package partition

import (
	"context"
	"fmt"

	"github.com/sebastienrousseau/raidhos/pkg/execute"
)

const (
	// EFIPartitionLabel is the FAT32 label of the EFI system partition.
	EFIPartitionLabel = "RAIDHOS"
	// DataPartitionLabel is the exFAT label of the payload data partition.
	DataPartitionLabel = "RAIDHOS_DATA"

	// espStart is the offset where the EFI system partition begins.
	espStart = "1MiB"
	// espEnd is the offset where the EFI system partition ends and the data
	// partition begins.
	espEnd = "33MiB"
)

const (
	// EFIPartitionIndex is the partition index of the EFI system partition.
	EFIPartitionIndex = 1
	// DataPartitionIndex is the partition index of the payload data partition.
	DataPartitionIndex = 2
)

// DevName returns the device path of the numbered partition on a disk. A `p`
// separator is inserted when the disk path ends in a digit (NVMe-style
// naming); getting this wrong would make format and mount target the wrong
// node.
func DevName(disk string, index uint) string {
	sep := ""

	if len(disk) > 0 {
		if last := disk[len(disk)-1]; last >= '0' && last <= '9' {
			sep = "p"
		}
	}

	return fmt.Sprintf("%s%s%d", disk, sep, index)
}

// CreateTable writes a fresh GPT table with the boot drive layout: a small
// EFI system partition flagged esp, and a data partition spanning the rest
// of the device.
func CreateTable(ctx context.Context, runner execute.Runner, disk string) error {
	steps := [][]string{
		{disk, "-s", "mklabel", "gpt"},
		{disk, "-s", "mkpart", "primary", "fat32", espStart, espEnd},
		{disk, "-s", "set", "1", "esp", "on"},
		{disk, "-s", "mkpart", "primary", espEnd, "100%"},
		{disk, "-s", "print"},
	}

	for _, args := range steps {
		if err := runner.Run(ctx, "parted", args...); err != nil {
			return err
		}
	}

	return nil
}
