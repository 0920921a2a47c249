// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blockdev

import (
	"context"
	"strings"

	"github.com/sebastienrousseau/raidhos/pkg/execute"
)

const lsblkColumns = "NAME,MODEL,SIZE,RM,TYPE,MOUNTPOINTS,LABEL,FSTYPE,PKNAME"

// Inventory queries block devices through the host query tool.
type Inventory struct {
	runner execute.Runner
}

// NewInventory builds an Inventory on top of the given runner.
func NewInventory(runner execute.Runner) *Inventory {
	return &Inventory{runner: runner}
}

// ListDisks returns all whole disks currently visible to the system.
func (inv *Inventory) ListDisks(ctx context.Context) ([]Disk, error) {
	raw, err := inv.runner.Output(ctx, "lsblk", "-b", "-J", "-o", lsblkColumns)
	if err != nil {
		return nil, err
	}

	return parseDisks(raw)
}

// ListPartitions returns the partitions of the disk with the given device
// path, e.g. "/dev/sdb".
func (inv *Inventory) ListPartitions(ctx context.Context, diskID string) ([]Partition, error) {
	raw, err := inv.runner.Output(ctx, "lsblk", "-b", "-J", "-o", lsblkColumns)
	if err != nil {
		return nil, err
	}

	return parsePartitions(raw, strings.TrimPrefix(diskID, "/dev/"))
}
