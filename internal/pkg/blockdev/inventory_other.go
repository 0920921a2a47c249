// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

//go:build !linux

package blockdev

import (
	"context"

	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// Inventory is not available on this platform.
type Inventory struct{}

// NewInventory builds an Inventory; every query fails with an
// unsupported-platform error.
func NewInventory(execute.Runner) *Inventory {
	return &Inventory{}
}

// ListDisks implements the inventory contract.
func (*Inventory) ListDisks(context.Context) ([]Disk, error) {
	return nil, xerrors.UnsupportedPlatform()
}

// ListPartitions implements the inventory contract.
func (*Inventory) ListPartitions(context.Context, string) ([]Partition, error) {
	return nil, xerrors.UnsupportedPlatform()
}
