// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package mount stages partitions at temporary mount points for payload
// copies.
package mount

import (
	"context"
	"os"

	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// Point represents one mounted partition.
type Point struct {
	source string
	target string
}

// NewPoint initializes and returns a Point.
func NewPoint(source, target string) *Point {
	return &Point{
		source: source,
		target: target,
	}
}

// Source returns the partition device path.
func (p *Point) Source() string {
	return p.source
}

// Target returns the mount target path.
func (p *Point) Target() string {
	return p.target
}

// Mount creates the target directory and mounts the partition at it.
func (p *Point) Mount(ctx context.Context, runner execute.Runner) error {
	if err := os.MkdirAll(p.target, 0o755); err != nil {
		return xerrors.Io("creating mount point %s: %v", p.target, err)
	}

	return runner.Run(ctx, "mount", p.source, p.target)
}

// Unmount unmounts the partition. Failures are swallowed: by the time the
// unmount runs the payload is already committed to disk.
func (p *Point) Unmount(ctx context.Context, runner execute.Runner) {
	_ = runner.Run(ctx, "umount", p.target) //nolint:errcheck
}
