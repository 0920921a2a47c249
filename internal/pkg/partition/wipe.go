// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package partition

import (
	"context"

	"github.com/sebastienrousseau/raidhos/pkg/execute"
)

// Wipe clears all filesystem and partition-table signatures from the disk so
// that a stale superblock cannot shadow the new layout.
func Wipe(ctx context.Context, runner execute.Runner, disk string) error {
	return runner.Run(ctx, "wipefs", "-a", disk)
}
