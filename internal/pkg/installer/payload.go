// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package installer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sebastienrousseau/raidhos/internal/pkg/mount"
	"github.com/sebastienrousseau/raidhos/pkg/config"
	"github.com/sebastienrousseau/raidhos/pkg/report"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// copyPayload mounts the freshly formatted partitions at temporary mount
// points and copies the esp/ and data/ payload subtrees onto them. Unmount
// failures after a successful copy are swallowed; the payload is already
// committed to disk by then.
func (i *Installer) copyPayload(ctx context.Context, progress *progress, espDev, dataDev string) error {
	espSource, dataSource, err := i.payloadSources()
	if err != nil {
		return err
	}

	espTarget, err := os.MkdirTemp("", "raidhos-esp-")
	if err != nil {
		return xerrors.Io("creating ESP mount point: %v", err)
	}

	dataTarget, err := os.MkdirTemp("", "raidhos-data-")
	if err != nil {
		return xerrors.Io("creating data mount point: %v", err)
	}

	espMount := mount.NewPoint(espDev, espTarget)
	dataMount := mount.NewPoint(dataDev, dataTarget)

	if err := espMount.Mount(ctx, i.options.Runner); err != nil {
		return err
	}

	if err := dataMount.Mount(ctx, i.options.Runner); err != nil {
		espMount.Unmount(ctx, i.options.Runner)

		return err
	}

	progress.emit(report.PhasePayload, 85, "Copying payload files")

	// cp -a <src>/. <dst> copies the subtree's contents, not the subtree
	// directory itself.
	copyErr := i.options.Runner.Run(ctx, "cp", "-a", espSource+"/.", espTarget)
	if copyErr == nil {
		copyErr = i.options.Runner.Run(ctx, "cp", "-a", dataSource+"/.", dataTarget)
	}

	espMount.Unmount(ctx, i.options.Runner)
	dataMount.Unmount(ctx, i.options.Runner)

	if copyErr != nil {
		return copyErr
	}

	progress.emit(report.PhasePayload, 90, "Payload copy complete.")

	return nil
}

// payloadSources resolves and checks the payload source directory. A missing
// or incomplete payload fails the install; it is never silently skipped.
func (i *Installer) payloadSources() (espSource, dataSource string, err error) {
	dir := i.options.PayloadDir
	if dir == "" {
		return "", "", xerrors.Validation("payload directory not set (set %s or payloadDir in the config)", config.PayloadDirEnv)
	}

	if _, err := os.Stat(dir); err != nil {
		return "", "", xerrors.Validation("payload directory not found: %s", dir)
	}

	espSource = filepath.Join(dir, "esp")
	dataSource = filepath.Join(dir, "data")

	for _, sub := range []string{espSource, dataSource} {
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			return "", "", xerrors.Validation("payload directory %s is missing the %s subtree", dir, filepath.Base(sub))
		}
	}

	return espSource, dataSource, nil
}
