// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package partition

import (
	"context"

	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// FileSystemType is the type of a filesystem.
type FileSystemType string

const (
	// FilesystemTypeVFAT is the filesystem type for FAT32.
	FilesystemTypeVFAT FileSystemType = "vfat"
	// FilesystemTypeExFAT is the filesystem type for exFAT.
	FilesystemTypeExFAT FileSystemType = "exfat"
)

// exFAT formatters, tried in order.
var exfatFormatters = []string{"mkfs.exfat", "mkexfatfs"}

// FormatOptions contains format parameters.
type FormatOptions struct {
	Label          string
	FileSystemType FileSystemType
}

// Format creates a filesystem on the partition device using the matching host
// format tool.
func Format(ctx context.Context, runner execute.Runner, devname string, opts FormatOptions, printf func(string, ...any)) error {
	printf("formatting the partition %q as %q with label %q", devname, opts.FileSystemType, opts.Label)

	switch opts.FileSystemType {
	case FilesystemTypeVFAT:
		return runner.Run(ctx, "mkfs.vfat", "-F", "32", "-n", opts.Label, devname)
	case FilesystemTypeExFAT:
		return formatExFAT(ctx, runner, devname, opts.Label, printf)
	default:
		return xerrors.Io("unsupported filesystem type: %q", opts.FileSystemType)
	}
}

// formatExFAT formats via the first available exFAT tool. Some tool builds
// reject the label flag; those get an unlabeled format followed by a separate
// labeling step, and a volume that cannot be labeled at all fails the format.
func formatExFAT(ctx context.Context, runner execute.Runner, devname, label string, printf func(string, ...any)) error {
	tool := ""

	for _, candidate := range exfatFormatters {
		if runner.LookPath(candidate) {
			tool = candidate

			break
		}
	}

	if tool == "" {
		return xerrors.Io("exFAT formatter not found (mkfs.exfat or mkexfatfs)")
	}

	if err := runner.Run(ctx, tool, "-n", label, devname); err == nil {
		return nil
	}

	printf("%s rejected the label flag, formatting %q unlabeled and labeling separately", tool, devname)

	if err := runner.Run(ctx, tool, devname); err != nil {
		return err
	}

	return runner.Run(ctx, "exfatlabel", devname, label)
}
