// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package blockdev_test

import (
	"context"
	_ "embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastienrousseau/raidhos/internal/pkg/blockdev"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

//go:embed testdata/lsblk.json
var lsblkOutput []byte

func newInventory(t *testing.T) (*blockdev.Inventory, *execute.RecordingRunner) {
	t.Helper()

	runner := &execute.RecordingRunner{
		Outputs: map[string][]byte{"lsblk": lsblkOutput},
	}

	return blockdev.NewInventory(runner), runner
}

func TestListDisks(t *testing.T) {
	inventory, runner := newInventory(t)

	disks, err := inventory.ListDisks(context.Background())
	require.NoError(t, err)

	require.Len(t, disks, 3)
	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())

	sda := disks[0]
	assert.Equal(t, "/dev/sda", sda.ID)
	assert.Equal(t, "Samsung SSD 970", sda.Model)
	assert.EqualValues(t, 512110190592, sda.SizeBytes)
	assert.False(t, sda.Removable)
	assert.True(t, sda.IsSystem)
	assert.Equal(t, []string{"/boot/efi", "/"}, sda.Mountpoints)

	sdb := disks[1]
	assert.Equal(t, "/dev/sdb", sdb.ID)
	assert.True(t, sdb.Removable)
	assert.False(t, sdb.IsSystem)
	// size arrives as a quoted string on older util-linux
	assert.EqualValues(t, 61530439680, sdb.SizeBytes)
	assert.Equal(t, []string{"/media/usb"}, sdb.Mountpoints)

	nvme := disks[2]
	assert.Equal(t, "/dev/nvme0n1", nvme.ID)
	assert.Equal(t, "Unknown", nvme.Model)
	assert.False(t, nvme.IsSystem)
	assert.Empty(t, nvme.Mountpoints)
}

func TestListPartitions(t *testing.T) {
	inventory, _ := newInventory(t)

	parts, err := inventory.ListPartitions(context.Background(), "/dev/sda")
	require.NoError(t, err)

	require.Len(t, parts, 2)
	assert.Equal(t, "/dev/sda1", parts[0].ID)
	assert.Equal(t, "EFI", parts[0].Label)
	assert.Equal(t, "vfat", parts[0].FSType)
	assert.Equal(t, []string{"/boot/efi"}, parts[0].Mountpoints)

	assert.Equal(t, "/dev/sda2", parts[1].ID)
	assert.Equal(t, "", parts[1].Label)
}

func TestListPartitionsUnparseableSize(t *testing.T) {
	inventory, _ := newInventory(t)

	// sdb1 carries an unparseable size; the listing must still succeed
	parts, err := inventory.ListPartitions(context.Background(), "/dev/sdb")
	require.NoError(t, err)

	require.Len(t, parts, 1)
	assert.Equal(t, "/dev/sdb1", parts[0].ID)
}

func TestListPartitionsNoMatch(t *testing.T) {
	inventory, _ := newInventory(t)

	parts, err := inventory.ListPartitions(context.Background(), "/dev/nvme0n1")
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestListDisksMalformedOutput(t *testing.T) {
	runner := &execute.RecordingRunner{
		Outputs: map[string][]byte{"lsblk": []byte("not json")},
	}

	_, err := blockdev.NewInventory(runner).ListDisks(context.Background())
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindParse))
}

func TestListDisksToolFailure(t *testing.T) {
	runner := &execute.RecordingRunner{
		Errors: map[string]error{"lsblk": xerrors.Io("command failed: lsblk")},
	}

	_, err := blockdev.NewInventory(runner).ListDisks(context.Background())
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindIo))
}

func TestFindDisk(t *testing.T) {
	inventory, _ := newInventory(t)

	disks, err := inventory.ListDisks(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, blockdev.FindDisk(disks, "/dev/sdb"))
	assert.Nil(t, blockdev.FindDisk(disks, "/dev/sdz"))
}
