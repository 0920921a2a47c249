// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastienrousseau/raidhos/internal/pkg/installer"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/report"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

const lsblkFixture = `{
  "blockdevices": [
    {
      "name": "sda",
      "model": "System SSD",
      "size": 512110190592,
      "rm": false,
      "type": "disk",
      "mountpoints": [null],
      "children": [
        {"name": "sda1", "type": "part", "mountpoints": ["/"], "pkname": "sda"}
      ]
    },
    {
      "name": "sdb",
      "model": "USB Flash Drive",
      "size": 61530439680,
      "rm": true,
      "type": "disk",
      "mountpoints": [null]
    },
    {
      "name": "sdc",
      "model": "Mounted Stick",
      "size": 8000000000,
      "rm": true,
      "type": "disk",
      "mountpoints": [null],
      "children": [
        {"name": "sdc1", "type": "part", "mountpoints": ["/media/stick"], "pkname": "sdc"}
      ]
    }
  ]
}`

func newRunner() *execute.RecordingRunner {
	return &execute.RecordingRunner{
		Outputs: map[string][]byte{"lsblk": []byte(lsblkFixture)},
	}
}

func newRequest() installer.Request {
	return installer.Request{
		Device:         "/dev/sdb",
		PayloadVersion: "1.1.10",
		Wipe:           true,
		DryRun:         true,
	}
}

// payloadDir builds a payload source with the required esp/ and data/
// subtrees.
func payloadDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "esp", "EFI", "BOOT"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data", "boot", "isos"), 0o755))

	return dir
}

func install(t *testing.T, opts *installer.Options) (*report.Recorder, error) {
	t.Helper()

	recorder := &report.Recorder{}

	err := installer.NewInstaller(opts).Install(context.Background(), recorder)

	return recorder, err
}

func TestDryRun(t *testing.T) {
	runner := newRunner()

	recorder, err := install(t, &installer.Options{Request: newRequest(), Runner: runner})
	require.NoError(t, err)

	// inventory is the only external query; nothing else may run
	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())

	require.Len(t, recorder.Events, 6)
	assert.Equal(t, installer.Sequence(true), recorder.Phases())

	last := recorder.Events[len(recorder.Events)-1]
	assert.Equal(t, report.PhaseComplete, last.Phase)
	require.NotNil(t, last.Percent)
	assert.Equal(t, 100, *last.Percent)
	assert.Contains(t, last.Message, "No changes made")
}

func TestValidateRelativeDevice(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.Device = "sdb"

	recorder, err := install(t, &installer.Options{Request: request, Runner: runner})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "absolute /dev path")
	assert.Empty(t, runner.Calls)
	assert.Empty(t, recorder.Events)
}

func TestValidateWipeRequired(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.Wipe = false

	_, err := install(t, &installer.Options{Request: request, Runner: runner})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "wipe flag must be set")
	assert.Empty(t, runner.Calls)
}

func TestValidateDeviceNotFound(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.Device = "/dev/sdz"

	_, err := install(t, &installer.Options{Request: request, Runner: runner})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "device not found")
}

func TestValidateSystemDisk(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.Device = "/dev/sda"

	_, err := install(t, &installer.Options{Request: request, Runner: runner})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "system disk")

	// inventory query only, never a destructive command
	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())
}

func TestValidateMountedDisk(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.Device = "/dev/sdc"

	_, err := install(t, &installer.Options{Request: request, Runner: runner})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "unmount first")
	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())
}

func TestWriteGate(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.DryRun = false
	request.AllowWrite = false

	recorder, err := install(t, &installer.Options{Request: request, Runner: runner})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "write blocked")

	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())
	assert.NotContains(t, recorder.Phases(), report.PhasePartition)
}

func TestRealWrite(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.DryRun = false
	request.AllowWrite = true

	recorder, err := install(t, &installer.Options{
		Request:    request,
		Runner:     runner,
		PayloadDir: payloadDir(t),
		Printf:     func(string, ...any) {},
	})
	require.NoError(t, err)

	assert.Equal(t, installer.Sequence(false), recorder.Phases())

	names := runner.CommandNames()
	assert.Equal(t, []string{
		"lsblk",
		"parted", "parted", "parted", "parted", "parted",
		"mkfs.vfat",
		"mkfs.exfat",
		"mount", "mount",
		"cp", "cp",
		"umount", "umount",
	}, names)

	// format and mount target the numbered partition nodes
	assert.Equal(t, "/dev/sdb1", runner.Calls[6].Args[len(runner.Calls[6].Args)-1])
	assert.Equal(t, "/dev/sdb2", runner.Calls[7].Args[len(runner.Calls[7].Args)-1])
}

func TestRealWriteUnmountFailureSwallowed(t *testing.T) {
	runner := newRunner()
	runner.Errors = map[string]error{"umount": xerrors.Io("command failed: umount")}

	request := newRequest()
	request.DryRun = false
	request.AllowWrite = true

	recorder, err := install(t, &installer.Options{
		Request:    request,
		Runner:     runner,
		PayloadDir: payloadDir(t),
		Printf:     func(string, ...any) {},
	})
	require.NoError(t, err)

	last := recorder.Events[len(recorder.Events)-1]
	assert.Equal(t, report.PhaseComplete, last.Phase)
}

func TestRealWriteFormatFailureAborts(t *testing.T) {
	runner := newRunner()
	runner.Errors = map[string]error{"mkfs.vfat": xerrors.Io("command failed: mkfs.vfat")}

	request := newRequest()
	request.DryRun = false
	request.AllowWrite = true

	recorder, err := install(t, &installer.Options{
		Request:    request,
		Runner:     runner,
		PayloadDir: payloadDir(t),
		Printf:     func(string, ...any) {},
	})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindIo))
	assert.Contains(t, err.Error(), "mkfs.vfat")

	// no mounts or copies after a failed format
	assert.NotContains(t, runner.CommandNames(), "mount")
	assert.NotContains(t, runner.CommandNames(), "cp")

	// events emitted before the failure remain a valid record
	assert.Equal(t, report.PhaseFormat, recorder.Phases()[len(recorder.Phases())-1])
}

func TestRealWriteMissingPayloadFailsLoudly(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.DryRun = false
	request.AllowWrite = true

	_, err := install(t, &installer.Options{
		Request: request,
		Runner:  runner,
		Printf:  func(string, ...any) {},
	})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "payload directory")
}

func TestRealWriteIncompletePayload(t *testing.T) {
	runner := newRunner()
	request := newRequest()
	request.DryRun = false
	request.AllowWrite = true

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "esp"), 0o755))

	_, err := install(t, &installer.Options{
		Request:    request,
		Runner:     runner,
		PayloadDir: dir,
		Printf:     func(string, ...any) {},
	})
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "data subtree")
}

func TestReleaseDevice(t *testing.T) {
	runner := newRunner()

	require.NoError(t, installer.ReleaseDevice(context.Background(), runner, "/dev/sdc"))

	assert.Equal(t, []string{"lsblk", "umount", "wipefs"}, runner.CommandNames())
	assert.Equal(t, []string{"/media/stick"}, runner.Calls[1].Args)
	assert.Equal(t, []string{"-a", "/dev/sdc"}, runner.Calls[2].Args)
}

func TestReleaseDeviceSystemDisk(t *testing.T) {
	runner := newRunner()

	err := installer.ReleaseDevice(context.Background(), runner, "/dev/sda")
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "system disk")

	// inventory query only; neither umount nor wipefs may run
	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())
}

func TestReleaseDeviceNotFound(t *testing.T) {
	runner := newRunner()

	err := installer.ReleaseDevice(context.Background(), runner, "/dev/sdz")
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindValidation))
	assert.Contains(t, err.Error(), "device not found")
	assert.Equal(t, []string{"lsblk"}, runner.CommandNames())
}

func TestNewInstallerDoesNotMutateOptions(t *testing.T) {
	opts := &installer.Options{Request: newRequest()}

	installer.NewInstaller(opts)

	assert.Nil(t, opts.Runner)
	assert.Nil(t, opts.Printf)
}
