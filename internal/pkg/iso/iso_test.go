// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package iso_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastienrousseau/raidhos/internal/pkg/iso"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "ubuntu-24.04.iso"), 16)
	writeFile(t, filepath.Join(dir, "Fedora-40.ISO"), 32)
	writeFile(t, filepath.Join(dir, "notes.txt"), 8)
	writeFile(t, filepath.Join(dir, "nested", "debian-12.iso"), 64)
	writeFile(t, filepath.Join(dir, "nested", "deeper", "arch.iso"), 8)

	images, err := iso.Scan([]string{dir, filepath.Join(dir, "no-such-dir")})
	require.NoError(t, err)

	// sorted case-insensitively by title; one level of nesting only
	require.Len(t, images, 3)
	assert.Equal(t, "debian-12", images[0].Title)
	assert.Equal(t, "Fedora-40", images[1].Title)
	assert.Equal(t, "ubuntu-24.04", images[2].Title)

	assert.Equal(t, filepath.Join(dir, "nested", "debian-12.iso"), images[0].Path)
	assert.Equal(t, uint64(64), images[0].SizeBytes)
	assert.Equal(t, iso.DefaultBootParams, images[0].Params)
}

func TestScanEmpty(t *testing.T) {
	images, err := iso.Scan([]string{t.TempDir(), "/no/such/dir"})
	require.NoError(t, err)
	assert.Empty(t, images)
}
