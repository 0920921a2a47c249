// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebastienrousseau/raidhos/pkg/config"
	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

func writeConfig(t *testing.T, contents string) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "raidhos")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.PayloadDirEnv, "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.PayloadDir)
	assert.Equal(t, []string{"/media", "/mnt", "/home"}, cfg.ISODirs)
}

func TestLoadFile(t *testing.T) {
	writeConfig(t, `payloadDir: /srv/payload
isoDirs:
  - /srv/isos
dataLabel: MYLABEL
`)
	t.Setenv(config.PayloadDirEnv, "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/payload", cfg.PayloadDir)
	assert.Equal(t, []string{"/srv/isos"}, cfg.ISODirs)
	assert.Equal(t, "MYLABEL", cfg.DataLabel)
}

func TestLoadEnvOverride(t *testing.T) {
	writeConfig(t, `payloadDir: /srv/payload
`)
	t.Setenv(config.PayloadDirEnv, "/override/payload")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "/override/payload", cfg.PayloadDir)
}

func TestLoadUnknownField(t *testing.T) {
	writeConfig(t, `payloadDir: /srv/payload
unknownKey: true
`)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, xerrors.IsKind(err, xerrors.KindParse))
}
