// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package config loads the tool configuration from the user config file and
// the environment.
package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// PayloadDirEnv overrides the payload source directory.
const PayloadDirEnv = "RAIDHOS_PAYLOAD_DIR"

// Config is the tool configuration.
type Config struct {
	// PayloadDir is the payload source directory, expected to contain the
	// esp/ and data/ subtrees.
	PayloadDir string `yaml:"payloadDir"`
	// ISODirs are the directories scanned for ISO images.
	ISODirs []string `yaml:"isoDirs"`
	// DataLabel overrides the data partition label used in the generated
	// boot script.
	DataLabel string `yaml:"dataLabel"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ISODirs: []string{"/media", "/mnt", "/home"},
	}
}

// Path returns the user config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", xerrors.Io("resolving home directory: %v", err)
	}

	return filepath.Join(home, ".config", "raidhos", "config.yaml"), nil
}

// Load reads the user config file, falling back to defaults when it does not
// exist, then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)

	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults
	case err != nil:
		return nil, xerrors.Io("reading config %s: %v", path, err)
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)

		if err := decoder.Decode(cfg); err != nil {
			return nil, xerrors.Parse("decoding config %s: %v", path, err)
		}
	}

	if dir := os.Getenv(PayloadDirEnv); dir != "" {
		cfg.PayloadDir = dir
	}

	return cfg, nil
}
