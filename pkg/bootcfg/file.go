// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package bootcfg

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// FileName is the name of the persisted menu description.
const FileName = "boot.json"

// Load reads a menu description from the given path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Io("reading boot config %s: %v", path, err)
	}

	var config Config

	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, xerrors.Parse("decoding boot config %s: %v", path, err)
	}

	return &config, nil
}

// Save writes the menu description under the given directory, creating it if
// needed.
func Save(dir string, config *Config) (string, error) {
	raw, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return "", xerrors.Io("encoding boot config: %v", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", xerrors.Io("creating %s: %v", dir, err)
	}

	path := filepath.Join(dir, FileName)

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", xerrors.Io("writing boot config %s: %v", path, err)
	}

	return path, nil
}
