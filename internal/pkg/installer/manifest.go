// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package installer

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// manifest is the payload description shipped next to the esp/ and data/
// subtrees.
type manifest struct {
	Version string `json:"version"`
}

// PayloadVersion reads the version tag from the payload manifest, returning
// "unknown" when the manifest is absent or unreadable.
func PayloadVersion(payloadDir string) string {
	raw, err := os.ReadFile(filepath.Join(payloadDir, "manifest.json"))
	if err != nil {
		return "unknown"
	}

	var m manifest

	if err := json.Unmarshal(raw, &m); err != nil || m.Version == "" {
		return "unknown"
	}

	return m.Version
}
