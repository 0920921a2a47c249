// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 80))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "clip", truncate("clipped", 4))

	// cutting next to a multi-byte character must not split it
	out := truncate("préparation en cours", 3)
	assert.Equal(t, "pré", out)
	assert.True(t, utf8.ValidString(out))
}
