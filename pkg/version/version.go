// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package version defines version information.
package version

import (
	"fmt"
	"io"
	"runtime"
)

var (
	// Name is set at build time.
	Name = "raidhos"
	// Tag is set at build time.
	Tag = "v0.1.0"
	// SHA is set at build time.
	SHA string
)

// Short returns the one-line version string.
func Short() string {
	return fmt.Sprintf("%s %s", Name, Tag)
}

// PrintLong writes verbose version information.
func PrintLong(w io.Writer) {
	fmt.Fprintf(w, "\tTag:         %s\n", Tag)
	fmt.Fprintf(w, "\tSHA:         %s\n", SHA)
	fmt.Fprintf(w, "\tGo version:  %s\n", runtime.Version())
	fmt.Fprintf(w, "\tOS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
