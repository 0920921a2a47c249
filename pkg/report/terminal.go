// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// TerminalSink renders events as lines on a terminal, colorized when the
// output is a TTY.
type TerminalSink struct {
	w         *os.File
	colorized bool
	lastLine  string
}

// NewTerminalSink builds a sink writing to the given file.
func NewTerminalSink(w *os.File) *TerminalSink {
	return &TerminalSink{
		w:         w,
		colorized: isatty.IsTerminal(w.Fd()),
	}
}

// Emit implements the Sink interface.
func (ts *TerminalSink) Emit(event Event) {
	line := strings.TrimSpace(event.String())

	if !ts.colorized {
		if line != ts.lastLine {
			fmt.Fprintln(ts.w, line)
			ts.lastLine = line
		}

		return
	}

	w, _, _ := term.GetSize(int(ts.w.Fd())) //nolint:errcheck
	if w <= 0 {
		w = 80
	}

	line = truncate(line, w)

	switch event.Phase {
	case PhaseComplete:
		line = color.GreenString("%s", line)
	case PhasePartition, PhaseFormat:
		line = color.YellowString("%s", line)
	default:
	}

	fmt.Fprintln(ts.w, line)
	ts.lastLine = line
}

// truncate cuts the line to at most width terminal cells, by rune so a
// multi-byte character is never split at the edge.
func truncate(line string, width int) string {
	runes := []rune(line)

	if len(runes) <= width {
		return line
	}

	return string(runes[:width])
}
