// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package installer

import (
	"fmt"

	"github.com/sebastienrousseau/raidhos/pkg/report"
)

// Sequence lists the phase checkpoints of an install, in emit order. The
// orchestrator never branches back to an earlier phase.
func Sequence(dryRun bool) []report.Phase {
	if dryRun {
		return []report.Phase{
			report.PhaseValidate,
			report.PhasePrepare,
			report.PhasePayload,
			report.PhaseWrite,
			report.PhaseFinalize,
			report.PhaseComplete,
		}
	}

	return []report.Phase{
		report.PhaseValidate,
		report.PhasePrepare,
		report.PhasePayload,
		report.PhaseWrite,
		report.PhaseFinalize,
		report.PhasePartition,
		report.PhaseFormat,
		report.PhasePayload,
		report.PhasePayload,
		report.PhaseComplete,
	}
}

// progress walks a phase sequence, delivering one event per checkpoint to the
// sink. Emitting a phase out of sequence order is a programming error.
type progress struct {
	sink report.Sink
	seq  []report.Phase
	next int
}

func newProgress(sink report.Sink, dryRun bool) *progress {
	return &progress{
		sink: sink,
		seq:  Sequence(dryRun),
	}
}

func (p *progress) emit(phase report.Phase, percent int, format string, args ...any) {
	if p.next >= len(p.seq) || p.seq[p.next] != phase {
		panic(fmt.Sprintf("phase %q emitted out of sequence", phase))
	}

	p.next++

	p.sink.Emit(report.NewEvent(phase, percent, format, args...))
}
