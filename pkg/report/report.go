// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package report carries structured progress events from long-running
// operations to a caller-supplied sink.
package report

import (
	"fmt"

	"github.com/siderolabs/gen/xslices"
	"github.com/siderolabs/go-pointer"
)

// Phase names the step an event belongs to. The vocabulary is fixed; events
// for one operation are emitted strictly in phase order.
type Phase string

const (
	// PhaseValidate covers request and target validation.
	PhaseValidate Phase = "validate"
	// PhasePrepare covers partition layout preparation.
	PhasePrepare Phase = "prepare"
	// PhasePayload covers payload staging and copy.
	PhasePayload Phase = "payload"
	// PhaseWrite covers writing boot structures.
	PhaseWrite Phase = "write"
	// PhaseFinalize covers final checks.
	PhaseFinalize Phase = "finalize"
	// PhasePartition covers partition table creation.
	PhasePartition Phase = "partition"
	// PhaseFormat covers filesystem formatting.
	PhaseFormat Phase = "format"
	// PhaseComplete marks the end of the operation.
	PhaseComplete Phase = "complete"
)

// Event is one progress checkpoint. Percent is optional.
type Event struct {
	Phase   Phase  `json:"phase"`
	Message string `json:"message"`
	Percent *int   `json:"percent,omitempty"`
}

// String renders the event as a single line.
func (e Event) String() string {
	if e.Percent == nil {
		return fmt.Sprintf("%s: %s", e.Phase, e.Message)
	}

	return fmt.Sprintf("%s: %s (%d%%)", e.Phase, e.Message, *e.Percent)
}

// Sink receives each event synchronously on the emitter's own execution
// context; it must not block indefinitely.
type Sink interface {
	Emit(event Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event Event)

// Emit implements the Sink interface.
func (f SinkFunc) Emit(event Event) {
	f(event)
}

// NewEvent builds an event with a percent checkpoint.
func NewEvent(phase Phase, percent int, format string, args ...any) Event {
	return Event{
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Percent: pointer.To(percent),
	}
}

// Recorder is a Sink collecting every event, for tests and for callers that
// replay the event log after the operation finishes.
type Recorder struct {
	Events []Event
}

// Emit implements the Sink interface.
func (r *Recorder) Emit(event Event) {
	r.Events = append(r.Events, event)
}

// Phases returns the phase of each recorded event, in order.
func (r *Recorder) Phases() []Phase {
	return xslices.Map(r.Events, func(event Event) Phase { return event.Phase })
}
