// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebastienrousseau/raidhos/pkg/report"
)

func TestEventString(t *testing.T) {
	event := report.NewEvent(report.PhaseValidate, 5, "Validating target %s", "/dev/sdb")

	assert.Equal(t, "validate: Validating target /dev/sdb (5%)", event.String())

	noPercent := report.Event{Phase: report.PhaseComplete, Message: "done"}
	assert.Equal(t, "complete: done", noPercent.String())
}

func TestRecorder(t *testing.T) {
	recorder := &report.Recorder{}

	recorder.Emit(report.NewEvent(report.PhaseValidate, 5, "checking"))
	recorder.Emit(report.NewEvent(report.PhaseComplete, 100, "done"))

	assert.Equal(t, []report.Phase{report.PhaseValidate, report.PhaseComplete}, recorder.Phases())
	assert.Equal(t, "checking", recorder.Events[0].Message)
}
