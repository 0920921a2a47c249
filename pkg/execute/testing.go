// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package execute

import (
	"context"
	"strings"

	"github.com/siderolabs/gen/xslices"
)

// Call records one command invocation made through a RecordingRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// RecordingRunner records every invocation instead of running it. Canned
// responses can be registered per command name.
type RecordingRunner struct {
	Calls []Call

	// Outputs maps a command name to the stdout returned for it.
	Outputs map[string][]byte
	// Errors maps a command name to the error returned for it.
	Errors map[string]error
	// Missing lists command names LookPath should report as absent.
	Missing []string
}

// Run implements the Runner interface.
func (r *RecordingRunner) Run(_ context.Context, name string, args ...string) error {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})

	return r.Errors[name]
}

// Output implements the Runner interface.
func (r *RecordingRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})

	if err := r.Errors[name]; err != nil {
		return nil, err
	}

	return r.Outputs[name], nil
}

// LookPath implements the Runner interface.
func (r *RecordingRunner) LookPath(name string) bool {
	for _, missing := range r.Missing {
		if missing == name {
			return false
		}
	}

	return true
}

// CommandNames returns the names of all recorded invocations, in order.
func (r *RecordingRunner) CommandNames() []string {
	return xslices.Map(r.Calls, func(call Call) string { return call.Name })
}
