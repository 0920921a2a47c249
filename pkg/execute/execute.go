// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package execute abstracts running external commands so that callers can be
// tested without touching the host system.
package execute

import (
	"context"
	"os/exec"

	"github.com/siderolabs/go-cmd/pkg/cmd"

	"github.com/sebastienrousseau/raidhos/pkg/xerrors"
)

// Runner runs one external operation to completion. A non-zero exit is
// reported as an I/O error carrying the command name.
type Runner interface {
	// Run executes the command, discarding its output.
	Run(ctx context.Context, name string, args ...string) error
	// Output executes the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports whether the named command exists on this host.
	LookPath(name string) bool
}

// HostRunner runs commands on the host via go-cmd.
type HostRunner struct{}

// NewHostRunner returns a Runner backed by the host system.
func NewHostRunner() *HostRunner {
	return &HostRunner{}
}

// Run implements the Runner interface.
func (*HostRunner) Run(ctx context.Context, name string, args ...string) error {
	if _, err := cmd.RunContext(ctx, name, args...); err != nil {
		return xerrors.Io("command failed: %s: %v", name, err)
	}

	return nil
}

// Output implements the Runner interface.
func (*HostRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := cmd.RunContext(ctx, name, args...)
	if err != nil {
		return nil, xerrors.Io("command failed: %s: %v", name, err)
	}

	return []byte(out), nil
}

// LookPath implements the Runner interface.
func (*HostRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)

	return err == nil
}
