// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package main provides the privileged helper. It re-exposes the inventory
// and install operations over a textual protocol: a JSON envelope on stdout,
// progress lines on stderr, so an unprivileged front end can call it through
// an elevation wrapper.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sebastienrousseau/raidhos/internal/pkg/blockdev"
	"github.com/sebastienrousseau/raidhos/internal/pkg/installer"
	"github.com/sebastienrousseau/raidhos/pkg/config"
	"github.com/sebastienrousseau/raidhos/pkg/execute"
	"github.com/sebastienrousseau/raidhos/pkg/report"
)

// response is the JSON envelope printed on stdout for every command.
type response struct {
	Ok    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()

		return 2
	}

	ctx := context.Background()
	runner := execute.NewHostRunner()
	inventory := blockdev.NewInventory(runner)

	switch args[0] {
	case "list-disks":
		disks, err := inventory.ListDisks(ctx)

		return respond(disks, err)
	case "list-partitions":
		if len(args) < 2 {
			usage()

			return 2
		}

		parts, err := inventory.ListPartitions(ctx, args[1])

		return respond(parts, err)
	case "install":
		return runInstall(ctx, runner, args[1:])
	default:
		usage()

		return 2
	}
}

// runInstall expects: <device> <payload-version> <wipe> <dry-run> <allow-write>,
// the boolean arguments spelled "true" or "false".
func runInstall(ctx context.Context, runner execute.Runner, args []string) int {
	if len(args) < 5 {
		usage()

		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		return respond(nil, err)
	}

	ins := installer.NewInstaller(&installer.Options{
		Request: installer.Request{
			Device:         args[0],
			PayloadVersion: args[1],
			Wipe:           args[2] == "true",
			DryRun:         args[3] == "true",
			AllowWrite:     args[4] == "true",
		},
		PayloadDir: cfg.PayloadDir,
		Runner:     runner,
	})

	sink := report.SinkFunc(func(event report.Event) {
		fmt.Fprintln(os.Stderr, event.String())
	})

	return respond(nil, ins.Install(ctx, sink))
}

func respond(data any, err error) int {
	resp := response{Ok: err == nil, Data: data}

	if err != nil {
		resp.Error = err.Error()
	}

	encoded, marshalErr := json.MarshalIndent(resp, "", "  ")
	if marshalErr != nil {
		fmt.Fprintln(os.Stderr, marshalErr)

		return 1
	}

	fmt.Println(string(encoded))

	if err != nil {
		return 1
	}

	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: raidhos-helper <list-disks|list-partitions <device>|install <device> <payload-version> <wipe> <dry-run> <allow-write>>")
}
