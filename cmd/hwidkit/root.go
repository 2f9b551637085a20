// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/hwidkit/hwidkit/lib/cli"
	"github.com/hwidkit/hwidkit/lib/version"
)

// rootCommand assembles the complete hwidkit command tree.
func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "hwidkit",
		Description: `hwidkit: HWID bit-string requirement resolution.

Deduce, from a versioned hardware feature specification and a
component database, the exhaustive set of bit-string requirements an
encoded HWID must meet for the feature to be available on a device.`,
		Subcommands: []*cli.Command{
			resolveCommand(),
			inspectCommand(),
			fingerprintCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("hwidkit %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
