// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/hwidkit/hwidkit/lib/cli"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
)

// fingerprintCommand returns the "fingerprint" subcommand.
func fingerprintCommand() *cli.Command {
	var databasePath string

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the canonical fingerprint of a HWID database",
		Description: `Print the keyed BLAKE3 fingerprint of a HWID database's canonical
form. The fingerprint is stable across YAML reformatting and key
reordering and changes when any pattern or encoded-field content
changes. Requirement artifacts embed it, so a consumer can match an
artifact to the exact database snapshot it was resolved against.`,
		Usage: "hwidkit fingerprint --db <path>",
		Examples: []cli.Example{
			{
				Description: "Fingerprint a database snapshot",
				Command:     "hwidkit fingerprint --db project.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fingerprint", pflag.ContinueOnError)
			flagSet.StringVar(&databasePath, "db", "", "HWID database YAML, optionally .zst compressed")
			return flagSet
		},
		Run: func(args []string) error {
			if databasePath == "" {
				return fmt.Errorf("usage: hwidkit fingerprint --db <path>")
			}
			db, err := hwiddb.LoadFile(databasePath)
			if err != nil {
				return err
			}
			fmt.Println(db.Fingerprint())
			return nil
		},
	}
}
