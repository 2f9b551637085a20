// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/hwidkit/hwidkit/lib/bundle"
	"github.com/hwidkit/hwidkit/lib/cli"
	"github.com/hwidkit/hwidkit/lib/dlm"
	"github.com/hwidkit/hwidkit/lib/feature"
	"github.com/hwidkit/hwidkit/lib/featuredef"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
)

// resolveCommand returns the "resolve" subcommand.
func resolveCommand() *cli.Command {
	var (
		databasePath   string
		componentsPath string
		featurePath    string
		outPath        string
		alsoJSON       bool
	)

	return &cli.Command{
		Name:    "resolve",
		Summary: "Resolve feature requirements against a HWID database",
		Description: `Compute the bit-string requirements a device's encoded HWID must
meet for a hardware feature to be available. The result is a
disjunction: a device is compatible when any one requirement is met,
and a requirement is met when every one of its bit-string
prerequisites extracts to an allowed value.

The HWID database supplies encoding patterns and encoded-field
tables, the component database (a DLM export) supplies per-component
feature support, and the feature definition names the specs to
resolve, for example CPU feature version 1.

The artifact is printed to stdout as JSON unless --out is given.
Exit code 3 means the database cannot answer the question at all
(no encoded field references the spec's component type); other
failures exit 1.`,
		Usage: "hwidkit resolve --db <path> --dlm <path> --feature <path> [flags]",
		Examples: []cli.Example{
			{
				Description: "Resolve against YAML inputs, artifact to stdout",
				Command:     "hwidkit resolve --db project.yaml --dlm components.yaml --feature cpu_v1.jsonc",
			},
			{
				Description: "Write a compressed CBOR artifact from a SQLite component export",
				Command:     "hwidkit resolve --db project.yaml.zst --dlm components.sqlite --feature cpu_v1.jsonc --out requirements.cbor.zst",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
			flagSet.StringVar(&databasePath, "db", "", "HWID database YAML, optionally .zst compressed")
			flagSet.StringVar(&componentsPath, "dlm", "", "component database: YAML snapshot or SQLite export")
			flagSet.StringVar(&featurePath, "feature", "", "feature definition JSONC file")
			flagSet.StringVar(&outPath, "out", "", "artifact output path (.json or .cbor, optionally .zst or .lz4)")
			flagSet.BoolVar(&alsoJSON, "json", false, "print the artifact to stdout even when --out is set")
			return flagSet
		},
		Run: func(args []string) error {
			if databasePath == "" || componentsPath == "" || featurePath == "" {
				return fmt.Errorf("usage: hwidkit resolve --db <path> --dlm <path> --feature <path>")
			}
			if outPath != "" {
				// Reject a bad output extension before doing any work.
				if _, err := bundle.OptionsForPath(outPath); err != nil {
					return err
				}
			}

			db, err := hwiddb.LoadFile(databasePath)
			if err != nil {
				return fmt.Errorf("loading HWID database: %w", err)
			}
			components, err := loadComponents(componentsPath)
			if err != nil {
				return fmt.Errorf("loading component database: %w", err)
			}
			definition, err := featuredef.ReadFile(featurePath)
			if err != nil {
				return err
			}
			specs, err := definition.ResolverSpecs()
			if err != nil {
				return err
			}

			resolver, err := feature.NewResolver(specs...)
			if err != nil {
				return err
			}
			requirements, err := resolver.Resolve(db, components)
			if err != nil {
				if feature.IsUnsupportedDatabase(err) {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					return &cli.ExitError{Code: 3}
				}
				return err
			}

			artifact := bundle.New(db.Project(), db.Fingerprint(), definition.Name, time.Now(), requirements)

			if outPath != "" {
				if err := bundle.WriteFile(outPath, artifact); err != nil {
					return err
				}
				cli.NewCommandLogger().Info("wrote requirement artifact",
					"path", outPath,
					"feature", definition.Name,
					"requirements", len(requirements),
					"fingerprint", artifact.DatabaseFingerprint)
				if !alsoJSON {
					return nil
				}
			}
			return cli.WriteJSON(artifact)
		},
	}
}

// loadComponents dispatches on the file extension: SQLite exports
// carry .sqlite or .db, everything else is treated as YAML.
func loadComponents(path string) (dlm.Database, error) {
	switch filepath.Ext(path) {
	case ".sqlite", ".db":
		return dlm.LoadSQLite(path)
	default:
		return dlm.LoadFile(path)
	}
}
