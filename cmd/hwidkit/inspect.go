// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/hwidkit/hwidkit/lib/cli"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
)

// inspectCommand returns the "inspect" subcommand.
func inspectCommand() *cli.Command {
	var databasePath string

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show a database's patterns and encoded fields",
		Description: `Display the structure of a HWID database: one section per encoding
pattern with its image IDs, field widths, and physical bit layout,
then one table per encoded field listing the component assignment
behind each value.

The physical layout reads left to right along the encoded bit
string: bit 0 through bit 4 are the image-ID header, everything
after is governed by the pattern for that image ID.`,
		Usage: "hwidkit inspect --db <path>",
		Examples: []cli.Example{
			{
				Description: "Inspect a compressed database snapshot",
				Command:     "hwidkit inspect --db project.yaml.zst",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.StringVar(&databasePath, "db", "", "HWID database YAML, optionally .zst compressed")
			return flagSet
		},
		Run: func(args []string) error {
			if databasePath == "" {
				return fmt.Errorf("usage: hwidkit inspect --db <path>")
			}
			db, err := hwiddb.LoadFile(databasePath)
			if err != nil {
				return err
			}
			return printDatabase(os.Stdout, db)
		},
	}
}

// printDatabase renders the database structure for human reading.
func printDatabase(w io.Writer, db *hwiddb.Database) error {
	fmt.Fprintf(w, "Project:     %s\n", db.Project())
	fmt.Fprintf(w, "Fingerprint: %s\n", db.Fingerprint())
	fmt.Fprintf(w, "Patterns:    %d\n", db.PatternCount())

	for patternIdx := 0; patternIdx < db.PatternCount(); patternIdx++ {
		fmt.Fprintf(w, "\nPattern %d: image IDs %s\n", patternIdx, joinInts(db.PatternImageIDs(patternIdx)))
		fmt.Fprintf(w, "  Field widths: %s\n", formatBitLengths(db.FieldBitLengths(patternIdx)))

		mapping := db.BitMapping(patternIdx)
		if len(mapping) == 0 {
			fmt.Fprintf(w, "  (header only, no field bits)\n")
			continue
		}
		writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		fmt.Fprintf(writer, "  BIT\tFIELD\tFIELD BIT\n")
		for i, entry := range mapping {
			fmt.Fprintf(writer, "  %d\t%s\t%d\n", hwiddb.HeaderBitLength+i, entry.FieldName, entry.FieldBitOffset)
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	for _, name := range db.EncodedFieldNames() {
		field, _ := db.EncodedField(name)
		fmt.Fprintf(w, "\nEncoded field %s:\n", name)

		values := make([]uint64, 0, len(field.Values))
		for value := range field.Values {
			values = append(values, value)
		}
		slices.Sort(values)

		writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		fmt.Fprintf(writer, "  VALUE\tCOMPONENTS\n")
		for _, value := range values {
			fmt.Fprintf(writer, "  %d\t%s\n", value, formatAssignment(field.Values[value]))
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// formatBitLengths renders a pattern's field widths as
// "name=bits name=bits" with field names sorted. Zero-width fields
// are listed: they pin the field to value zero for the pattern.
func formatBitLengths(lengths map[string]int) string {
	if len(lengths) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(lengths))
	for name := range lengths {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, lengths[name]))
	}
	return strings.Join(parts, " ")
}

// formatAssignment renders a value's component assignment as
// "type=name,name type=name" with component types sorted.
func formatAssignment(assignment hwiddb.ComponentAssignment) string {
	if len(assignment) == 0 {
		return "(none)"
	}
	types := make([]string, 0, len(assignment))
	for componentType := range assignment {
		types = append(types, componentType)
	}
	slices.Sort(types)

	parts := make([]string, 0, len(types))
	for _, componentType := range types {
		parts = append(parts, componentType+"="+strings.Join(assignment[componentType], ","))
	}
	return strings.Join(parts, " ")
}

// joinInts renders image IDs as "0, 1, 2".
func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = strconv.Itoa(value)
	}
	return strings.Join(parts, ", ")
}
