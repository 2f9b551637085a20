// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"errors"
	"slices"
	"testing"

	"github.com/hwidkit/hwidkit/lib/dlm"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
	"github.com/hwidkit/hwidkit/lib/namepattern"
)

// cpuEntry builds a DLM entry whose CPU property lists the given
// compatible feature versions.
func cpuEntry(t *testing.T, id string, versions ...int) dlm.ComponentEntry {
	t.Helper()
	parsed, err := dlm.ParseComponentID(id)
	if err != nil {
		t.Fatalf("parse component ID %q: %v", id, err)
	}
	cpu := dlm.NewCPUProperty(versions)
	return dlm.ComponentEntry{ID: parsed, CPU: &cpu}
}

// componentDatabase builds a DLM database from entries.
func componentDatabase(entries ...dlm.ComponentEntry) dlm.Database {
	components := make(dlm.Database, len(entries))
	for _, entry := range entries {
		components[entry.ID] = entry
	}
	return components
}

// hwidDatabase builds an in-memory HWID database, failing the test on
// an invalid fixture.
func hwidDatabase(t *testing.T, patterns []hwiddb.PatternSpec, fields []hwiddb.EncodedField) *hwiddb.Database {
	t.Helper()
	db, err := hwiddb.New("TESTPROJ", patterns, fields)
	if err != nil {
		t.Fatalf("build HWID database: %v", err)
	}
	return db
}

// supportsVersion is an oracle predicate for one feature version.
func supportsVersion(version int) func(dlm.ComponentEntry) bool {
	return func(entry dlm.ComponentEntry) bool {
		return entry.CPU != nil && entry.CPU.SupportsVersion(version)
	}
}

func TestOracleComponentCompatible(t *testing.T) {
	components := componentDatabase(
		cpuEntry(t, "100-1", 1, 2),
		cpuEntry(t, "200", 2),
	)
	oracle := NewOracle(components, namepattern.NewAdapter(), supportsVersion(1))

	tests := []struct {
		name string
		want bool
	}{
		{"cpu_100_1", true},
		{"cpu_100_1#B2 stepping", true},
		{"cpu_200", false},    // entry exists but supports only version 2
		{"cpu_999", false},    // no DLM entry
		{"cpu_100", false},    // unqualified 100 is a different entry than 100-1
		{"renesas_r9", false}, // name does not follow the cpu convention
		{"cpu_abc", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := oracle.ComponentCompatible("cpu", test.name); got != test.want {
				t.Errorf("ComponentCompatible(cpu, %q) = %v, want %v", test.name, got, test.want)
			}
		})
	}
}

func TestOracleMemoization(t *testing.T) {
	components := componentDatabase(cpuEntry(t, "100-1", 1))
	calls := 0
	oracle := NewOracle(components, namepattern.NewAdapter(), func(entry dlm.ComponentEntry) bool {
		calls++
		return true
	})

	// Three lookups, two distinct names, one underlying entry.
	for _, name := range []string{"cpu_100_1", "cpu_100_1", "cpu_100_1#respin"} {
		if !oracle.ComponentCompatible("cpu", name) {
			t.Errorf("ComponentCompatible(cpu, %q) = false, want true", name)
		}
	}
	if calls != 1 {
		t.Errorf("predicate called %d times for one distinct entry, want 1", calls)
	}
}

func TestOracleSatisfiedEncodedValues(t *testing.T) {
	components := componentDatabase(
		cpuEntry(t, "100-1", 1),
		cpuEntry(t, "200", 2),
	)
	db := hwidDatabase(t,
		[]hwiddb.PatternSpec{{
			ImageIDs:    []int{0},
			Allocations: []hwiddb.PatternAllocation{{FieldName: "cpu_field", BitCount: 2}},
		}},
		[]hwiddb.EncodedField{
			{
				Name: "cpu_field",
				Values: map[uint64]hwiddb.ComponentAssignment{
					0: {"cpu": {"cpu_200"}},
					1: {"cpu": {"cpu_100_1"}},
					2: {"cpu": {"cpu_200", "cpu_100_1"}}, // one compatible name suffices
					3: {"cpu": {"cpu_999"}},
				},
			},
			{
				Name: "storage_field",
				Values: map[uint64]hwiddb.ComponentAssignment{
					0: {"storage": {"storage_100_1"}},
				},
			},
		},
	)

	oracle := NewOracle(components, namepattern.NewAdapter(), supportsVersion(1))
	satisfied := oracle.SatisfiedEncodedValues(db, []string{"cpu"})

	want := map[string][]uint64{"cpu_field": {1, 2}}
	if len(satisfied) != len(want) {
		t.Fatalf("satisfied fields = %v, want %v", satisfied, want)
	}
	for field, values := range want {
		if !slices.Equal(satisfied[field], values) {
			t.Errorf("satisfied[%q] = %v, want %v", field, satisfied[field], values)
		}
	}
}

func TestCPUSpecSatisfiedEncodedValues(t *testing.T) {
	spec := CPUSpec{TargetVersion: 1}
	if spec.Name() != "cpu_v1" {
		t.Errorf("Name() = %q, want %q", spec.Name(), "cpu_v1")
	}

	components := componentDatabase(
		cpuEntry(t, "100-1", 1),
		cpuEntry(t, "200", 2),
	)
	db := hwidDatabase(t,
		[]hwiddb.PatternSpec{{
			ImageIDs:    []int{0},
			Allocations: []hwiddb.PatternAllocation{{FieldName: "cpu_field", BitCount: 1}},
		}},
		[]hwiddb.EncodedField{{
			Name: "cpu_field",
			Values: map[uint64]hwiddb.ComponentAssignment{
				0: {"cpu": {"cpu_200"}},
				1: {"cpu": {"cpu_100_1"}},
			},
		}},
	)

	satisfied, err := spec.SatisfiedEncodedValues(db, components)
	if err != nil {
		t.Fatalf("SatisfiedEncodedValues: %v", err)
	}
	if !slices.Equal(satisfied["cpu_field"], []uint64{1}) {
		t.Errorf("satisfied[cpu_field] = %v, want [1]", satisfied["cpu_field"])
	}
}

func TestCPUSpecUnsupportedDatabase(t *testing.T) {
	db := hwidDatabase(t,
		[]hwiddb.PatternSpec{{
			ImageIDs:    []int{0},
			Allocations: []hwiddb.PatternAllocation{{FieldName: "storage_field", BitCount: 1}},
		}},
		[]hwiddb.EncodedField{{
			Name: "storage_field",
			Values: map[uint64]hwiddb.ComponentAssignment{
				0: {"storage": {"storage_100_1"}},
			},
		}},
	)

	spec := CPUSpec{TargetVersion: 1}
	_, err := spec.SatisfiedEncodedValues(db, componentDatabase())
	if err == nil {
		t.Fatal("expected an error for a database with no cpu fields")
	}
	if !IsUnsupportedDatabase(err) {
		t.Fatalf("error %v is not an UnsupportedDatabaseError", err)
	}
	var unsupported *UnsupportedDatabaseError
	if !errors.As(err, &unsupported) {
		t.Fatalf("errors.As failed on %v", err)
	}
	if unsupported.Spec != "cpu_v1" {
		t.Errorf("unsupported.Spec = %q, want %q", unsupported.Spec, "cpu_v1")
	}
}
