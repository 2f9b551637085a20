// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"slices"

	"github.com/hwidkit/hwidkit/lib/dlm"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
	"github.com/hwidkit/hwidkit/lib/namepattern"
)

// Oracle answers component-compatibility questions for one spec,
// memoizing answers by component name and by DLM entry — encoded
// field tables repeat the same names many times, and distinct names
// frequently resolve to the same DLM entry.
//
// An Oracle belongs to a single resolution call. Its caches are keyed
// by name and ID only, so an oracle reused across different database
// snapshots would serve stale answers; build a fresh one per call.
// Not safe for concurrent use.
type Oracle struct {
	components dlm.Database
	adapter    *namepattern.Adapter
	predicate  func(dlm.ComponentEntry) bool

	byName  map[nameKey]bool
	byEntry map[dlm.ComponentID]bool
}

type nameKey struct {
	componentType string
	componentName string
}

// NewOracle builds an Oracle over a DLM snapshot. The predicate
// decides whether a DLM entry satisfies the spec.
func NewOracle(components dlm.Database, adapter *namepattern.Adapter, predicate func(dlm.ComponentEntry) bool) *Oracle {
	return &Oracle{
		components: components,
		adapter:    adapter,
		predicate:  predicate,
		byName:     make(map[nameKey]bool),
		byEntry:    make(map[dlm.ComponentID]bool),
	}
}

// ComponentCompatible reports whether a named component satisfies the
// oracle's predicate. A name that does not follow the AVL convention,
// or whose ID has no DLM entry, is incompatible — a normal negative
// answer, not an error.
func (o *Oracle) ComponentCompatible(componentType, componentName string) bool {
	key := nameKey{componentType: componentType, componentName: componentName}
	if result, ok := o.byName[key]; ok {
		return result
	}

	result := false
	if id, ok := o.adapter.NamePattern(componentType).Match(componentName); ok {
		result = o.entryCompatible(id)
	}
	o.byName[key] = result
	return result
}

func (o *Oracle) entryCompatible(id dlm.ComponentID) bool {
	if result, ok := o.byEntry[id]; ok {
		return result
	}
	entry, ok := o.components[id]
	result := ok && o.predicate(entry)
	o.byEntry[id] = result
	return result
}

// SatisfiedEncodedValues scans every encoded field of db in
// declaration order and collects the field values whose component
// assignment includes at least one compatible component of the
// checked types. Fields with no compatible value are absent from the
// result; value lists are sorted ascending.
func (o *Oracle) SatisfiedEncodedValues(db *hwiddb.Database, componentTypes []string) map[string][]uint64 {
	result := make(map[string][]uint64)
	for _, fieldName := range db.EncodedFieldNames() {
		field, _ := db.EncodedField(fieldName)
		var satisfied []uint64
		for value, assignment := range field.Values {
			if o.assignmentCompatible(assignment, componentTypes) {
				satisfied = append(satisfied, value)
			}
		}
		if len(satisfied) > 0 {
			slices.Sort(satisfied)
			result[fieldName] = satisfied
		}
	}
	return result
}

func (o *Oracle) assignmentCompatible(assignment hwiddb.ComponentAssignment, componentTypes []string) bool {
	for _, componentType := range componentTypes {
		for _, componentName := range assignment[componentType] {
			if o.ComponentCompatible(componentType, componentName) {
				return true
			}
		}
	}
	return false
}
