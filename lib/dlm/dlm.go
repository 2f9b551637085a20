// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package dlm

import (
	"slices"
)

// CPUProperty describes the versioned-feature capability of a CPU
// component: the set of feature-scheme versions it supports.
type CPUProperty struct {
	// CompatibleVersions is sorted and deduplicated.
	CompatibleVersions []int
}

// NewCPUProperty builds a CPUProperty from an arbitrary version list,
// canonicalizing it to sorted, deduplicated form.
func NewCPUProperty(versions []int) CPUProperty {
	canonical := slices.Clone(versions)
	slices.Sort(canonical)
	canonical = slices.Compact(canonical)
	return CPUProperty{CompatibleVersions: canonical}
}

// SupportsVersion reports whether the CPU supports the given
// feature-scheme version.
func (p CPUProperty) SupportsVersion(version int) bool {
	_, found := slices.BinarySearch(p.CompatibleVersions, version)
	return found
}

// ComponentEntry is one component-qualification entry. Property
// fields are nil when the database carries no data of that kind for
// the entry; future feature domains add further typed properties.
type ComponentEntry struct {
	ID  ComponentID
	CPU *CPUProperty
}

// Database maps component IDs to their entries. Read-only for
// everything downstream of the loaders.
type Database map[ComponentID]ComponentEntry
