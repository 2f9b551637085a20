// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"fmt"

	"github.com/hwidkit/hwidkit/lib/dlm"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
	"github.com/hwidkit/hwidkit/lib/namepattern"
)

// Spec is one hardware requirement of a feature version. A spec maps
// a database snapshot plus a DLM snapshot to the encoded field values
// that satisfy it.
type Spec interface {
	// Name identifies the spec in requirement descriptions.
	Name() string

	// SatisfiedEncodedValues returns, per encoded field, the sorted
	// field values whose component assignment satisfies the spec.
	// Fields with no satisfying value are absent. Returns
	// *UnsupportedDatabaseError when the database cannot express the
	// spec at all.
	SatisfiedEncodedValues(db *hwiddb.Database, components dlm.Database) (map[string][]uint64, error)
}

// CPUSpec requires a CPU whose DLM entry declares compatibility with
// the target feature version.
type CPUSpec struct {
	TargetVersion int
}

// Name implements Spec.
func (s CPUSpec) Name() string {
	return fmt.Sprintf("cpu_v%d", s.TargetVersion)
}

// SatisfiedEncodedValues implements Spec. A database with no encoded
// field referencing a cpu component cannot express CPU requirements,
// which is an *UnsupportedDatabaseError rather than an empty answer:
// silence here would make every board look incompatible instead of
// flagging the snapshot as unusable.
func (s CPUSpec) SatisfiedEncodedValues(db *hwiddb.Database, components dlm.Database) (map[string][]uint64, error) {
	if !db.HasComponentType("cpu") {
		return nil, &UnsupportedDatabaseError{
			Spec:   s.Name(),
			Reason: "no encoded field references a cpu component",
		}
	}
	oracle := NewOracle(components, namepattern.NewAdapter(), func(entry dlm.ComponentEntry) bool {
		return entry.CPU != nil && entry.CPU.SupportsVersion(s.TargetVersion)
	})
	return oracle.SatisfiedEncodedValues(db, []string{"cpu"}), nil
}
