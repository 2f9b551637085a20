// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"strings"

	"github.com/hwidkit/hwidkit/lib/bitfield"
	"github.com/hwidkit/hwidkit/lib/dlm"
	"github.com/hwidkit/hwidkit/lib/hwiddb"
)

// resolveField translates one spec's satisfied values of one encoded
// field into a field-level resolution under one encoding pattern.
//
// A field the pattern never allocated bits for cannot be proven from
// the bit string. A zero-width field stores only value 0, so the
// resolution collapses to whether 0 is among the satisfied values.
// Satisfied values too wide for the allocated bits are unreachable
// under this pattern and are dropped; dropping every value makes the
// field unsatisfiable here, not an error.
func resolveField(db *hwiddb.Database, patternIdx int, specName, fieldName string, values []uint64) FieldResolution {
	bitLength, allocated := db.FieldBitLengths(patternIdx)[fieldName]
	if !allocated {
		return NeverSatisfiable()
	}
	if bitLength == 0 {
		if slices.Contains(values, 0) {
			return AlwaysSatisfied()
		}
		return NeverSatisfiable()
	}

	var bitPositions []int
	var bitOffsets []int
	for i, entry := range db.BitMapping(patternIdx) {
		if entry.FieldName == fieldName {
			bitPositions = append(bitPositions, hwiddb.HeaderBitLength+i)
			bitOffsets = append(bitOffsets, entry.FieldBitOffset)
		}
	}

	var required []uint64
	for _, value := range values {
		if bits.Len64(value) > bitLength {
			continue
		}
		required = append(required, bitfield.Rearrange(value, bitOffsets))
	}
	if len(required) == 0 {
		return NeverSatisfiable()
	}
	slices.Sort(required)
	required = slices.Compact(required)

	return FieldRequirement(BitStringRequirement{
		Description:    specName + ",encoded_field=" + fieldName,
		BitPositions:   bitPositions,
		RequiredValues: required,
	})
}

// specCandidates resolves every encoded field a spec reported
// satisfied values for, under one pattern, and folds the field
// resolutions into the spec's candidate set. One always-satisfied
// field fulfills the whole spec; otherwise each specifically
// resolvable field contributes one OR-alternative.
func specCandidates(db *hwiddb.Database, patternIdx int, specName string, satisfiedValues map[string][]uint64) CandidateSet {
	var candidates []BitStringRequirement
	for _, fieldName := range db.EncodedFieldNames() {
		values, ok := satisfiedValues[fieldName]
		if !ok {
			continue
		}
		resolution := resolveField(db, patternIdx, specName, fieldName, values)
		switch {
		case resolution.IsAlways():
			return AlwaysFulfilled()
		case resolution.IsNever():
			continue
		}
		requirement, _ := resolution.Requirement()
		candidates = append(candidates, requirement)
	}
	return RequirementCandidates(candidates)
}

// patternCandidates combines per-spec candidate sets with AND
// semantics across specs and OR semantics within each set. A spec
// with no candidates makes the pattern unsatisfiable. Always-fulfilled
// specs are elided from the product; when that elides everything, a
// single vacuous requirement remains. The variant description is
// emitted only when more than one spec has a real choice.
func patternCandidates(sets []CandidateSet) []Requirement {
	var contributing [][]BitStringRequirement
	for _, set := range sets {
		if set.IsAlwaysFulfilled() {
			continue
		}
		candidates := set.Candidates()
		if len(candidates) == 0 {
			return nil
		}
		contributing = append(contributing, candidates)
	}
	if len(contributing) == 0 {
		return []Requirement{{}}
	}

	multiCandidate := 0
	for _, candidates := range contributing {
		if len(candidates) > 1 {
			multiCandidate++
		}
	}

	var requirements []Requirement
	for _, tuple := range cartesianProduct(contributing) {
		description := ""
		if multiCandidate > 1 {
			var chosen []string
			for i, candidates := range contributing {
				if len(candidates) > 1 {
					chosen = append(chosen, tuple[i].Description)
				}
			}
			description = "variant=(" + strings.Join(chosen, ",") + ")"
		}
		requirements = append(requirements, Requirement{
			Description:   description,
			Prerequisites: tuple,
		})
	}
	return requirements
}

// cartesianProduct enumerates one item per list, last list varying
// fastest. Tuples preserve list order.
func cartesianProduct[T any](lists [][]T) [][]T {
	product := [][]T{nil}
	for _, list := range lists {
		next := make([][]T, 0, len(product)*len(list))
		for _, tuple := range product {
			for _, item := range list {
				combined := make([]T, len(tuple), len(tuple)+1)
				copy(combined, tuple)
				next = append(next, append(combined, item))
			}
		}
		product = next
	}
	return product
}

// imageIDRequirement pins the 5-bit header to one of the pattern's
// image IDs. Header positions run MSB first.
func imageIDRequirement(imageIDs []int) BitStringRequirement {
	bitPositions := make([]int, hwiddb.HeaderBitLength)
	for i := range bitPositions {
		bitPositions[i] = hwiddb.HeaderBitLength - 1 - i
	}
	requiredValues := make([]uint64, len(imageIDs))
	for i, imageID := range imageIDs {
		requiredValues[i] = uint64(imageID)
	}
	return BitStringRequirement{
		Description:    "image_id",
		BitPositions:   bitPositions,
		RequiredValues: requiredValues,
	}
}

// Resolver deduces, for a feature defined by a set of specs, the
// exhaustive requirement collection over a database snapshot: a bit
// string is feature-compatible exactly when it satisfies at least one
// emitted requirement.
type Resolver struct {
	specs []Spec
}

// NewResolver builds a Resolver from the feature's specs. A feature
// needs at least one spec; an empty conjunction would declare every
// board compatible.
func NewResolver(specs ...Spec) (*Resolver, error) {
	if len(specs) == 0 {
		return nil, errors.New("feature: resolver needs at least one spec")
	}
	return &Resolver{specs: slices.Clone(specs)}, nil
}

// Resolve evaluates every spec against the database and DLM snapshots
// and emits the requirement collection, one group of requirements per
// encoding pattern in pattern order. Each requirement's first
// prerequisite pins the image-ID header to the pattern.
//
// Spec errors propagate unmodified so callers can detect
// *UnsupportedDatabaseError.
func (r *Resolver) Resolve(db *hwiddb.Database, components dlm.Database) ([]Requirement, error) {
	satisfied := make([]map[string][]uint64, len(r.specs))
	for i, spec := range r.specs {
		values, err := spec.SatisfiedEncodedValues(db, components)
		if err != nil {
			return nil, err
		}
		satisfied[i] = values
	}

	var requirements []Requirement
	for patternIdx := 0; patternIdx < db.PatternCount(); patternIdx++ {
		imageRequirement := imageIDRequirement(db.PatternImageIDs(patternIdx))
		sets := make([]CandidateSet, len(r.specs))
		for i, spec := range r.specs {
			sets[i] = specCandidates(db, patternIdx, spec.Name(), satisfied[i])
		}
		for _, candidate := range patternCandidates(sets) {
			description := fmt.Sprintf("pattern_idx=%d", patternIdx)
			if candidate.Description != "" {
				description += "," + candidate.Description
			}
			prerequisites := make([]BitStringRequirement, 0, len(candidate.Prerequisites)+1)
			prerequisites = append(prerequisites, imageRequirement)
			prerequisites = append(prerequisites, candidate.Prerequisites...)
			requirements = append(requirements, Requirement{
				Description:   description,
				Prerequisites: prerequisites,
			})
		}
	}
	return requirements, nil
}
