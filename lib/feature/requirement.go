// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/hwidkit/hwidkit/lib/bitfield"
)

// BitStringRequirement is one bit-level prerequisite on an encoded
// HWID string: reading BitPositions into a value, position i
// contributing bit i, must yield a member of RequiredValues.
type BitStringRequirement struct {
	Description    string
	BitPositions   []int    // non-empty
	RequiredValues []uint64 // non-empty, sorted, deduplicated
}

// NewBitStringRequirement validates and canonicalizes a requirement:
// positions non-empty and non-negative, values non-empty and each
// representable in len(bitPositions) bits. RequiredValues is stored
// sorted and deduplicated.
func NewBitStringRequirement(description string, bitPositions []int, requiredValues []uint64) (BitStringRequirement, error) {
	if len(bitPositions) == 0 {
		return BitStringRequirement{}, errors.New("bit string requirement has no bit positions")
	}
	if len(requiredValues) == 0 {
		return BitStringRequirement{}, errors.New("bit string requirement has no required values")
	}
	for _, position := range bitPositions {
		if position < 0 {
			return BitStringRequirement{}, fmt.Errorf("negative bit position %d", position)
		}
	}

	values := slices.Clone(requiredValues)
	slices.Sort(values)
	values = slices.Compact(values)
	for _, value := range values {
		if bits.Len64(value) > len(bitPositions) {
			return BitStringRequirement{}, fmt.Errorf("required value %d does not fit in %d bits", value, len(bitPositions))
		}
	}

	return BitStringRequirement{
		Description:    description,
		BitPositions:   slices.Clone(bitPositions),
		RequiredValues: values,
	}, nil
}

// SatisfiedBy reports whether the bit string meets the requirement.
func (r BitStringRequirement) SatisfiedBy(hwidBits bitfield.Bits) bool {
	value := hwidBits.Extract(r.BitPositions)
	_, found := slices.BinarySearch(r.RequiredValues, value)
	return found
}

// Requirement is a conjunction of bit-string prerequisites. An empty
// prerequisite list is vacuously satisfied.
type Requirement struct {
	Description   string
	Prerequisites []BitStringRequirement
}

// SatisfiedBy reports whether the bit string meets every prerequisite.
func (r Requirement) SatisfiedBy(hwidBits bitfield.Bits) bool {
	for _, prerequisite := range r.Prerequisites {
		if !prerequisite.SatisfiedBy(hwidBits) {
			return false
		}
	}
	return true
}

// Compatible reports whether the bit string satisfies at least one of
// the requirements. An empty collection means no HWID is compatible.
func Compatible(requirements []Requirement, hwidBits bitfield.Bits) bool {
	for _, requirement := range requirements {
		if requirement.SatisfiedBy(hwidBits) {
			return true
		}
	}
	return false
}
