// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package bitfield

import (
	"fmt"
)

// Rearrange permutes the bits of value according to bitOffsets: bit i
// of the result is bit bitOffsets[i] of value. Offsets beyond the
// width of value read as zero, and repeated or non-contiguous offsets
// are accepted. Pure function.
func Rearrange(value uint64, bitOffsets []int) uint64 {
	var result uint64
	for i, offset := range bitOffsets {
		result |= ((value >> offset) & 1) << i
	}
	return result
}

// Bits is a decoded HWID bit string. Position 0 is the leftmost bit.
// The zero value is the empty bit string.
type Bits struct {
	bits string
}

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(s string) (Bits, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return Bits{}, fmt.Errorf("bit string: invalid character %q at position %d", s[i], i)
		}
	}
	return Bits{bits: s}, nil
}

// Len returns the number of bits.
func (b Bits) Len() int {
	return len(b.bits)
}

// String returns the bit string as '0' and '1' characters.
func (b Bits) String() string {
	return b.bits
}

// Bit returns the bit at position i. Positions outside the string
// read as zero: an encoding pattern may reference bits beyond the end
// of a short HWID, and those decode as zero by convention.
func (b Bits) Bit(i int) int {
	if i < 0 || i >= len(b.bits) {
		return 0
	}
	if b.bits[i] == '1' {
		return 1
	}
	return 0
}

// Extract reads the bits at the given positions and assembles them
// into an integer, with position i contributing bit i of the result.
func (b Bits) Extract(positions []int) uint64 {
	var value uint64
	for i, position := range positions {
		value |= uint64(b.Bit(position)) << i
	}
	return value
}
