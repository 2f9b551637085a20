// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package bitfield provides the bit-level primitives of the HWID
// encoding scheme: rearranging the bits of an encoded field value
// between numeric order and physical bit order, and extracting field
// values from a decoded HWID bit string.
//
// The HWID encoding allocates the bits of a field most significant
// first, one pattern line at a time, so the physical order of a
// field's bits within the encoded string generally differs from the
// numeric bit order of the field's value. Rearrange converts between
// the two given the field-internal offset of each physical bit.
package bitfield
