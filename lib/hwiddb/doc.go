// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package hwiddb models a parsed HWID database: the encoding patterns
// that lay out a project's HWID bit string and the encoded-field
// tables that map field values to component names.
//
// An encoded HWID string opens with a fixed five-bit header selecting
// the image ID, which in turn selects the encoding pattern. After the
// header, each pattern allocates bits to named encoded fields one
// pattern line at a time, most significant bit first, so a field's
// physical bit order generally differs from its numeric bit order.
//
// A Database is immutable after construction. Accessors returning
// maps or slices hand out internal state; callers must not modify it.
package hwiddb
