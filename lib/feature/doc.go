// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package feature deduces, for a versioned hardware feature and a
// HWID database, the bit-string requirements whose satisfaction marks
// an encoded HWID as feature-compatible.
//
// The result is a disjunction of conjunctions: an HWID is compatible
// iff at least one Requirement holds, and a Requirement holds iff all
// of its BitStringRequirement prerequisites hold. Each encoding
// pattern contributes its own disjuncts, every one opening with the
// mandatory image-ID prerequisite over the five header bits.
//
// A feature is one or more Specs (for example "CPU supports feature
// version 1"). Per spec and pattern, resolution is three-valued: the
// spec may be unsatisfiable under the pattern, always satisfied
// regardless of bit values, or pinned to concrete required values of
// the fields that encode the relevant components. The combinator then
// takes the cartesian product across specs, eliding always-satisfied
// specs and dropping patterns where any spec is unsatisfiable.
//
// Resolution is single-threaded, synchronous, and side-effect-free.
// Compatibility lookups are memoized in an Oracle whose caches live
// for exactly one resolution call, so stale answers can never leak
// across database snapshots.
package feature
