// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

// FieldResolution is the outcome of resolving one encoded field
// against one pattern. Exactly three states exist: the field can
// never demonstrate compatibility under the pattern, every HWID in
// the pattern already satisfies the spec through this field, or
// compatibility is pinned to a concrete bit-string requirement.
//
// "Always" and "never" are not interchangeable with an empty or
// missing requirement; collapsing them corrupts the combinator's
// short-circuit and elision logic.
type FieldResolution struct {
	state       fieldState
	requirement BitStringRequirement
}

type fieldState uint8

const (
	fieldNever fieldState = iota
	fieldAlways
	fieldSpecific
)

// NeverSatisfiable is the resolution of a field that cannot
// demonstrate compatibility under the pattern.
func NeverSatisfiable() FieldResolution {
	return FieldResolution{state: fieldNever}
}

// AlwaysSatisfied is the resolution of a field whose value is
// compatible in every HWID of the pattern regardless of bit values.
func AlwaysSatisfied() FieldResolution {
	return FieldResolution{state: fieldAlways}
}

// FieldRequirement is a resolution carrying a concrete requirement.
func FieldRequirement(requirement BitStringRequirement) FieldResolution {
	return FieldResolution{state: fieldSpecific, requirement: requirement}
}

// IsNever reports whether the field can never demonstrate
// compatibility under the pattern.
func (r FieldResolution) IsNever() bool {
	return r.state == fieldNever
}

// IsAlways reports whether the field satisfies the spec in every HWID
// of the pattern.
func (r FieldResolution) IsAlways() bool {
	return r.state == fieldAlways
}

// Requirement returns the concrete requirement, if the resolution
// carries one.
func (r FieldResolution) Requirement() (BitStringRequirement, bool) {
	return r.requirement, r.state == fieldSpecific
}

// CandidateSet is a spec's resolution outcome for one pattern: either
// the spec is always fulfilled regardless of bit values, or it
// carries a list of alternative requirements, any one of which
// demonstrates compatibility. An empty candidate list means the spec
// can never be satisfied under the pattern — a different statement
// from "always fulfilled", and the two must stay distinguishable.
type CandidateSet struct {
	always     bool
	candidates []BitStringRequirement
}

// AlwaysFulfilled is the candidate set of a spec that every HWID in
// the pattern satisfies.
func AlwaysFulfilled() CandidateSet {
	return CandidateSet{always: true}
}

// RequirementCandidates is a candidate set carrying alternative
// requirements. An empty or nil list means the spec is unsatisfiable
// under the pattern.
func RequirementCandidates(candidates []BitStringRequirement) CandidateSet {
	return CandidateSet{candidates: candidates}
}

// IsAlwaysFulfilled reports whether every HWID in the pattern
// satisfies the spec.
func (s CandidateSet) IsAlwaysFulfilled() bool {
	return s.always
}

// Candidates returns the alternative requirements. Meaningless when
// IsAlwaysFulfilled.
func (s CandidateSet) Candidates() []BitStringRequirement {
	return s.candidates
}
