// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle reads and writes requirement artifacts: the durable
// output of one feature resolution run against one HWID database
// revision. An artifact records the project, the database
// fingerprint, the feature name, and the deduced requirement
// collection in wire-stable field names.
//
// Artifacts serialize as JSON (authored-facing, diffable) or CBOR
// (machine-facing, deterministic via lib/codec), optionally wrapped
// in a standard zstd or LZ4 frame. Both frame formats are
// self-describing and carry their own integrity checksums, so
// compressed artifacts stay readable by stock tooling.
package bundle

import (
	"fmt"
	"slices"
	"time"

	"github.com/hwidkit/hwidkit/lib/feature"
)

// Artifact is the wire form of one resolution run.
type Artifact struct {
	// Project is the board family the database describes.
	Project string `json:"project"`

	// DatabaseFingerprint identifies the exact database revision the
	// requirements were deduced from. Consumers reject artifacts
	// whose fingerprint does not match their database copy.
	DatabaseFingerprint string `json:"database_fingerprint"`

	// Feature names the feature definition that was resolved.
	Feature string `json:"feature"`

	// GeneratedAt is the resolution time, UTC.
	GeneratedAt time.Time `json:"generated_at"`

	// Requirements is the deduced collection. A HWID bit string is
	// feature-compatible exactly when it satisfies at least one
	// requirement.
	Requirements []RequirementRecord `json:"requirements"`
}

// RequirementRecord is the wire form of one feature.Requirement.
type RequirementRecord struct {
	Description   string            `json:"description,omitempty"`
	Prerequisites []BitStringRecord `json:"bit_string_prerequisites"`
}

// BitStringRecord is the wire form of one bit-string prerequisite.
type BitStringRecord struct {
	Description    string   `json:"description,omitempty"`
	BitPositions   []int    `json:"bit_positions"`
	RequiredValues []uint64 `json:"required_values"`
}

// New assembles an artifact from one resolution run.
func New(project, databaseFingerprint, featureName string, generatedAt time.Time, requirements []feature.Requirement) *Artifact {
	return &Artifact{
		Project:             project,
		DatabaseFingerprint: databaseFingerprint,
		Feature:             featureName,
		GeneratedAt:         generatedAt.UTC(),
		Requirements:        FromRequirements(requirements),
	}
}

// FromRequirements converts resolver output into wire records.
func FromRequirements(requirements []feature.Requirement) []RequirementRecord {
	records := make([]RequirementRecord, len(requirements))
	for i, requirement := range requirements {
		prerequisites := make([]BitStringRecord, len(requirement.Prerequisites))
		for j, prerequisite := range requirement.Prerequisites {
			prerequisites[j] = BitStringRecord{
				Description:    prerequisite.Description,
				BitPositions:   slices.Clone(prerequisite.BitPositions),
				RequiredValues: slices.Clone(prerequisite.RequiredValues),
			}
		}
		records[i] = RequirementRecord{
			Description:   requirement.Description,
			Prerequisites: prerequisites,
		}
	}
	return records
}

// FeatureRequirements reconstructs evaluable requirements from the
// artifact, re-validating every prerequisite. Decoded artifacts come
// from outside the process, so the resolver's construction invariants
// are checked rather than assumed.
func (a *Artifact) FeatureRequirements() ([]feature.Requirement, error) {
	requirements := make([]feature.Requirement, len(a.Requirements))
	for i, record := range a.Requirements {
		prerequisites := make([]feature.BitStringRequirement, len(record.Prerequisites))
		for j, prerequisite := range record.Prerequisites {
			restored, err := feature.NewBitStringRequirement(
				prerequisite.Description, prerequisite.BitPositions, prerequisite.RequiredValues)
			if err != nil {
				return nil, fmt.Errorf("requirement %d prerequisite %d: %w", i, j, err)
			}
			prerequisites[j] = restored
		}
		requirements[i] = feature.Requirement{
			Description:   record.Description,
			Prerequisites: prerequisites,
		}
	}
	return requirements, nil
}
