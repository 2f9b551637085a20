// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package hwiddb

import (
	"testing"
)

func fingerprintOf(t *testing.T, yaml string) string {
	t.Helper()
	db, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return db.Fingerprint()
}

func TestFingerprintStable(t *testing.T) {
	first := fingerprintOf(t, sampleDatabase)
	second := fingerprintOf(t, sampleDatabase)
	if first != second {
		t.Errorf("same snapshot produced different fingerprints: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex characters", len(first))
	}
}

func TestFingerprintIgnoresNameOrder(t *testing.T) {
	// Component names within a value are a set; listing order is not
	// database content.
	reordered := `
project: SAMPLEPROJ
encoding_patterns:
  - image_ids: [0, 1]
    fields:
      - cpu_field: 2
      - storage_field: 0
      - cpu_field: 1
encoded_fields:
  cpu_field:
    0: {cpu: cpu_10_1}
    1: {cpu: [cpu_21, cpu_20]}
    2: {cpu: cpu_30}
  storage_field:
    0: {storage: storage_5}
`
	if fingerprintOf(t, sampleDatabase) != fingerprintOf(t, reordered) {
		t.Error("component name order changed the fingerprint")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := fingerprintOf(t, sampleDatabase)

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "different component name",
			yaml: `
project: SAMPLEPROJ
encoding_patterns:
  - image_ids: [0, 1]
    fields:
      - cpu_field: 2
      - storage_field: 0
      - cpu_field: 1
encoded_fields:
  cpu_field:
    0: {cpu: cpu_10_1}
    1: {cpu: [cpu_20, cpu_22]}
    2: {cpu: cpu_30}
  storage_field:
    0: {storage: storage_5}
`,
		},
		{
			// Field declaration order drives resolver iteration, so it
			// is database content.
			name: "different field declaration order",
			yaml: `
project: SAMPLEPROJ
encoding_patterns:
  - image_ids: [0, 1]
    fields:
      - cpu_field: 2
      - storage_field: 0
      - cpu_field: 1
encoded_fields:
  storage_field:
    0: {storage: storage_5}
  cpu_field:
    0: {cpu: cpu_10_1}
    1: {cpu: [cpu_20, cpu_21]}
    2: {cpu: cpu_30}
`,
		},
		{
			name: "different project",
			yaml: `
project: OTHERPROJ
encoding_patterns:
  - image_ids: [0, 1]
    fields:
      - cpu_field: 2
      - storage_field: 0
      - cpu_field: 1
encoded_fields:
  cpu_field:
    0: {cpu: cpu_10_1}
    1: {cpu: [cpu_20, cpu_21]}
    2: {cpu: cpu_30}
  storage_field:
    0: {storage: storage_5}
`,
		},
		{
			name: "different allocation",
			yaml: `
project: SAMPLEPROJ
encoding_patterns:
  - image_ids: [0, 1]
    fields:
      - cpu_field: 3
      - storage_field: 0
encoded_fields:
  cpu_field:
    0: {cpu: cpu_10_1}
    1: {cpu: [cpu_20, cpu_21]}
    2: {cpu: cpu_30}
  storage_field:
    0: {storage: storage_5}
`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if fingerprintOf(t, test.yaml) == base {
				t.Error("change did not alter the fingerprint")
			}
		})
	}
}
