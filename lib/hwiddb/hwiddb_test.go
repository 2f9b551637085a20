// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package hwiddb

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

const sampleDatabase = `
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
    1: {cpu: [cpu_20, cpu_21]}
    2: {cpu: cpu_30}
  storage_field:
    0: {storage: storage_5}
`

func TestParse(t *testing.T) {
	db, err := Parse([]byte(sampleDatabase))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if db.Project() != "SAMPLEPROJ" {
		t.Errorf("Project() = %q, want %q", db.Project(), "SAMPLEPROJ")
	}
	if db.PatternCount() != 1 {
		t.Fatalf("PatternCount() = %d, want 1", db.PatternCount())
	}
	if got := db.ImageIDs(); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("ImageIDs() = %v, want [0 1]", got)
	}
	for _, imageID := range []int{0, 1} {
		idx, ok := db.PatternIndex(imageID)
		if !ok || idx != 0 {
			t.Errorf("PatternIndex(%d) = %d, %t, want 0, true", imageID, idx, ok)
		}
	}
	if _, ok := db.PatternIndex(2); ok {
		t.Error("PatternIndex(2) found a pattern for an unknown image ID")
	}
	if got := db.PatternImageIDs(0); !slices.Equal(got, []int{0, 1}) {
		t.Errorf("PatternImageIDs(0) = %v, want [0 1]", got)
	}

	lengths := db.FieldBitLengths(0)
	if lengths["cpu_field"] != 3 {
		t.Errorf("cpu_field bit length = %d, want 3", lengths["cpu_field"])
	}
	length, present := lengths["storage_field"]
	if !present || length != 0 {
		t.Errorf("storage_field bit length = %d (present %t), want 0, true", length, present)
	}

	// Bits are handed out most significant first per pattern line:
	// the two-bit line yields offsets 1, 0 and the later one-bit line
	// extends the field with offset 2.
	wantMapping := []BitMappingEntry{
		{FieldName: "cpu_field", FieldBitOffset: 1},
		{FieldName: "cpu_field", FieldBitOffset: 0},
		{FieldName: "cpu_field", FieldBitOffset: 2},
	}
	if got := db.BitMapping(0); !slices.Equal(got, wantMapping) {
		t.Errorf("BitMapping(0) = %v, want %v", got, wantMapping)
	}

	if got := db.EncodedFieldNames(); !slices.Equal(got, []string{"cpu_field", "storage_field"}) {
		t.Errorf("EncodedFieldNames() = %v, want declaration order", got)
	}

	field, ok := db.EncodedField("cpu_field")
	if !ok {
		t.Fatal("EncodedField(cpu_field) not found")
	}
	if len(field.Values) != 3 {
		t.Fatalf("cpu_field has %d values, want 3", len(field.Values))
	}
	if !slices.Equal(field.Values[1]["cpu"], []string{"cpu_20", "cpu_21"}) {
		t.Errorf("value 1 cpu names = %v, want [cpu_20 cpu_21]", field.Values[1]["cpu"])
	}
	if !slices.Equal(field.Values[0]["cpu"], []string{"cpu_10_1"}) {
		t.Errorf("value 0 cpu names = %v, want [cpu_10_1]", field.Values[0]["cpu"])
	}
	if _, ok := db.EncodedField("camera_field"); ok {
		t.Error("EncodedField(camera_field) found an undeclared field")
	}
}

func TestParseMultiplePatterns(t *testing.T) {
	db, err := Parse([]byte(`
project: MULTI
encoding_patterns:
  - image_ids: [0]
    fields:
      - cpu_field: 1
  - image_ids: [1, 3]
    fields:
      - cpu_field: 2
encoded_fields:
  cpu_field:
    0: {cpu: cpu_1}
    1: {cpu: cpu_2}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if db.PatternCount() != 2 {
		t.Fatalf("PatternCount() = %d, want 2", db.PatternCount())
	}
	if idx, _ := db.PatternIndex(0); idx != 0 {
		t.Errorf("PatternIndex(0) = %d, want 0", idx)
	}
	for _, imageID := range []int{1, 3} {
		if idx, _ := db.PatternIndex(imageID); idx != 1 {
			t.Errorf("PatternIndex(%d) = %d, want 1", imageID, idx)
		}
	}
	if got := db.ImageIDs(); !slices.Equal(got, []int{0, 1, 3}) {
		t.Errorf("ImageIDs() = %v, want [0 1 3]", got)
	}
	if length := db.FieldBitLengths(1)["cpu_field"]; length != 2 {
		t.Errorf("pattern 1 cpu_field bit length = %d, want 2", length)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		wantIn string
	}{
		{
			name:   "no patterns",
			yaml:   "project: P\nencoded_fields:\n  f:\n    0: {cpu: cpu_1}\n",
			wantIn: "no encoding pattern",
		},
		{
			name: "duplicate image id",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [0]
    fields: [{f: 1}]
  - image_ids: [0]
    fields: [{f: 1}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
`,
			wantIn: "image ID 0 claimed by patterns",
		},
		{
			name: "image id above header range",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [32]
    fields: [{f: 1}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
`,
			wantIn: "outside header range",
		},
		{
			name: "negative image id",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [-1]
    fields: [{f: 1}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
`,
			wantIn: "outside header range",
		},
		{
			name: "undeclared field in pattern",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [0]
    fields: [{ghost: 1}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
`,
			wantIn: "undeclared field",
		},
		{
			name: "negative field value",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [0]
    fields: [{f: 1}]
encoded_fields:
  f:
    -1: {cpu: cpu_1}
`,
			wantIn: "not a non-negative integer",
		},
		{
			name: "duplicate field value",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [0]
    fields: [{f: 1}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
    0: {cpu: cpu_2}
`,
			wantIn: "listed twice",
		},
		{
			name: "empty component name",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [0]
    fields: [{f: 1}]
encoded_fields:
  f:
    0: {cpu: ""}
`,
			wantIn: "empty component name",
		},
		{
			name: "missing project",
			yaml: `
encoding_patterns:
  - image_ids: [0]
    fields: [{f: 1}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
`,
			wantIn: "project name is empty",
		},
		{
			name: "multi-key pattern line",
			yaml: `
project: P
encoding_patterns:
  - image_ids: [0]
    fields: [{f: 1, g: 2}]
encoded_fields:
  f:
    0: {cpu: cpu_1}
  g:
    0: {cpu: cpu_2}
`,
			wantIn: "exactly one",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.yaml))
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if !strings.Contains(err.Error(), test.wantIn) {
				t.Errorf("error %q does not mention %q", err, test.wantIn)
			}
		})
	}
}

func TestHasComponentType(t *testing.T) {
	db, err := Parse([]byte(sampleDatabase))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		componentType string
		want          bool
	}{
		{componentType: "cpu", want: true},
		{componentType: "storage", want: true},
		{componentType: "camera", want: false},
	}
	for _, test := range tests {
		if got := db.HasComponentType(test.componentType); got != test.want {
			t.Errorf("HasComponentType(%q) = %t, want %t", test.componentType, got, test.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "db.yaml")
	if err := os.WriteFile(plain, []byte(sampleDatabase), 0o644); err != nil {
		t.Fatal(err)
	}
	fromPlain, err := LoadFile(plain)
	if err != nil {
		t.Fatalf("LoadFile(plain): %v", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	compressed := encoder.EncodeAll([]byte(sampleDatabase), nil)
	if err := encoder.Close(); err != nil {
		t.Fatal(err)
	}
	packed := filepath.Join(dir, "db.yaml.zst")
	if err := os.WriteFile(packed, compressed, 0o644); err != nil {
		t.Fatal(err)
	}
	fromPacked, err := LoadFile(packed)
	if err != nil {
		t.Fatalf("LoadFile(zst): %v", err)
	}

	if fromPlain.Fingerprint() != fromPacked.Fingerprint() {
		t.Error("compressed and plain snapshots produced different databases")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile on missing file succeeded, want error")
	}
}
