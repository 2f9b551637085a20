// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package hwiddb

import (
	"errors"
	"fmt"
	"slices"
)

// HeaderBitLength is the number of bits the image-ID header occupies
// at the front of every encoded HWID string, before any encoded
// field. It also caps image IDs at 1<<HeaderBitLength - 1.
const HeaderBitLength = 5

// maxImageID is the largest image ID the header can express.
const maxImageID = 1<<HeaderBitLength - 1

// PatternAllocation is one line of an encoding pattern: BitCount
// additional bits for FieldName. A zero BitCount is legal and means
// the field is present in the pattern but always decodes to zero.
type PatternAllocation struct {
	FieldName string
	BitCount  int
}

// PatternSpec declares one encoding pattern: the image IDs it covers
// and its ordered field allocations.
type PatternSpec struct {
	ImageIDs    []int
	Allocations []PatternAllocation
}

// BitMappingEntry describes one physical bit of a pattern: entry i of
// a pattern's bit mapping occupies physical HWID bit HeaderBitLength+i
// and carries bit FieldBitOffset of field FieldName.
type BitMappingEntry struct {
	FieldName      string
	FieldBitOffset int
}

// ComponentAssignment maps a component type to the component names an
// encoded field value stands for.
type ComponentAssignment map[string][]string

// EncodedField is one encoded-field table: every value the field can
// take, with the component assignment each value encodes.
type EncodedField struct {
	Name   string
	Values map[uint64]ComponentAssignment
}

// pattern is a compiled encoding pattern: the declared allocations
// plus the derived per-field bit lengths and the physical bit mapping.
type pattern struct {
	imageIDs    []int // sorted ascending
	allocations []PatternAllocation
	bitLengths  map[string]int
	bitMapping  []BitMappingEntry
}

// Database is a parsed, read-only HWID database.
type Database struct {
	project        string
	patterns       []pattern
	fields         []EncodedField // declaration order
	fieldIndex     map[string]int
	imageToPattern map[int]int
}

// New builds a Database from pattern specs and encoded-field tables,
// validating structural invariants: at least one pattern, image IDs
// unique and within header range, allocations only for declared
// fields with non-negative bit counts, and non-empty component names.
func New(project string, patterns []PatternSpec, fields []EncodedField) (*Database, error) {
	db := &Database{
		project:        project,
		fields:         fields,
		fieldIndex:     make(map[string]int, len(fields)),
		imageToPattern: make(map[int]int),
	}

	var errs []error
	if project == "" {
		errs = append(errs, errors.New("project name is empty"))
	}
	if len(patterns) == 0 {
		errs = append(errs, errors.New("database declares no encoding pattern"))
	}

	for i, field := range fields {
		if field.Name == "" {
			errs = append(errs, fmt.Errorf("encoded field %d has no name", i))
			continue
		}
		if _, exists := db.fieldIndex[field.Name]; exists {
			errs = append(errs, fmt.Errorf("encoded field %q declared twice", field.Name))
			continue
		}
		db.fieldIndex[field.Name] = i
		for value, assignment := range field.Values {
			for componentType, names := range assignment {
				if componentType == "" {
					errs = append(errs, fmt.Errorf("field %q value %d: empty component type", field.Name, value))
				}
				for _, name := range names {
					if name == "" {
						errs = append(errs, fmt.Errorf("field %q value %d: empty component name under %q", field.Name, value, componentType))
					}
				}
			}
		}
	}

	for idx, spec := range patterns {
		compiled := pattern{
			imageIDs:    slices.Clone(spec.ImageIDs),
			allocations: spec.Allocations,
			bitLengths:  make(map[string]int),
		}
		slices.Sort(compiled.imageIDs)

		if len(spec.ImageIDs) == 0 {
			errs = append(errs, fmt.Errorf("pattern %d covers no image ID", idx))
		}
		for _, imageID := range spec.ImageIDs {
			if imageID < 0 || imageID > maxImageID {
				errs = append(errs, fmt.Errorf("pattern %d: image ID %d outside header range 0..%d", idx, imageID, maxImageID))
				continue
			}
			if previous, exists := db.imageToPattern[imageID]; exists {
				errs = append(errs, fmt.Errorf("image ID %d claimed by patterns %d and %d", imageID, previous, idx))
				continue
			}
			db.imageToPattern[imageID] = idx
		}

		for _, allocation := range spec.Allocations {
			if _, known := db.fieldIndex[allocation.FieldName]; !known {
				errs = append(errs, fmt.Errorf("pattern %d allocates bits to undeclared field %q", idx, allocation.FieldName))
				continue
			}
			if allocation.BitCount < 0 {
				errs = append(errs, fmt.Errorf("pattern %d: field %q has negative bit count %d", idx, allocation.FieldName, allocation.BitCount))
				continue
			}
			// Each allocation hands the field its next BitCount bits,
			// most significant first: a field already holding width
			// bits gains offsets width+BitCount-1 down to width.
			width := compiled.bitLengths[allocation.FieldName]
			for i := 0; i < allocation.BitCount; i++ {
				compiled.bitMapping = append(compiled.bitMapping, BitMappingEntry{
					FieldName:      allocation.FieldName,
					FieldBitOffset: width + allocation.BitCount - 1 - i,
				})
			}
			compiled.bitLengths[allocation.FieldName] = width + allocation.BitCount
		}

		db.patterns = append(db.patterns, compiled)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return db, nil
}

// Project returns the project name the database belongs to.
func (db *Database) Project() string {
	return db.project
}

// PatternCount returns the number of encoding patterns.
func (db *Database) PatternCount() int {
	return len(db.patterns)
}

// ImageIDs returns every image ID in the database, ascending.
func (db *Database) ImageIDs() []int {
	ids := make([]int, 0, len(db.imageToPattern))
	for id := range db.imageToPattern {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// PatternIndex returns the encoding pattern covering an image ID.
func (db *Database) PatternIndex(imageID int) (int, bool) {
	idx, ok := db.imageToPattern[imageID]
	return idx, ok
}

// PatternImageIDs returns the image IDs covered by one pattern,
// ascending.
func (db *Database) PatternImageIDs(patternIdx int) []int {
	return db.patterns[patternIdx].imageIDs
}

// FieldBitLengths returns the total bits each field is allocated in a
// pattern. Fields with zero-bit allocations are present with length
// zero; fields the pattern never mentions are absent.
func (db *Database) FieldBitLengths(patternIdx int) map[string]int {
	return db.patterns[patternIdx].bitLengths
}

// BitMapping returns a pattern's ordered physical bit mapping. Entry
// i occupies physical HWID bit HeaderBitLength+i.
func (db *Database) BitMapping(patternIdx int) []BitMappingEntry {
	return db.patterns[patternIdx].bitMapping
}

// EncodedField looks up an encoded-field table by name.
func (db *Database) EncodedField(name string) (EncodedField, bool) {
	idx, ok := db.fieldIndex[name]
	if !ok {
		return EncodedField{}, false
	}
	return db.fields[idx], true
}

// EncodedFieldNames returns every encoded field name in database
// declaration order.
func (db *Database) EncodedFieldNames() []string {
	names := make([]string, len(db.fields))
	for i, field := range db.fields {
		names[i] = field.Name
	}
	return names
}

// HasComponentType reports whether any encoded field value anywhere
// in the database assigns a component of the given type.
func (db *Database) HasComponentType(componentType string) bool {
	for _, field := range db.fields {
		for _, assignment := range field.Values {
			if _, ok := assignment[componentType]; ok {
				return true
			}
		}
	}
	return false
}
