// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package hwiddb

import (
	"encoding/hex"
	"slices"

	"github.com/zeebo/blake3"

	"github.com/hwidkit/hwidkit/lib/codec"
)

// databaseDomainKey is the BLAKE3 key for database fingerprints.
// Domain separation keeps database fingerprints from colliding with
// hashes of the same bytes in other contexts. The byte values are the
// ASCII encoding of the domain name, zero-padded to 32 bytes, so the
// key is inspectable in hex dumps without losing any cryptographic
// property.
var databaseDomainKey = [32]byte{
	'h', 'w', 'i', 'd', 'k', 'i', 't', '.',
	'd', 'a', 't', 'a', 'b', 'a', 's', 'e',
}

// Canonical fingerprint form. Pattern order, allocation order, and
// field declaration order are semantic (they drive resolver output),
// so they are preserved. Component types and names within a value are
// sets, so they are sorted.
type canonicalDatabase struct {
	Project  string             `cbor:"project"`
	Patterns []canonicalPattern `cbor:"patterns"`
	Fields   []canonicalField   `cbor:"fields"`
}

type canonicalPattern struct {
	ImageIDs    []int                 `cbor:"image_ids"`
	Allocations []canonicalAllocation `cbor:"allocations"`
}

type canonicalAllocation struct {
	Field string `cbor:"field"`
	Bits  int    `cbor:"bits"`
}

type canonicalField struct {
	Name   string           `cbor:"name"`
	Values []canonicalValue `cbor:"values"`
}

type canonicalValue struct {
	Value      uint64               `cbor:"value"`
	Components []canonicalComponent `cbor:"components"`
}

type canonicalComponent struct {
	Type  string   `cbor:"type"`
	Names []string `cbor:"names"`
}

// Fingerprint returns the hex BLAKE3 keyed hash of the database's
// canonical CBOR form. Two databases with the same fingerprint
// resolve identically; artifacts carry the fingerprint so they stay
// traceable to the exact snapshot they were computed from.
func (db *Database) Fingerprint() string {
	canonical := canonicalDatabase{Project: db.project}

	for _, p := range db.patterns {
		cp := canonicalPattern{ImageIDs: p.imageIDs}
		for _, allocation := range p.allocations {
			cp.Allocations = append(cp.Allocations, canonicalAllocation{
				Field: allocation.FieldName,
				Bits:  allocation.BitCount,
			})
		}
		canonical.Patterns = append(canonical.Patterns, cp)
	}

	for _, field := range db.fields {
		cf := canonicalField{Name: field.Name}
		values := make([]uint64, 0, len(field.Values))
		for value := range field.Values {
			values = append(values, value)
		}
		slices.Sort(values)
		for _, value := range values {
			cv := canonicalValue{Value: value}
			assignment := field.Values[value]
			types := make([]string, 0, len(assignment))
			for componentType := range assignment {
				types = append(types, componentType)
			}
			slices.Sort(types)
			for _, componentType := range types {
				names := slices.Clone(assignment[componentType])
				slices.Sort(names)
				cv.Components = append(cv.Components, canonicalComponent{
					Type:  componentType,
					Names: names,
				})
			}
			cf.Values = append(cf.Values, cv)
		}
		canonical.Fields = append(canonical.Fields, cf)
	}

	data, err := codec.Marshal(canonical)
	if err != nil {
		// The canonical form is a closed set of marshal-safe types;
		// an error here is a bug, not an input condition.
		panic("hwiddb: encoding canonical database form failed: " + err.Error())
	}

	hasher, err := blake3.NewKeyed(databaseDomainKey[:])
	if err != nil {
		panic("hwiddb: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
