// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides hwidkit's standard CBOR encoding configuration.
//
// hwidkit uses two serialization formats with a clear boundary:
//
//   - JSON for authored and human-facing data: feature definition
//     files, CLI output, and the default artifact payload.
//   - CBOR for machine-facing data: compact requirement artifacts and
//     the canonical database form that fingerprints are computed over.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every hwidkit package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes — the property the database fingerprint depends on.
//
// For buffer-oriented operations (fingerprint material, small files):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (artifact files):
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// # Struct Tag Rules
//
// The struct tag on a type documents its serialization format:
//
//   - `cbor` tag: the type is only ever serialized as CBOR (the
//     canonical fingerprint form).
//   - `json` tag: the type serializes as both JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor`
//     tags are absent, so a single `json` tag controls field naming
//     and omitempty for both formats. Artifact records use this.
//
// Never use both `cbor` and `json` tags on the same field; the tag
// choice documents which contract the type participates in.
package codec
