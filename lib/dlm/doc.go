// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package dlm models the component-properties database consumed by
// feature resolution: qualified component entries keyed by component
// ID, each carrying the typed capability properties (currently CPU
// feature versions) that feature specs check against.
//
// Snapshots load from YAML files or from a read-only SQLite export.
// A loaded Database is a plain map and is treated as immutable by
// everything downstream.
package dlm
