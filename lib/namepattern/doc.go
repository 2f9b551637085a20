// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package namepattern maps HWID component names to DLM component IDs
// using the AVL naming convention: a component of type "cpu" with
// component ID 100 and qualification ID 2 is named "cpu_100_2", the
// qualification ID may be omitted ("cpu_100"), and either form may
// carry a trailing "#"-prefixed annotation ("cpu_100_2#lte").
//
// Names that do not follow the convention are a normal negative
// match, never an error: plenty of legitimate components predate the
// AVL scheme.
package namepattern
