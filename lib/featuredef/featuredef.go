// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package featuredef provides parsing and validation for feature
// definition files: the authored description of which hardware specs
// a board must meet to run a versioned feature.
//
// Definitions are authored on disk as JSONC files (JSON extended with
// comments and trailing commas). The typical flow:
//
//  1. ReadFile or Parse: JSONC bytes → Definition
//  2. Validate: structural checks (name, known domains, versions)
//  3. ResolverSpecs: Definition → []feature.Spec for the resolver
package featuredef

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Definition is one authored feature definition.
type Definition struct {
	// Name identifies the feature, e.g. "feature_management_v1".
	Name string `json:"name"`

	// Description is free-form documentation for humans.
	Description string `json:"description,omitempty"`

	// Specs lists the hardware requirements. A board must meet every
	// spec simultaneously for the feature to be enabled.
	Specs []SpecEntry `json:"specs"`
}

// SpecEntry is one hardware requirement line of a definition.
type SpecEntry struct {
	// Domain names the hardware domain, e.g. "cpu".
	Domain string `json:"domain"`

	// Version is the feature-scheme version the domain's component
	// must support. Versions are 1-based.
	Version int `json:"version"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result into a Definition.
func Parse(data []byte) (*Definition, error) {
	stripped := jsonc.ToJSON(data)

	var definition Definition
	if err := json.Unmarshal(stripped, &definition); err != nil {
		return nil, fmt.Errorf("parsing feature definition: %w", err)
	}

	return &definition, nil
}

// ReadFile reads a JSONC feature definition from disk and parses it.
func ReadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	definition, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return definition, nil
}
