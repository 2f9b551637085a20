// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package dlm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YAML snapshot schema:
//
//	components:
//	  - cid: 100
//	    qid: 2                      # optional qualification ID
//	    cpu:                        # optional CPU property
//	      compatible_versions: [1, 2]
type yamlSnapshot struct {
	Components []yamlComponent `yaml:"components"`
}

type yamlComponent struct {
	CID int              `yaml:"cid"`
	QID *int             `yaml:"qid"`
	CPU *yamlCPUProperty `yaml:"cpu"`
}

type yamlCPUProperty struct {
	CompatibleVersions []int `yaml:"compatible_versions"`
}

// Parse parses a YAML snapshot into a Database. Component IDs must be
// unique across the snapshot.
func Parse(data []byte) (Database, error) {
	var snapshot yamlSnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing DLM snapshot: %w", err)
	}

	database := make(Database, len(snapshot.Components))
	var errs []error
	for i, component := range snapshot.Components {
		var id ComponentID
		var err error
		if component.QID != nil {
			id, err = NewQualifiedComponentID(component.CID, *component.QID)
		} else {
			id, err = NewComponentID(component.CID)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("component %d: %w", i, err))
			continue
		}
		if _, exists := database[id]; exists {
			errs = append(errs, fmt.Errorf("component %d: duplicate component ID %s", i, id))
			continue
		}

		entry := ComponentEntry{ID: id}
		if component.CPU != nil {
			property := NewCPUProperty(component.CPU.CompatibleVersions)
			entry.CPU = &property
		}
		database[id] = entry
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return database, nil
}

// Load reads a YAML snapshot from r.
func Load(r io.Reader) (Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading DLM snapshot: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a YAML snapshot from a file.
func LoadFile(path string) (Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	database, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return database, nil
}
