// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package hwiddb

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// YAML schema:
//
//	project: SAMPLEPROJ
//	encoding_patterns:
//	  - image_ids: [0, 1]
//	    fields:
//	      - cpu_field: 2
//	      - storage_field: 0
//	      - cpu_field: 1
//	encoded_fields:
//	  cpu_field:
//	    0: {cpu: cpu_10_1}
//	    1: {cpu: [cpu_20, cpu_21]}
//
// encoded_fields is decoded through yaml.Node so that field
// declaration order survives parsing: resolution iterates fields in
// declaration order, and reordering them reorders resolver output.
type yamlDatabase struct {
	Project          string        `yaml:"project"`
	EncodingPatterns []yamlPattern `yaml:"encoding_patterns"`
	EncodedFields    yaml.Node     `yaml:"encoded_fields"`
}

type yamlPattern struct {
	ImageIDs []int            `yaml:"image_ids"`
	Fields   []map[string]int `yaml:"fields"`
}

// componentNames accepts either a single scalar name or a sequence of
// names.
type componentNames []string

func (n *componentNames) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		*n = componentNames{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		*n = componentNames(many)
		return nil
	default:
		return fmt.Errorf("line %d: component names must be a name or a list of names", node.Line)
	}
}

// Parse parses a YAML HWID database.
func Parse(data []byte) (*Database, error) {
	var doc yamlDatabase
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing HWID database: %w", err)
	}

	patterns := make([]PatternSpec, 0, len(doc.EncodingPatterns))
	for i, declared := range doc.EncodingPatterns {
		spec := PatternSpec{ImageIDs: declared.ImageIDs}
		for j, line := range declared.Fields {
			if len(line) != 1 {
				return nil, fmt.Errorf("pattern %d field %d: want exactly one \"name: bits\" pair, got %d", i, j, len(line))
			}
			for name, bits := range line {
				spec.Allocations = append(spec.Allocations, PatternAllocation{FieldName: name, BitCount: bits})
			}
		}
		patterns = append(patterns, spec)
	}

	fields, err := parseEncodedFields(&doc.EncodedFields)
	if err != nil {
		return nil, err
	}

	return New(doc.Project, patterns, fields)
}

// parseEncodedFields walks the encoded_fields mapping node, keeping
// field declaration order.
func parseEncodedFields(node *yaml.Node) ([]EncodedField, error) {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: encoded_fields must be a mapping", node.Line)
	}

	var fields []EncodedField
	for i := 0; i < len(node.Content); i += 2 {
		nameNode, tableNode := node.Content[i], node.Content[i+1]
		field := EncodedField{
			Name:   nameNode.Value,
			Values: make(map[uint64]ComponentAssignment),
		}

		if tableNode.Tag != "!!null" {
			if tableNode.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: field %q must map values to component assignments", tableNode.Line, field.Name)
			}
			for j := 0; j < len(tableNode.Content); j += 2 {
				valueNode, assignmentNode := tableNode.Content[j], tableNode.Content[j+1]
				value, err := strconv.ParseUint(valueNode.Value, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: field %q: value %q is not a non-negative integer", valueNode.Line, field.Name, valueNode.Value)
				}
				if _, exists := field.Values[value]; exists {
					return nil, fmt.Errorf("line %d: field %q: value %d listed twice", valueNode.Line, field.Name, value)
				}

				assignment := make(ComponentAssignment)
				if assignmentNode.Tag != "!!null" {
					var typed map[string]componentNames
					if err := assignmentNode.Decode(&typed); err != nil {
						return nil, fmt.Errorf("field %q value %d: %w", field.Name, value, err)
					}
					for componentType, names := range typed {
						assignment[componentType] = names
					}
				}
				field.Values[value] = assignment
			}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// Load reads a YAML database from r.
func Load(r io.Reader) (*Database, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading HWID database: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a YAML database from a file, transparently
// decompressing ".zst" snapshots.
func LoadFile(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".zst") {
		reader, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: opening zstd stream: %w", path, err)
		}
		defer reader.Close()
		if data, err = io.ReadAll(reader); err != nil {
			return nil, fmt.Errorf("%s: decompressing: %w", path, err)
		}
	}
	db, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return db, nil
}
