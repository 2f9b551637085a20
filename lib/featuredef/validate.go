// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package featuredef

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hwidkit/hwidkit/lib/feature"
)

// specBuilders maps known spec domains to their constructors. Adding
// a feature domain means adding a builder here and the typed property
// it reads in lib/dlm.
var specBuilders = map[string]func(version int) feature.Spec{
	"cpu": func(version int) feature.Spec {
		return feature.CPUSpec{TargetVersion: version}
	},
}

func knownDomains() []string {
	domains := make([]string, 0, len(specBuilders))
	for domain := range specBuilders {
		domains = append(domains, domain)
	}
	slices.Sort(domains)
	return domains
}

// Validate checks a Definition for structural issues. Returns a list
// of human-readable issue descriptions. An empty list means the
// definition is valid.
//
// Structural checks include:
//   - Name must be non-empty
//   - At least one spec is required
//   - Each spec's domain must be known
//   - Each spec's version must be at least 1
//   - No two specs may repeat the same domain and version
func Validate(definition *Definition) []string {
	var issues []string

	if definition.Name == "" {
		issues = append(issues, "name is required")
	}
	if len(definition.Specs) == 0 {
		issues = append(issues, "definition has no specs (at least one spec is required)")
	}

	seen := make(map[SpecEntry]int, len(definition.Specs))
	for index, entry := range definition.Specs {
		prefix := fmt.Sprintf("specs[%d]", index)

		if _, known := specBuilders[entry.Domain]; !known {
			issues = append(issues, fmt.Sprintf(
				"%s: unknown domain %q (known: %s)",
				prefix, entry.Domain, strings.Join(knownDomains(), ", "),
			))
		}
		if entry.Version < 1 {
			issues = append(issues, fmt.Sprintf(
				"%s (%s): version must be at least 1, got %d",
				prefix, entry.Domain, entry.Version,
			))
		}
		if firstIndex, exists := seen[entry]; exists {
			issues = append(issues, fmt.Sprintf(
				"%s: duplicate of specs[%d] (same domain and version)",
				prefix, firstIndex,
			))
		} else {
			seen[entry] = index
		}
	}

	return issues
}

// ResolverSpecs materializes the resolver specs the definition
// declares, in declaration order. The definition must validate
// cleanly.
func (d *Definition) ResolverSpecs() ([]feature.Spec, error) {
	if issues := Validate(d); len(issues) > 0 {
		return nil, fmt.Errorf("invalid feature definition %q: %s", d.Name, strings.Join(issues, "; "))
	}

	specs := make([]feature.Spec, len(d.Specs))
	for i, entry := range d.Specs {
		specs[i] = specBuilders[entry.Domain](entry.Version)
	}
	return specs, nil
}
