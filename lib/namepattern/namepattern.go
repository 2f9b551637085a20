// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package namepattern

import (
	"regexp"
	"strconv"

	"github.com/hwidkit/hwidkit/lib/dlm"
)

// Adapter hands out the name pattern for each component type,
// compiling patterns lazily and caching them per type. Not safe for
// concurrent use; resolution is single-threaded and each oracle owns
// its own adapter.
type Adapter struct {
	patterns map[string]*Pattern
}

// NewAdapter creates an empty Adapter.
func NewAdapter() *Adapter {
	return &Adapter{patterns: make(map[string]*Pattern)}
}

// NamePattern returns the pattern for a component type.
func (a *Adapter) NamePattern(componentType string) *Pattern {
	if pattern, ok := a.patterns[componentType]; ok {
		return pattern
	}
	pattern := &Pattern{
		regexp: regexp.MustCompile(
			`^` + regexp.QuoteMeta(componentType) + `_(\d+)(?:_(\d+))?(?:#.*)?$`),
	}
	a.patterns[componentType] = pattern
	return pattern
}

// Pattern matches component names of one component type.
type Pattern struct {
	regexp *regexp.Regexp
}

// Match extracts the DLM component ID from an AVL-convention name.
// The boolean is false when the name does not follow the convention,
// including digit runs that do not form a valid ID (zero, or too
// large for an int).
func (p *Pattern) Match(componentName string) (dlm.ComponentID, bool) {
	groups := p.regexp.FindStringSubmatch(componentName)
	if groups == nil {
		return dlm.ComponentID{}, false
	}
	cid, err := strconv.Atoi(groups[1])
	if err != nil {
		return dlm.ComponentID{}, false
	}
	if groups[2] == "" {
		id, err := dlm.NewComponentID(cid)
		if err != nil {
			return dlm.ComponentID{}, false
		}
		return id, true
	}
	qid, err := strconv.Atoi(groups[2])
	if err != nil {
		return dlm.ComponentID{}, false
	}
	id, err := dlm.NewQualifiedComponentID(cid, qid)
	if err != nil {
		return dlm.ComponentID{}, false
	}
	return id, true
}
