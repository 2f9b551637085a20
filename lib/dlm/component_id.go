// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package dlm

import (
	"fmt"
	"strconv"
	"strings"
)

// ComponentID identifies a component-qualification entry: a component
// ID with an optional qualification ID. The string form is "123" for
// an unqualified component and "123-4" for a qualified one. The type
// is comparable and usable as a map key; the zero value is no
// component at all, not component 0.
type ComponentID struct {
	cid       int
	qid       int
	qualified bool
}

// NewComponentID creates an unqualified ComponentID. Component IDs
// are 1-based; zero and negative values are rejected.
func NewComponentID(cid int) (ComponentID, error) {
	if cid < 1 {
		return ComponentID{}, fmt.Errorf("component ID must be positive, got %d", cid)
	}
	return ComponentID{cid: cid}, nil
}

// NewQualifiedComponentID creates a ComponentID carrying a
// qualification ID. Both IDs are 1-based.
func NewQualifiedComponentID(cid, qid int) (ComponentID, error) {
	if cid < 1 {
		return ComponentID{}, fmt.Errorf("component ID must be positive, got %d", cid)
	}
	if qid < 1 {
		return ComponentID{}, fmt.Errorf("qualification ID must be positive, got %d", qid)
	}
	return ComponentID{cid: cid, qid: qid, qualified: true}, nil
}

// ParseComponentID parses the "123" or "123-4" string form.
func ParseComponentID(raw string) (ComponentID, error) {
	cidPart, qidPart, qualified := strings.Cut(raw, "-")
	cid, err := strconv.Atoi(cidPart)
	if err != nil {
		return ComponentID{}, fmt.Errorf("component ID %q: %w", raw, err)
	}
	if !qualified {
		return NewComponentID(cid)
	}
	qid, err := strconv.Atoi(qidPart)
	if err != nil {
		return ComponentID{}, fmt.Errorf("component ID %q: %w", raw, err)
	}
	return NewQualifiedComponentID(cid, qid)
}

// CID returns the component ID.
func (id ComponentID) CID() int {
	return id.cid
}

// QID returns the qualification ID and whether one is present.
func (id ComponentID) QID() (int, bool) {
	return id.qid, id.qualified
}

// String returns the "123" or "123-4" form.
func (id ComponentID) String() string {
	if id.qualified {
		return strconv.Itoa(id.cid) + "-" + strconv.Itoa(id.qid)
	}
	return strconv.Itoa(id.cid)
}

// IsZero reports whether the ComponentID is the zero value.
func (id ComponentID) IsZero() bool {
	return id == ComponentID{}
}

// MarshalText implements encoding.TextMarshaler. Returns an error for
// the zero value, since serializing it would produce ambiguous output.
func (id ComponentID) MarshalText() ([]byte, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("cannot marshal zero ComponentID")
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty input
// produces the zero value.
func (id *ComponentID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*id = ComponentID{}
		return nil
	}
	parsed, err := ParseComponentID(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal ComponentID: %w", err)
	}
	*id = parsed
	return nil
}
