// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"errors"
	"fmt"
)

// UnsupportedDatabaseError reports that a database's schema cannot be
// analyzed by a spec: the field concepts the spec depends on do not
// exist in this database revision. It is a definitive cannot-answer.
// Resolution never retries it and never returns partial results
// alongside it; the caller decides whether to skip the project or
// fail the build.
//
// Contrast with the conditions that are deliberately NOT errors: a
// component name that does not follow the AVL convention, a DLM
// lookup miss, and a compatible value too wide for a pattern's field
// allocation are all ordinary negative resolution outcomes.
type UnsupportedDatabaseError struct {
	Spec   string
	Reason string
}

func (e *UnsupportedDatabaseError) Error() string {
	return fmt.Sprintf("HWID database not supported by spec %s: %s", e.Spec, e.Reason)
}

// IsUnsupportedDatabase reports whether err is, or wraps, an
// UnsupportedDatabaseError.
func IsUnsupportedDatabase(err error) bool {
	var unsupported *UnsupportedDatabaseError
	return errors.As(err, &unsupported)
}
