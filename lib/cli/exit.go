// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a specific non-zero exit code without an extra
// error message. When a command returns an ExitError, main exits with
// the code and prints nothing; the command is expected to have
// already written its own output.
//
// hwidkit resolve uses code 3 for an unsupported database: a
// definitive cannot-answer that callers must be able to tell apart
// from ordinary failures.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. Main checks returned errors for
// this method to distinguish a handled non-zero exit from an
// unexpected error to display.
func (e *ExitError) ExitCode() int {
	return e.Code
}
