// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the hwidkit
// binary.
//
// The central type is [Command]: a named command with optional nested
// [Command.Subcommands], a [pflag.FlagSet] factory, and a Run
// function. The tree is assembled in cmd/hwidkit and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing,
// and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// Commands that have already written their own output signal a bare
// exit status by returning an [ExitError]; main checks for the
// ExitCode method and skips the redundant "error:" line.
package cli
