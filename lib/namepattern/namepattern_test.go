// Copyright 2026 The hwidkit Authors
// SPDX-License-Identifier: Apache-2.0

package namepattern

import (
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		componentType string
		name          string
		want          string // expected ComponentID string form; "" means no match
	}{
		{componentType: "cpu", name: "cpu_100", want: "100"},
		{componentType: "cpu", name: "cpu_100_2", want: "100-2"},
		{componentType: "cpu", name: "cpu_100_2#experimental", want: "100-2"},
		{componentType: "cpu", name: "cpu_100#note", want: "100"},
		{componentType: "audio_codec", name: "audio_codec_77", want: "77"},
		{componentType: "audio_codec", name: "audio_codec_77_3", want: "77-3"},

		{componentType: "cpu", name: "cpu_abc", want: ""},
		{componentType: "cpu", name: "ram_100", want: ""},
		{componentType: "cpu", name: "cpu_100_2_3", want: ""},
		{componentType: "cpu", name: "cpu_100x", want: ""},
		{componentType: "cpu", name: "cpu_", want: ""},
		{componentType: "cpu", name: "cpu_#x", want: ""},
		{componentType: "cpu", name: "cpu", want: ""},
		{componentType: "cpu", name: "", want: ""},
		{componentType: "cpu", name: "xcpu_100", want: ""},

		// Digit runs that do not form a valid DLM ID.
		{componentType: "cpu", name: "cpu_0", want: ""},
		{componentType: "cpu", name: "cpu_100_0", want: ""},
		{componentType: "cpu", name: "cpu_99999999999999999999", want: ""},
	}

	adapter := NewAdapter()
	for _, test := range tests {
		t.Run(test.componentType+"/"+test.name, func(t *testing.T) {
			id, ok := adapter.NamePattern(test.componentType).Match(test.name)
			if test.want == "" {
				if ok {
					t.Fatalf("Match(%q) = %v, want no match", test.name, id)
				}
				return
			}
			if !ok {
				t.Fatalf("Match(%q) did not match, want %s", test.name, test.want)
			}
			if id.String() != test.want {
				t.Errorf("Match(%q) = %s, want %s", test.name, id, test.want)
			}
		})
	}
}

func TestMatchQuotesComponentType(t *testing.T) {
	adapter := NewAdapter()
	pattern := adapter.NamePattern("cpu+fpu")

	if _, ok := pattern.Match("cpu+fpu_5"); !ok {
		t.Error("literal match with metacharacter in type failed")
	}
	// "+" must not act as a regexp quantifier: an unquoted "cpu+fpu_"
	// would match this name.
	if _, ok := pattern.Match("cpuufpu_5"); ok {
		t.Error("metacharacter in component type was treated as a quantifier")
	}
}

func TestNamePatternCaching(t *testing.T) {
	adapter := NewAdapter()
	first := adapter.NamePattern("cpu")
	second := adapter.NamePattern("cpu")
	if first != second {
		t.Error("NamePattern compiled the same type twice")
	}
	other := adapter.NamePattern("storage")
	if first == other {
		t.Error("distinct component types share a pattern")
	}
}
