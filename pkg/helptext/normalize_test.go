// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helptext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func shortOpt(raw, arg, desc string) Option {
	name, ok := NewOptionName(raw)
	if !ok {
		panic("bad test name: " + raw)
	}
	return Option{Names: []OptionName{name}, Argument: arg, Description: desc}
}

func TestNormalizeDeduplicatesAndFilters(t *testing.T) {
	t.Parallel()

	cmd := Command{
		Name: "root",
		Options: []Option{
			shortOpt("-v", "", "verbose"),
			shortOpt("-v", "", "verbose, again"), // same (names, argument) key
			shortOpt("-q", "", ""),               // empty description
			{Description: "no names"},            // empty name set
		},
		Subcommands: []Command{
			{
				Name: "child",
				Options: []Option{
					shortOpt("-f", "FILE", "input"),
					shortOpt("-f", "FILE", "input file"),
				},
			},
		},
	}

	fixed := Normalize(cmd)

	if len(fixed.Options) != 1 {
		t.Fatalf("root options = %d, want 1: %+v", len(fixed.Options), fixed.Options)
	}
	if fixed.Options[0].Description != "verbose" {
		t.Errorf("dedup kept %q, want first occurrence", fixed.Options[0].Description)
	}
	if len(fixed.Subcommands) != 1 || len(fixed.Subcommands[0].Options) != 1 {
		t.Errorf("child not normalized: %+v", fixed.Subcommands)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	cmd := Command{
		Name: "tool",
		Options: []Option{
			shortOpt("-a", "", "all"),
			shortOpt("-a", "", "all"),
			shortOpt("-b", "N", "count"),
		},
		Subcommands: []Command{
			{Name: "sub", Options: []Option{shortOpt("-x", "", "")}},
		},
	}

	once := Normalize(cmd)
	twice := Normalize(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
	}
}

func TestNormalizeDedupKeyIgnoresDescription(t *testing.T) {
	t.Parallel()

	cmd := Command{
		Name: "tool",
		Options: []Option{
			shortOpt("-n", "N", "first wording"),
			shortOpt("-n", "N", "second wording"),
			shortOpt("-n", "M", "different argument survives"),
		},
	}

	fixed := Normalize(cmd)
	if len(fixed.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(fixed.Options))
	}

	seen := make(map[string]struct{})
	for _, opt := range fixed.Options {
		key := opt.dedupKey()
		if _, dup := seen[key]; dup {
			t.Errorf("duplicate (names, argument) key after Normalize: %+v", opt)
		}
		seen[key] = struct{}{}
	}
}

func TestNormalizeValidityInvariant(t *testing.T) {
	t.Parallel()

	opts := ParseOptions("  -o, --output\n\n  -v, --verbose  Enable verbose mode")
	fixed := Normalize(Command{Name: "tool", Options: opts})

	for _, opt := range fixed.Options {
		if len(opt.Names) == 0 || opt.Names[0].Raw == "" {
			t.Errorf("option without usable name survived: %+v", opt)
		}
		if opt.Description == "" {
			t.Errorf("option with empty description survived: %+v", opt)
		}
	}
	if len(fixed.Options) != 1 {
		t.Errorf("got %d options, want 1 (the described one)", len(fixed.Options))
	}
}

func TestNormalizeBoundsTreeDepth(t *testing.T) {
	t.Parallel()

	// Build a chain deeper than the recursion bound; Normalize must return
	// without walking it all.
	leaf := Command{Name: "leaf", Options: []Option{shortOpt("-x", "", "x")}}
	cmd := leaf
	for i := 0; i < maxNormalizeDepth+10; i++ {
		cmd = Command{Name: "n", Subcommands: []Command{cmd}}
	}

	fixed := Normalize(cmd)

	depth := 0
	for node := &fixed; len(node.Subcommands) > 0; node = &node.Subcommands[0] {
		depth++
	}
	if depth > maxNormalizeDepth {
		t.Errorf("tree depth after Normalize = %d, want <= %d", depth, maxNormalizeDepth)
	}
}
