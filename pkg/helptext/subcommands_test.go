// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helptext

import (
	"sort"
	"testing"
)

func containsSubcommand(subs []Subcommand, want Subcommand) bool {
	for _, s := range subs {
		if s == want {
			return true
		}
	}
	return false
}

func TestDetectSubcommands(t *testing.T) {
	t.Parallel()

	subs := DetectSubcommands("run       Run a command\nbuild     Build a project")

	for _, want := range []Subcommand{
		{Name: "run", Description: "Run a command"},
		{Name: "build", Description: "Build a project"},
	} {
		if !containsSubcommand(subs, want) {
			t.Errorf("missing candidate %+v in %+v", want, subs)
		}
	}
}

func TestDetectSubcommandsSkipsOptionLines(t *testing.T) {
	t.Parallel()

	subs := DetectSubcommands("  -v   Be verbose\n  --help   Show help")
	if len(subs) != 0 {
		t.Errorf("expected no candidates from option lines, got %+v", subs)
	}
}

func TestDetectSubcommandsOrderedAndDeduplicated(t *testing.T) {
	t.Parallel()

	text := "zeta   Last command here\nalpha  First command here\nzeta   Last command here"
	subs := DetectSubcommands(text)

	if !sort.SliceIsSorted(subs, func(i, j int) bool {
		if subs[i].Name != subs[j].Name {
			return subs[i].Name < subs[j].Name
		}
		return subs[i].Description < subs[j].Description
	}) {
		t.Errorf("candidates not in (name, description) order: %+v", subs)
	}

	seen := make(map[Subcommand]int)
	for _, s := range subs {
		seen[s]++
		if seen[s] > 1 {
			t.Errorf("duplicate candidate %+v", s)
		}
	}
}

func TestValidSubcommandName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want bool
	}{
		{"run", true},
		{"sub-cmd", true},
		{"snake_case", true},
		{"v2", true},
		{"-v", false},
		{"", false},
		{"run:", false},
		{"héllo", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validSubcommandName(tc.name); got != tc.want {
				t.Errorf("validSubcommandName(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
}

func TestDetectSubcommandsSingleLineNeedsThreeTokens(t *testing.T) {
	t.Parallel()

	// Two tokens only: neither heuristic may fire on a lone line.
	subs := DetectSubcommands("status ok")
	if len(subs) != 0 {
		t.Errorf("expected no candidates, got %+v", subs)
	}
}
