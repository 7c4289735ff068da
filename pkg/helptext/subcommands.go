// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helptext

import (
	"sort"
	"strings"
)

// validSubcommandName reports whether name may denote a subcommand: ASCII
// letters, digits, '-' and '_' only, not starting with a dash.
func validSubcommandName(name string) bool {
	if name == "" || name[0] == '-' {
		return false
	}
	for i := 0; i < len(name); i++ {
		b := name[i]
		switch {
		case b >= 'a' && b <= 'z':
		case b >= 'A' && b <= 'Z':
		case b >= '0' && b <= '9':
		case b == '-' || b == '_':
		default:
			return false
		}
	}
	return true
}

// subcommandFromPair inspects two adjacent lines: a name-like first token on
// the first line with a non-option second line is taken as a (name,
// description) candidate.
func subcommandFromPair(first, second string) (Subcommand, bool) {
	trimmed := strings.TrimSpace(first)
	if trimmed == "" || trimmed[0] == '-' {
		return Subcommand{}, false
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 || !validSubcommandName(fields[0]) {
		return Subcommand{}, false
	}

	desc := strings.TrimSpace(second)
	if desc == "" || desc[0] == '-' {
		return Subcommand{}, false
	}
	if nl := strings.IndexByte(desc, '\n'); nl >= 0 {
		desc = desc[:nl]
	}

	return Subcommand{Name: fields[0], Description: desc}, true
}

// subcommandFromLine inspects a single line: a name-like first token followed
// by at least two more tokens is taken as a candidate with the remaining
// tokens as its description.
func subcommandFromLine(line string) (Subcommand, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '-' {
		return Subcommand{}, false
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 3 || !validSubcommandName(fields[0]) {
		return Subcommand{}, false
	}

	return Subcommand{
		Name:        fields[0],
		Description: strings.Join(fields[1:], " "),
	}, true
}

// DetectSubcommands scans text for likely subcommand (name, description)
// pairs using two independent heuristics (adjacent line pairs and dense
// single lines) and returns the union, deduplicated and ordered by
// (name, description).
func DetectSubcommands(text string) []Subcommand {
	lines := splitLines(text)
	set := make(map[Subcommand]struct{})

	for i := 0; i+1 < len(lines); i++ {
		if sub, ok := subcommandFromPair(lines[i], lines[i+1]); ok {
			set[sub] = struct{}{}
		}
	}
	for _, line := range lines {
		if sub, ok := subcommandFromLine(line); ok {
			set[sub] = struct{}{}
		}
	}

	subs := make([]Subcommand, 0, len(set))
	for sub := range set {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if subs[i].Name != subs[j].Name {
			return subs[i].Name < subs[j].Name
		}
		return subs[i].Description < subs[j].Description
	})
	return subs
}
