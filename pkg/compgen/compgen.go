// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compgen renders extracted command models as shell completion
// scripts (fish, zsh, bash, elvish, nushell), JSON, or a human-readable
// native listing.
package compgen

import (
	"sort"
	"strings"

	"github.com/helptab/helptab/pkg/helptext"
)

// Formats lists the supported output format names.
var Formats = []string{"native", "fish", "zsh", "bash", "elvish", "nushell", "json"}

// skipName reports whether a name is a bare dash marker that no completion
// script should offer.
func skipName(n helptext.OptionName) bool {
	return n.Kind == helptext.SingleDashAlone || n.Kind == helptext.DoubleDashAlone
}

// truncateAfterPeriod cuts a description at its first period so completion
// entries stay one sentence long.
func truncateAfterPeriod(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// fileArgWords mark an option argument as a file-system path, which lets
// fish keep offering file completion after the option.
var fileArgWords = []string{"file", "dir", "path", "archive"}

func mentionsFileArg(s string) bool {
	s = strings.ToLower(s)
	for _, w := range fileArgWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// completableNames returns the sorted, deduplicated raw names of every
// completable option in cmd.
func completableNames(cmd helptext.Command) []string {
	set := make(map[string]struct{})
	for _, opt := range cmd.Options {
		for _, name := range opt.Names {
			if !skipName(name) {
				set[name.Raw] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
