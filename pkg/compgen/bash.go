// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/helptab/helptab/pkg/helptext"
)

// Bash renders a bash completion function. With compat set, each word is
// emitted as "name:description" for the bash-completion package, whose
// __ltrim_colon_completions helper strips the annotation back off.
func Bash(cmd helptext.Command, compat bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "_%s()\n", cmd.Name)
	b.WriteString("{\n")
	b.WriteString("  local cur prev opts\n")
	b.WriteString("  COMPREPLY=()\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "  opts=\"%s\"\n", strings.Join(bashWords(cmd, compat), " "))
	b.WriteString("\n")
	b.WriteString("  COMPREPLY=($(compgen -W \"${opts}\" -- ${cur}))\n")

	if compat {
		b.WriteString("  if type __ltrim_colon_completions &>/dev/null; then\n")
		b.WriteString("    __ltrim_colon_completions \"$cur\"\n")
		b.WriteString("  fi\n")
	}

	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "complete -o bashdefault -o default -o nospace -F _%s %s",
		cmd.Name, cmd.Name)
	return b.String()
}

// bashWords returns the sorted, deduplicated completion words.
func bashWords(cmd helptext.Command, compat bool) []string {
	if !compat {
		return completableNames(cmd)
	}

	set := make(map[string]struct{})
	for _, opt := range cmd.Options {
		// Colons would split the word, so the annotation flattens the
		// description to underscore-joined words.
		desc := strings.Join(strings.Fields(truncateAfterPeriod(opt.Description)), "_")
		desc = strings.ReplaceAll(desc, ":", "_")

		for _, name := range opt.Names {
			if skipName(name) {
				continue
			}
			if desc == "" {
				set[name.Raw] = struct{}{}
			} else {
				set[name.Raw+":"+desc] = struct{}{}
			}
		}
	}

	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
