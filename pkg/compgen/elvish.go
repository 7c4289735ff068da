// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"fmt"
	"strings"

	"github.com/helptab/helptab/pkg/helptext"
)

// Elvish renders an elvish arg-completer for cmd's top-level options.
func Elvish(cmd helptext.Command) string {
	var b strings.Builder

	b.WriteString("use builtin;\n")
	b.WriteString("use str;\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "set edit:completion:arg-completer[%s] = {|@words|\n", cmd.Name)
	b.WriteString("    fn spaces {|n|\n")
	b.WriteString("        builtin:repeat $n ' ' | str:join ''\n")
	b.WriteString("    }\n")
	b.WriteString("    fn cand {|text desc|\n")
	b.WriteString("        edit:complex-candidate $text &display=$text' '(spaces (- 14 (wcswidth $text)))$desc\n")
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    var command = '%s'\n", cmd.Name)
	b.WriteString("    for word $words[1..-1] {\n")
	b.WriteString("        if (str:has-prefix $word '-') {\n")
	b.WriteString("            break\n")
	b.WriteString("        }\n")
	b.WriteString("        set command = $command';'$word\n")
	b.WriteString("    }\n")
	b.WriteString("    var completions = [\n")
	fmt.Fprintf(&b, "        &'%s'= {\n", cmd.Name)

	for _, opt := range cmd.Options {
		desc := strings.ReplaceAll(truncateAfterPeriod(opt.Description), "'", "")
		for _, name := range opt.Names {
			if skipName(name) {
				continue
			}
			fmt.Fprintf(&b, "            cand %s '%s'\n", name.Raw, desc)
		}
	}

	b.WriteString("        }\n")
	b.WriteString("    ]\n")
	b.WriteString("    $completions[$command]\n")
	b.WriteString("}")
	return b.String()
}
