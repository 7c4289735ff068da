// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"fmt"
	"strings"

	"github.com/helptab/helptab/pkg/helptext"
)

// Nushell renders a nushell completions module for cmd.
func Nushell(cmd helptext.Command) string {
	var b strings.Builder

	b.WriteString("module completions {\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "  # Completions for %s options\n", cmd.Name)
	fmt.Fprintf(&b, "  def \"nu-complete %s options\" [] {\n", cmd.Name)

	if names := completableNames(cmd); len(names) == 0 {
		b.WriteString("    []\n")
	} else {
		b.WriteString("    [ ")
		for i, name := range names {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%q", name)
		}
		b.WriteString(" ]\n")
	}
	b.WriteString("  }\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "  export extern %s [\n", cmd.Name)
	for _, opt := range cmd.Options {
		desc := truncateAfterPeriod(opt.Description)
		for _, name := range opt.Names {
			if skipName(name) {
				continue
			}
			if opt.Argument == "" {
				fmt.Fprintf(&b, "    %s # %s\n", name.Raw, desc)
			} else {
				fmt.Fprintf(&b, "    %s: string  # %s # %s\n", name.Raw, opt.Argument, desc)
			}
		}
	}
	b.WriteString("  ]\n")
	b.WriteString("\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	b.WriteString("export use completions *")
	return b.String()
}
