// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"fmt"
	"strings"

	"github.com/helptab/helptab/pkg/helptext"
)

// Zsh renders a zsh completion function for cmd's top-level options.
func Zsh(cmd helptext.Command) string {
	var b strings.Builder

	fmt.Fprintf(&b, "#compdef %s\n", cmd.Name)
	b.WriteString("\n")
	fmt.Fprintf(&b, "_%s() {\n", cmd.Name)
	b.WriteString("  local -a options\n")
	b.WriteString("\n")

	for _, opt := range cmd.Options {
		desc := truncateAfterPeriod(opt.Description)
		for _, name := range opt.Names {
			if skipName(name) {
				continue
			}
			if opt.Argument == "" {
				fmt.Fprintf(&b, "  options+=('%s[%s]')\n", name.Raw, desc)
			} else {
				fmt.Fprintf(&b, "  options+=('%s[%s %s]')\n", name.Raw, opt.Argument, desc)
			}
		}
	}

	b.WriteString("  _arguments -s -S $options\n")
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "_%s \"$@\"", cmd.Name)
	return b.String()
}
