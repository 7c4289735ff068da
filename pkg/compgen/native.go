// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/helptab/helptab/pkg/helptext"
)

var (
	nativeLabel = color.New(color.FgCyan, color.Bold)
	nativeName  = color.New(color.FgGreen)
	nativeSub   = color.New(color.FgYellow)
)

// Native renders a human-readable listing of the extracted model. Color is
// applied through fatih/color, which degrades to plain text when stdout is
// not a terminal.
func Native(cmd helptext.Command) string {
	var sections []string

	sections = append(sections, nativeLabel.Sprint("Name:  ")+cmd.Name)
	sections = append(sections, nativeLabel.Sprint("Desc:  ")+cmd.Description)
	sections = append(sections, nativeLabel.Sprint("Usage:")+"\n"+cmd.Usage)

	for _, opt := range cmd.Options {
		names := make([]string, 0, len(opt.Names))
		for _, name := range opt.Names {
			names = append(names, name.Raw)
		}
		line := fmt.Sprintf("  %s (%s)", nativeName.Sprint(strings.Join(names, ", ")), opt.Argument)
		if desc := truncateAfterPeriod(opt.Description); desc != "" {
			line += "\n    " + desc
		}
		sections = append(sections, line)
	}

	for _, sub := range cmd.Subcommands {
		sections = append(sections, nativeLabel.Sprint("Subcommand: ")+nativeSub.Sprint(sub.Name))
	}

	return strings.Join(sections, "\n\n")
}
