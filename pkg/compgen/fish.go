// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"fmt"
	"strings"

	"github.com/helptab/helptab/pkg/helptext"
)

// Fish renders a fish completion script. Subcommand trees are flattened
// into underscore-joined command paths, fish's convention for nested
// completions.
func Fish(cmd helptext.Command) string {
	var b strings.Builder
	fishRec(&b, nil, cmd)
	return strings.TrimSuffix(b.String(), "\n")
}

func fishRec(b *strings.Builder, path []string, cmd helptext.Command) {
	path = append(path, cmd.Name)
	pathStr := strings.Join(path, "_")

	for _, opt := range cmd.Options {
		for _, name := range opt.Names {
			if !skipName(name) {
				fishOptionLine(b, pathStr, name, opt)
			}
		}
	}
	for _, sub := range cmd.Subcommands {
		fishRec(b, path, sub)
	}
}

func fishOptionLine(b *strings.Builder, pathStr string, name helptext.OptionName, opt helptext.Option) {
	dashless := strings.TrimLeft(name.Raw, "-")
	desc := strings.ReplaceAll(truncateAfterPeriod(opt.Description), "'", `\'`)
	fmt.Fprintf(b, "complete -c %s %s '%s' %s -d '%s'\n",
		pathStr, fishKindFlag(name.Kind), dashless, fishArgFlag(opt), desc)
}

func fishKindFlag(kind helptext.NameKind) string {
	switch kind {
	case helptext.Long:
		return "-l"
	case helptext.Short:
		return "-s"
	case helptext.Old:
		return "-o"
	}
	return ""
}

// fishArgFlag picks between -r (argument required, keep file completion,
// used for path-like arguments) and -x (argument required, no files).
func fishArgFlag(opt helptext.Option) string {
	if opt.Argument == "" {
		return ""
	}
	if mentionsFileArg(opt.Argument) || mentionsFileArg(opt.Description) {
		return "-r"
	}
	return "-x"
}
