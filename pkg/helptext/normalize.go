// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helptext

// maxNormalizeDepth bounds recursion over caller-supplied command trees.
// Subtrees below the bound are cut rather than walked.
const maxNormalizeDepth = 64

// Normalize returns a canonical copy of the command tree: duplicate options
// (same names and argument, first occurrence wins) are removed, options with
// no usable name or an empty description are dropped, and every subcommand
// is normalized the same way. Normalize is idempotent and never fails; the
// worst case is a command with no options.
func Normalize(cmd Command) Command {
	return normalizeAt(cmd, 0)
}

func normalizeAt(cmd Command, depth int) Command {
	cmd.Options = filterInvalidOptions(dedupOptions(cmd.Options))

	if depth >= maxNormalizeDepth {
		cmd.Subcommands = nil
		return cmd
	}
	if len(cmd.Subcommands) > 0 {
		subs := make([]Command, len(cmd.Subcommands))
		for i, sub := range cmd.Subcommands {
			subs[i] = normalizeAt(sub, depth+1)
		}
		cmd.Subcommands = subs
	}
	return cmd
}

// dedupOptions removes options whose (names, argument) key was already seen,
// keeping the first occurrence. Descriptions are not part of the key.
func dedupOptions(opts []Option) []Option {
	seen := make(map[string]struct{}, len(opts))
	out := make([]Option, 0, len(opts))
	for _, opt := range opts {
		key := opt.dedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, opt)
	}
	return out
}

// filterInvalidOptions drops options with an empty name set, an empty first
// raw name, or an empty description.
func filterInvalidOptions(opts []Option) []Option {
	out := opts[:0:0]
	for _, opt := range opts {
		if len(opt.Names) == 0 || opt.Names[0].Raw == "" || opt.Description == "" {
			continue
		}
		out = append(out, opt)
	}
	return out
}
