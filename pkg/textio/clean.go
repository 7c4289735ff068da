// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textio acquires and cleans the raw help or man-page text fed to
// the helptext engine: it runs a program's help flag (optionally under a
// pty), reads man pages and files, and normalizes whitespace, bullets and
// man-page overstrike sequences.
package textio

import (
	"strings"
)

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// RemoveOverstrike strips nroff overstrike sequences ("N\bN" for bold,
// "_\bN" for underline) that man emits for terminals.
func RemoveOverstrike(s string) string {
	if !strings.ContainsRune(s, '\b') {
		return s
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\b' {
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// TabsToSpaces expands every tab into n spaces.
func TabsToSpaces(s string, n int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", n))
}

// UnicodeSpacesToASCII maps the Unicode space characters commonly found in
// formatted help output to plain ASCII spaces, preserving their rough width.
func UnicodeSpacesToASCII(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return r >= 0x80 }) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\u00a0', '\u202f': // no-break spaces
			b.WriteByte(' ')
		case '\u2009': // thin space
			b.WriteByte(' ')
		case '\u2002': // en space
			b.WriteString("  ")
		case '\u2003': // em space
			b.WriteString("   ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripBullets removes leading list bullets ("- ", "* ", "• ") from each
// line, keeping the indentation. A dash immediately followed by text (an
// option name) is left alone.
func StripBullets(s string) string {
	if !strings.ContainsAny(s, "*-•") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(trimmed)]

		var rest string
		switch {
		case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
			rest = trimmed[2:]
		case strings.HasPrefix(trimmed, "• "):
			rest = trimmed[len("• "):]
		default:
			continue
		}
		lines[i] = indent + strings.TrimLeft(rest, " \t")
	}
	return strings.Join(lines, "\n")
}

// Clean applies the full cleaning pipeline in the order the extraction
// engine expects: newline normalization, overstrike removal, tab expansion,
// Unicode space mapping, bullet stripping.
func Clean(s string) string {
	s = NormalizeNewlines(s)
	s = RemoveOverstrike(s)
	s = TabsToSpaces(s, 4)
	s = UnicodeSpacesToASCII(s)
	return StripBullets(s)
}
