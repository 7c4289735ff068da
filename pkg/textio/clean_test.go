// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textio

import (
	"strings"
	"testing"
)

func TestNormalizeNewlines(t *testing.T) {
	t.Parallel()

	got := NormalizeNewlines("a\r\nb\rc\nd")
	if got != "a\nb\nc\nd" {
		t.Errorf("NormalizeNewlines = %q", got)
	}
}

func TestRemoveOverstrike(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "N\bNA\bAM\bME\bE", "NAME"},
		{"underline", "_\bf_\bi_\bl_\be", "file"},
		{"plain", "no overstrike here", "no overstrike here"},
		{"leading_backspace", "\bx", "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RemoveOverstrike(tc.input); got != tc.want {
				t.Errorf("RemoveOverstrike(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTabsToSpaces(t *testing.T) {
	t.Parallel()

	got := TabsToSpaces("a\tb", 4)
	if got != "a    b" {
		t.Errorf("TabsToSpaces = %q", got)
	}
	if TabsToSpaces("plain", 4) != "plain" {
		t.Error("tab-free input should pass through unchanged")
	}
}

func TestUnicodeSpacesToASCII(t *testing.T) {
	t.Parallel()

	input := "\u00a0foo\u2002bar\u2003baz\tend"
	got := UnicodeSpacesToASCII(input)
	if got != " foo  bar   baz\tend" {
		t.Errorf("UnicodeSpacesToASCII = %q", got)
	}
}

func TestStripBullets(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"asterisk", "* Item one", "Item one"},
		{"dash", "- Item two", "Item two"},
		{"unicode_bullet", "• Item three", "Item three"},
		{"indent_kept", "  * Item", "  Item"},
		{"option_line_untouched", "  -v  verbose", "  -v  verbose"},
		{"long_option_untouched", "  --all  everything", "  --all  everything"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripBullets(tc.input); got != tc.want {
				t.Errorf("StripBullets(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	input := "USAGE:\r\n\t• tool [OPTIONS]\r\nN\bNOTES"
	got := Clean(input)
	if strings.ContainsAny(got, "\r\t\b•") {
		t.Errorf("Clean left raw artifacts: %q", got)
	}
	if !strings.Contains(got, "tool [OPTIONS]") {
		t.Errorf("Clean mangled content: %q", got)
	}
}
