// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helptext

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPreprocess(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  []Pair
	}{
		{
			name:  "same_line_description",
			input: "  -v, --verbose  Enable verbose mode",
			want:  []Pair{{Option: "-v, --verbose", Description: "Enable verbose mode"}},
		},
		{
			name:  "placeholder_stays_in_option_fragment",
			input: "  -f, --file FILE  Input file path",
			want:  []Pair{{Option: "-f, --file FILE", Description: "Input file path"}},
		},
		{
			name:  "description_on_next_line",
			input: "  -o, --output\n      Output path",
			want:  []Pair{{Option: "-o, --output", Description: "Output path"}},
		},
		{
			name:  "next_line_option_is_not_a_description",
			input: "  -a\n  -b  all b",
			want: []Pair{
				{Option: "-a", Description: ""},
				{Option: "-b", Description: "all b"},
			},
		},
		{
			name:  "non_option_lines_skipped",
			input: "Usage: tool [OPTIONS]\n\nOptions:\n  -q  quiet",
			want:  []Pair{{Option: "-q", Description: "quiet"}},
		},
		{
			name:  "empty_input",
			input: "",
			want:  nil,
		},
		{
			name:  "trailing_option_without_description",
			input: "  -x",
			want:  []Pair{{Option: "-x", Description: ""}},
		},
		{
			name:  "inline_equals_argument",
			input: "  --color=WHEN  colorize the output",
			want:  []Pair{{Option: "--color=WHEN", Description: "colorize the output"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Preprocess(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Preprocess mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegmentOption(t *testing.T) {
	t.Parallel()

	opt, ok := segmentOption("-v, --verbose", "Enable verbose mode")
	if !ok {
		t.Fatal("segmentOption rejected a valid fragment")
	}
	want := Option{
		Names: []OptionName{
			{Raw: "--verbose", Kind: Long},
			{Raw: "-v", Kind: Short},
		},
		Argument:    "",
		Description: "Enable verbose mode",
	}
	if diff := cmp.Diff(want, opt); diff != "" {
		t.Errorf("option mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentOptionArgument(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		optPart string
		wantArg string
	}{
		{"placeholder_after_long", "-f, --file FILE", "FILE"},
		{"no_argument", "-v, --verbose", ""},
		{"bare_period_ignored", "--end .", ""},
		{"first_nonempty_cluster_wins", "-n N, --number COUNT", "N"},
		{"multi_word_argument", "--when <auto always never>", "<auto always never>"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opt, ok := segmentOption(tc.optPart, "desc")
			if !ok {
				t.Fatalf("segmentOption(%q) rejected", tc.optPart)
			}
			if opt.Argument != tc.wantArg {
				t.Errorf("argument = %q, want %q", opt.Argument, tc.wantArg)
			}
		})
	}
}

func TestSegmentOptionNoNames(t *testing.T) {
	t.Parallel()

	if _, ok := segmentOption("FILE...", "positional"); ok {
		t.Error("expected fragment without dash tokens to produce no option")
	}
}

func TestSegmentOptionDeduplicatesRawNames(t *testing.T) {
	t.Parallel()

	opt, ok := segmentOption("-v, -v, --verbose", "chatty")
	if !ok {
		t.Fatal("segmentOption rejected")
	}
	if len(opt.Names) != 2 {
		t.Fatalf("got %d names, want 2: %+v", len(opt.Names), opt.Names)
	}
}

func TestParseOptionsDeduplicatesRepeats(t *testing.T) {
	t.Parallel()

	opts := ParseOptions("-v, --verbose  verbose\n-v, --verbose  verbose")
	if len(opts) != 1 {
		t.Fatalf("got %d options, want 1", len(opts))
	}
	if len(opts[0].Names) != 2 {
		t.Errorf("got %d names, want 2", len(opts[0].Names))
	}
}

func TestParseOptionsDeterministic(t *testing.T) {
	t.Parallel()

	input := "  -i, --input FILE       Input FASTA/FASTQ file\n" +
		"  -o, --output FILE      Output BAM file\n" +
		"  --min-mapq INT         Minimum mapping quality (default: 30)"

	first := ParseOptions(input)
	second := ParseOptions(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two parses of the same text differ (-first +second):\n%s", diff)
	}

	if len(first) != 3 {
		t.Fatalf("got %d options, want 3", len(first))
	}
	var raws []string
	for _, opt := range first {
		for _, n := range opt.Names {
			raws = append(raws, n.Raw)
		}
	}
	for _, want := range []string{"-i", "--input", "-o", "--output", "--min-mapq"} {
		found := false
		for _, raw := range raws {
			if raw == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing option name %q in %v", want, raws)
		}
	}
}

func TestParseOptionsKeepsDistinctDescriptions(t *testing.T) {
	t.Parallel()

	opts := ParseOptions("-v  verbose\n-v  noisy")
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2 (descriptions differ)", len(opts))
	}
}

func TestParseUsage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inline_usage",
			input: "Usage: tool [OPTIONS] FILE\n\nOptions:\n  -v  verbose",
			want:  "tool [OPTIONS] FILE",
		},
		{
			name:  "block_usage",
			input: "USAGE:\n  tool run [FLAGS]\n  tool build [FLAGS]\n\nmore text",
			want:  "tool run [FLAGS]\ntool build [FLAGS]",
		},
		{
			name:  "synopsis_header",
			input: "SYNOPSIS\n  tool [-abc] file...\n",
			want:  "tool [-abc] file...",
		},
		{
			name:  "no_usage",
			input: "Options:\n  -v  verbose",
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseUsage(tc.input); got != tc.want {
				t.Errorf("ParseUsage = %q, want %q", got, tc.want)
			}
		})
	}
}
