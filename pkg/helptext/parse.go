// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package helptext

import (
	"strings"
	"unicode"
)

// Pair is one preprocessed (option fragment, description fragment) pair in
// source order.
type Pair struct {
	Option      string
	Description string
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func trimLeading(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// placeholderToken reports whether a non-dash token reads as an argument
// placeholder ("FILE", "<PATH>", "N", "key=value") rather than prose. Tokens
// with any lowercase letter are treated as the start of the description.
func placeholderToken(tok string) bool {
	if strings.ContainsRune(tok, '=') {
		return true
	}
	for _, r := range tok {
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// Preprocess walks text line by line and emits (option fragment, description
// fragment) pairs for every line that looks like an option definition. Lines
// not starting with a dash are skipped. When a line holds only the option
// cluster, the next line is consumed as the description if it does not start
// with a dash itself. Output order matches first occurrence in the text.
func Preprocess(text string) []Pair {
	lines := splitLines(text)
	var pairs []Pair

	for i := 0; i < len(lines); {
		trimmed := trimLeading(lines[i])
		if trimmed == "" || trimmed[0] != '-' {
			i++
			continue
		}

		fields := strings.Fields(trimmed)
		optEnd := 0
	scan:
		for idx, tok := range fields {
			switch {
			case idx == 0 || strings.HasPrefix(tok, "-"):
				optEnd = idx + 1
			case placeholderToken(tok):
				optEnd = idx + 1
			default:
				break scan
			}
		}

		switch {
		case optEnd > 0 && optEnd < len(fields):
			// Option cluster and description share the line.
			pairs = append(pairs, Pair{
				Option:      strings.Join(fields[:optEnd], " "),
				Description: strings.Join(fields[optEnd:], " "),
			})
			i++
		case optEnd > 0:
			// No description on this line; look one line ahead.
			desc := ""
			if i+1 < len(lines) {
				next := trimLeading(lines[i+1])
				if next != "" && next[0] != '-' {
					desc = strings.TrimSpace(lines[i+1])
				}
			}
			pairs = append(pairs, Pair{Option: trimmed, Description: desc})
			if desc != "" {
				i += 2
			} else {
				i++
			}
		default:
			i++
		}
	}

	return pairs
}

// clusterSeparator splits an option fragment into alias clusters.
func clusterSeparator(r rune) bool {
	return r == ',' || r == '/' || r == '|'
}

// segmentOption turns one preprocessed pair into an option. ok is false when
// the fragment yields no classifiable names.
func segmentOption(optPart, descPart string) (Option, bool) {
	opt := Option{Description: descPart}

	clusters := strings.FieldsFunc(optPart, clusterSeparator)
	for _, cluster := range clusters {
		for _, word := range strings.Fields(cluster) {
			if !strings.HasPrefix(word, "-") {
				continue
			}
			if name, ok := NewOptionName(word); ok {
				opt.insertName(name)
			}
		}
	}
	if len(opt.Names) == 0 {
		return Option{}, false
	}

	// The first cluster remainder that is non-empty and not a bare period
	// becomes the argument placeholder.
	for _, cluster := range clusters {
		words := strings.Fields(cluster)
		if len(words) < 2 {
			continue
		}
		arg := strings.Join(words[1:], " ")
		if arg != "" && arg != "." {
			opt.Argument = arg
			break
		}
	}

	return opt, true
}

// ParseOptions extracts every option documented in text, preserving first
// occurrence order and dropping verbatim repeats (same names, argument and
// description). Calling it twice on the same text yields the same result.
func ParseOptions(text string) []Option {
	pairs := Preprocess(text)
	seen := make(map[string]struct{}, len(pairs))
	var opts []Option

	for _, pair := range pairs {
		opt, ok := segmentOption(pair.Option, pair.Description)
		if !ok {
			continue
		}
		key := opt.exactKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		opts = append(opts, opt)
	}
	return opts
}

var usageHeaders = []string{"usage", "synopsis"}

// ParseUsage returns the usage/synopsis text of a help body, or "" when no
// usage header is found. A header with trailing text on the same line yields
// that text; a bare header yields the following lines up to the next blank
// line, joined as written.
func ParseUsage(text string) string {
	lines := splitLines(text)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		for _, kw := range usageHeaders {
			if !strings.HasPrefix(lower, kw) {
				continue
			}
			rest := trimmed[len(kw):]
			rest = strings.TrimPrefix(rest, ":")
			if body := strings.TrimSpace(rest); body != "" {
				return body
			}
			var block []string
			for j := i + 1; j < len(lines); j++ {
				if strings.TrimSpace(lines[j]) == "" {
					break
				}
				block = append(block, strings.TrimSpace(lines[j]))
			}
			if len(block) == 0 {
				return ""
			}
			return strings.Join(block, "\n")
		}
	}
	return ""
}
