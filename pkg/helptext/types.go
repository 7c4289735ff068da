// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package helptext extracts a structured option/subcommand model from
// free-form command-line help output or man-page text. Everything in this
// package is a best-effort heuristic over plain text: unparseable lines are
// skipped, never reported as errors.
package helptext

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NameKind classifies the shape of a single option name token.
type NameKind int

const (
	// Long is a double-dash name longer than "--", e.g. "--verbose".
	Long NameKind = iota
	// Short is a single dash followed by exactly one character, e.g. "-v".
	Short
	// Old is a single-dash name longer than two characters, e.g. "-verbose".
	// POSIX-clustered short flags ("-abc") are indistinguishable from these
	// in help text, so they are kept as one opaque name.
	Old
	// DoubleDashAlone is the literal token "--".
	DoubleDashAlone
	// SingleDashAlone is the literal token "-".
	SingleDashAlone
)

var nameKindNames = map[NameKind]string{
	Long:            "LONG",
	Short:           "SHORT",
	Old:             "OLD",
	DoubleDashAlone: "DOUBLEDASHALONE",
	SingleDashAlone: "SINGLEDASHALONE",
}

func (k NameKind) String() string {
	if s, ok := nameKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NameKind(%d)", int(k))
}

// MarshalJSON encodes the kind as its uppercase wire name.
func (k NameKind) MarshalJSON() ([]byte, error) {
	s, ok := nameKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown name kind %d", int(k))
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes the uppercase wire name back into a kind.
func (k *NameKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for kind, name := range nameKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown name kind %q", s)
}

// OptionName is one textual alias of an option together with its
// classified kind.
type OptionName struct {
	Raw  string   `json:"raw"`
	Kind NameKind `json:"type"`
}

// ClassifyName classifies a raw token as an option-name kind. Tokens that do
// not start with a dash are rejected with ok == false.
func ClassifyName(token string) (NameKind, bool) {
	switch {
	case token == "-":
		return SingleDashAlone, true
	case token == "--":
		return DoubleDashAlone, true
	case strings.HasPrefix(token, "--"):
		return Long, true
	case strings.HasPrefix(token, "-") && len(token) == 2:
		return Short, true
	case strings.HasPrefix(token, "-"):
		return Old, true
	default:
		return 0, false
	}
}

// NewOptionName classifies token and returns the resulting name.
// ok is false when the token is not an option name at all.
func NewOptionName(token string) (OptionName, bool) {
	kind, ok := ClassifyName(token)
	if !ok {
		return OptionName{}, false
	}
	return OptionName{Raw: token, Kind: kind}, true
}

// Less orders names by (raw text, kind). This is the canonical order names
// are stored in within an option.
func (n OptionName) Less(other OptionName) bool {
	if n.Raw != other.Raw {
		return n.Raw < other.Raw
	}
	return n.Kind < other.Kind
}

// UnmarshalJSON accepts both the structured {"raw":..., "type":...} form and
// the legacy bare-string form. Legacy names are re-classified; a string that
// cannot be classified makes the whole document fail to load.
func (n *OptionName) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		name, ok := NewOptionName(legacy)
		if !ok {
			return fmt.Errorf("invalid option name %q", legacy)
		}
		*n = name
		return nil
	}

	var structured struct {
		Raw  string   `json:"raw"`
		Kind NameKind `json:"type"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return err
	}
	n.Raw = structured.Raw
	n.Kind = structured.Kind
	return nil
}

// Option is one flag a command accepts: its aliases in canonical order, an
// argument placeholder ("" means the flag takes no value), and a description.
type Option struct {
	Names       []OptionName `json:"names"`
	Argument    string       `json:"argument"`
	Description string       `json:"description"`
}

// insertName adds a name in canonical (raw, kind) order, dropping it when a
// name with the same raw text is already present.
func (o *Option) insertName(name OptionName) {
	pos := sort.Search(len(o.Names), func(i int) bool {
		return !o.Names[i].Less(name)
	})
	if pos < len(o.Names) && o.Names[pos].Raw == name.Raw {
		return
	}
	if pos > 0 && o.Names[pos-1].Raw == name.Raw {
		return
	}
	o.Names = append(o.Names, OptionName{})
	copy(o.Names[pos+1:], o.Names[pos:])
	o.Names[pos] = name
}

// dedupKey identifies duplicate options: name set plus argument placeholder.
// The description is deliberately excluded.
func (o *Option) dedupKey() string {
	var b strings.Builder
	for _, n := range o.Names {
		b.WriteString(n.Raw)
		b.WriteByte(0)
		fmt.Fprintf(&b, "%d", int(n.Kind))
		b.WriteByte(0)
	}
	b.WriteByte(1)
	b.WriteString(o.Argument)
	return b.String()
}

// exactKey identifies verbatim repeats: dedupKey plus the description.
func (o *Option) exactKey() string {
	return o.dedupKey() + "\x00" + o.Description
}

// Subcommand is a heuristically detected candidate (name, description) pair.
// The assembler promotes candidates into empty child Commands.
type Subcommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Command is one node of a parsed command tree.
type Command struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Usage       string    `json:"usage"`
	Options     []Option  `json:"options"`
	Subcommands []Command `json:"subcommands,omitempty"`
	Version     string    `json:"version,omitempty"`
}

// AsSubcommand reduces the command to its candidate pair.
func (c *Command) AsSubcommand() Subcommand {
	return Subcommand{Name: c.Name, Description: c.Description}
}
