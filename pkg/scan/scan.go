// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scan assembles full command trees: it acquires help text through
// textio, extracts the model with helptext, promotes subcommand candidates
// to child commands and recurses into them up to a configured depth.
package scan

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/helptab/helptab/pkg/helptext"
	"github.com/helptab/helptab/pkg/textio"
	"golang.org/x/sync/errgroup"
)

// DefaultDepth is how many subcommand levels Scan descends into.
const DefaultDepth = 4

const defaultConcurrency = 4

// Scanner builds command trees from installed programs.
type Scanner struct {
	Runner *textio.Runner
	// Depth limits subcommand recursion: 0 disables subcommand promotion,
	// 1 keeps bare candidates, higher values fetch each candidate's help.
	Depth int
	// SkipMan forces --help output even when a man page exists.
	SkipMan bool
	// Concurrency bounds parallel child-help fetches (default 4).
	Concurrency int
	// Progress, when set, is called with each command path as its help is
	// fetched. Calls may come from multiple goroutines.
	Progress func(path string)
}

func (s *Scanner) progress(args []string) {
	if s.Progress != nil {
		s.Progress(strings.Join(args, " "))
	}
}

func (s *Scanner) runner() *textio.Runner {
	if s.Runner != nil {
		return s.Runner
	}
	return &textio.Runner{}
}

func (s *Scanner) concurrency() int {
	if s.Concurrency > 0 {
		return s.Concurrency
	}
	return defaultConcurrency
}

// BuildCommand assembles a single-level Command from already-cleaned help
// text: options, usage, version and (when promote is true) subcommand
// candidates as empty children. It performs no I/O.
func BuildCommand(name, content string, promote bool) helptext.Command {
	cmd := helptext.Command{
		Name:    name,
		Options: helptext.ParseOptions(content),
		Usage:   helptext.ParseUsage(content),
		Version: DetectVersion(content),
	}
	if promote {
		for _, cand := range helptext.DetectSubcommands(content) {
			cmd.Subcommands = append(cmd.Subcommands, helptext.Command{
				Name:        cand.Name,
				Description: cand.Description,
			})
		}
	}
	return cmd
}

// Scan acquires help for the given command path (e.g. "git" or "git",
// "log"), builds the tree down to the configured depth and returns it
// normalized. Children that fail to produce help stay as bare candidates.
func (s *Scanner) Scan(ctx context.Context, args ...string) (helptext.Command, error) {
	if len(args) == 0 {
		return helptext.Command{}, fmt.Errorf("no command given")
	}
	content, err := s.RootText(ctx, args...)
	if err != nil {
		return helptext.Command{}, err
	}
	return s.ScanText(ctx, content, args...)
}

// ScanText builds the normalized tree from already-acquired root help text,
// still fetching subcommand help down to the configured depth.
func (s *Scanner) ScanText(ctx context.Context, content string, args ...string) (helptext.Command, error) {
	if len(args) == 0 {
		return helptext.Command{}, fmt.Errorf("no command given")
	}
	cmd := BuildCommand(args[len(args)-1], textio.Clean(content), s.Depth > 0)
	if err := s.fillChildren(ctx, &cmd, args, 1); err != nil {
		return helptext.Command{}, err
	}
	return helptext.Normalize(cmd), nil
}

// RootText prefers the man page for single commands unless SkipMan is set;
// everything else (and the fallback) is --help output.
func (s *Scanner) RootText(ctx context.Context, args ...string) (string, error) {
	r := s.runner()
	if !s.SkipMan && len(args) == 1 && r.ManAvailable(ctx, args[0]) {
		if text, err := r.ManPage(ctx, args[0]); err == nil {
			return text, nil
		}
	}
	return r.CommandHelp(ctx, args...)
}

// fillChildren fetches help for each promoted candidate concurrently and
// replaces the bare candidate with the scanned subtree. Failures are
// tolerated: the candidate keeps only its detected description.
func (s *Scanner) fillChildren(ctx context.Context, cmd *helptext.Command, args []string, depth int) error {
	if depth >= s.Depth || len(cmd.Subcommands) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())

	for i := range cmd.Subcommands {
		g.Go(func() error {
			cand := cmd.Subcommands[i]
			childArgs := append(append([]string{}, args...), cand.Name)
			s.progress(childArgs)

			content, err := s.runner().CommandHelp(ctx, childArgs...)
			if err != nil {
				return nil // best effort, keep the bare candidate
			}

			child := BuildCommand(cand.Name, textio.Clean(content), true)
			if child.Description == "" {
				child.Description = cand.Description
			}
			if err := s.fillChildren(ctx, &child, childArgs, depth+1); err != nil {
				return err
			}
			cmd.Subcommands[i] = child
			return nil
		})
	}
	return g.Wait()
}

// DetectVersion scans help text for a semantic version and returns it, or
// "" when none parses. Only the header line and lines mentioning "version"
// are considered; tools commonly print "name x.y.z" at the top of --help.
func DetectVersion(text string) string {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 && !strings.Contains(strings.ToLower(line), "version") {
			continue
		}
		for _, tok := range strings.Fields(line) {
			tok = strings.Trim(tok, "().,;:")
			candidate := strings.TrimPrefix(tok, "v")
			if candidate == "" || candidate[0] < '0' || candidate[0] > '9' {
				continue
			}
			if _, err := semver.NewVersion(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
