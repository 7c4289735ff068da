// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command helptab extracts options and subcommands from a program's help
// output or man page and renders them as shell completion scripts, JSON,
// or a readable listing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/helptab/helptab/pkg/cache"
	"github.com/helptab/helptab/pkg/compgen"
	"github.com/helptab/helptab/pkg/helptext"
	"github.com/helptab/helptab/pkg/scan"
	"github.com/helptab/helptab/pkg/textio"
	"github.com/helptab/helptab/pkg/tui"
	"github.com/shayne/yargs"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const defaultCacheTTLHours = 24

// config holds persistent defaults, loaded from the user config dir.
type config struct {
	Format   string `yaml:"format"`
	Depth    int    `yaml:"depth"`
	CacheTTL int    `yaml:"cacheTTLHours"`
	SkipMan  bool   `yaml:"skipMan"`
}

var loadedConfig = config{
	Format:   "native",
	Depth:    scan.DefaultDepth,
	CacheTTL: defaultCacheTTLHours,
}

func configPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "helptab", "config.yaml")
}

func init() {
	if err := loadConfig(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load config: %v", err)
		}
	}
	if format := os.Getenv("HELPTAB_FORMAT"); format != "" {
		loadedConfig.Format = format
	}
}

func loadConfig() error {
	path := configPath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, &loadedConfig)
}

type globalFlagsParsed struct {
	Format     string `flag:"format" help:"Output format: native, fish, zsh, bash, elvish, nushell, json"`
	JSON       bool   `flag:"json" help:"Shorthand for --format=json"`
	SkipMan    bool   `flag:"skip-man" help:"Ignore man pages and use --help output"`
	Depth      int    `flag:"depth" help:"How many subcommand levels to scan"`
	PTY        bool   `flag:"pty" help:"Run programs under a pseudo-terminal"`
	Write      bool   `flag:"write" help:"Write output to the helptab cache dir instead of stdout"`
	BashCompat bool   `flag:"bash-completion-compat" help:"Annotate bash completion words with descriptions"`
	NoCache    bool   `flag:"no-cache" help:"Bypass the extraction cache"`
	CacheTTL   int    `flag:"cache-ttl" help:"Cache entry lifetime in hours"`
}

// opts is the effective run configuration: config-file defaults overlaid
// with command-line flags. Resolved once in main.
var opts struct {
	format     string
	skipMan    bool
	depth      int
	pty        bool
	write      bool
	bashCompat bool
	noCache    bool
	cacheTTL   time.Duration
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func resolveOpts(flags globalFlagsParsed) {
	opts.format = loadedConfig.Format
	opts.depth = loadedConfig.Depth
	opts.skipMan = loadedConfig.SkipMan
	opts.cacheTTL = time.Duration(loadedConfig.CacheTTL) * time.Hour

	if flags.Format != "" {
		opts.format = flags.Format
	}
	if flags.JSON {
		opts.format = "json"
	}
	if flags.SkipMan {
		opts.skipMan = true
	}
	if flags.Depth != 0 {
		opts.depth = flags.Depth
	}
	if flags.CacheTTL != 0 {
		opts.cacheTTL = time.Duration(flags.CacheTTL) * time.Hour
	}
	opts.pty = flags.PTY
	opts.write = flags.Write
	opts.bashCompat = flags.BashCompat
	opts.noCache = flags.NoCache
	opts.format = strings.ToLower(opts.format)
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	args := os.Args[1:]
	globalFlags, remaining, err := parseGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	resolveOpts(globalFlags)

	helpConfig := buildHelpConfig()
	args = yargs.ApplyAliases(remaining, helpConfig)

	handlers := map[string]yargs.SubcommandHandler{
		"scan":        handleScan,
		"file":        handleFile,
		"load":        handleLoad,
		"preprocess":  handlePreprocess,
		"subcommands": handleSubcommands,
	}
	groups := buildGroupHandlers()

	if err := yargs.RunSubcommandsWithGroups(context.Background(), args, helpConfig, globalFlagsParsed{}, handlers, groups); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScanner() *scan.Scanner {
	return &scan.Scanner{
		Runner:  &textio.Runner{UsePTY: opts.pty},
		Depth:   opts.depth,
		SkipMan: opts.skipMan,
	}
}

func openStore() *cache.Store {
	if opts.noCache {
		return nil
	}
	store, err := cache.Open(opts.cacheTTL)
	if err != nil {
		log.Printf("cache unavailable: %v", err)
		return nil
	}
	return store
}

// handleScan extracts a command tree from an installed program, e.g.
// "helptab scan git" or "helptab scan git log".
func handleScan(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "scan" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: helptab scan PROG [SUBCOMMAND...]")
	}
	// Accept the dashed form too: "git-log" means the log subcommand of git.
	if len(args) == 1 && strings.Contains(args[0], "-") {
		if prog, sub, ok := strings.Cut(args[0], "-"); ok && prog != "" && sub != "" {
			args = []string{prog, sub}
		}
	}

	s := newScanner()
	stopSpinner := func() {}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		sp := tui.NewSpinner(os.Stderr)
		sp.Start("scanning " + strings.Join(args, " "))
		stopSpinner = func() { sp.Stop(true) }
		s.Progress = func(path string) { sp.Update("scanning " + path) }
	}
	defer stopSpinner()

	content, err := s.RootText(ctx, args...)
	if err != nil {
		return err
	}

	name := strings.Join(args, "-")
	store := openStore()
	if store != nil {
		if cmd, ok := store.Get(name, content); ok {
			stopSpinner()
			return emit(cmd)
		}
	}

	cmd, err := s.ScanText(ctx, content, args...)
	stopSpinner()
	if err != nil {
		return err
	}
	if store != nil {
		// Caching is best effort.
		if err := store.Put(name, content, cmd); err != nil {
			log.Printf("failed to cache %s: %v", name, err)
		}
	}
	return emit(cmd)
}

// handleFile extracts a command from a saved help-text file. No subcommand
// recursion happens since there is no program to run.
func handleFile(_ context.Context, args []string) error {
	if len(args) > 0 && args[0] == "file" {
		args = args[1:]
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: helptab file PATH")
	}

	content, err := textio.ReadFile(args[0])
	if err != nil {
		return err
	}
	name := filepath.Base(args[0])

	store := openStore()
	if store != nil {
		if cmd, ok := store.Get(name, content); ok {
			return emit(cmd)
		}
	}

	cmd := helptext.Normalize(scan.BuildCommand(name, textio.Clean(content), opts.depth > 0))
	if store != nil {
		if err := store.Put(name, content, cmd); err != nil {
			log.Printf("failed to cache %s: %v", name, err)
		}
	}
	return emit(cmd)
}

// handleLoad re-renders a previously exported JSON model.
func handleLoad(_ context.Context, args []string) error {
	if len(args) > 0 && args[0] == "load" {
		args = args[1:]
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: helptab load PATH")
	}

	content, err := textio.ReadFile(args[0])
	if err != nil {
		return err
	}
	var cmd helptext.Command
	if err := json.Unmarshal([]byte(content), &cmd); err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}
	return emit(helptext.Normalize(cmd))
}

// handlePreprocess prints the raw option/description pairs the extraction
// engine would work from. SOURCE is a file path if one exists, otherwise a
// program name.
func handlePreprocess(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "preprocess" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: helptab preprocess SOURCE")
	}
	content, err := inputText(ctx, args)
	if err != nil {
		return err
	}
	for _, pair := range helptext.Preprocess(textio.Clean(content)) {
		fmt.Printf("%s\n%s\n", pair.Option, pair.Description)
	}
	return nil
}

// handleSubcommands prints the detected subcommand names, one per line.
func handleSubcommands(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "subcommands" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: helptab subcommands SOURCE")
	}
	content, err := inputText(ctx, args)
	if err != nil {
		return err
	}
	for _, sub := range helptext.DetectSubcommands(textio.Clean(content)) {
		fmt.Println(sub.Name)
	}
	return nil
}

func inputText(ctx context.Context, args []string) (string, error) {
	if len(args) == 1 {
		if _, err := os.Stat(args[0]); err == nil {
			return textio.ReadFile(args[0])
		}
	}
	return newScanner().RootText(ctx, args...)
}

func render(cmd helptext.Command) (string, error) {
	switch opts.format {
	case "fish":
		return compgen.Fish(cmd), nil
	case "zsh":
		return compgen.Zsh(cmd), nil
	case "bash":
		return compgen.Bash(cmd, opts.bashCompat), nil
	case "elvish":
		return compgen.Elvish(cmd), nil
	case "nushell":
		return compgen.Nushell(cmd), nil
	case "json":
		return compgen.JSON(cmd)
	case "native":
		return compgen.Native(cmd), nil
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)",
		opts.format, strings.Join(compgen.Formats, ", "))
}

func emit(cmd helptext.Command) error {
	out, err := render(cmd)
	if err != nil {
		return err
	}
	if !opts.write {
		fmt.Println(out)
		return nil
	}
	path, err := writeOutput(cmd.Name, out)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// writeOutput saves the rendered script next to the cache entries and
// returns its path.
func writeOutput(name, out string) (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user cache dir: %w", err)
	}
	dir := filepath.Join(base, "helptab")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.%s", name, opts.format))
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func handleCacheGroup(_ context.Context, args []string) error {
	store, err := cache.Open(opts.cacheTTL)
	if err != nil {
		return err
	}
	// The group name is already stripped; the op is the first non-flag arg.
	op := ""
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			op = a
			break
		}
	}
	switch op {
	case "clear":
		return store.Clear()
	case "stats":
		st, err := store.Stat()
		if err != nil {
			return err
		}
		fmt.Println(st)
		return nil
	case "prune":
		removed, err := store.Prune()
		if err != nil {
			return err
		}
		fmt.Printf("Pruned %d cache entries\n", removed)
		return nil
	}
	return fmt.Errorf("unknown cache operation %q", op)
}

func buildGroupHandlers() map[string]yargs.Group {
	return map[string]yargs.Group{
		"cache": {
			Description: "Manage the extraction cache",
			Commands: map[string]yargs.SubcommandHandler{
				"clear": handleCacheGroup,
				"stats": handleCacheGroup,
				"prune": handleCacheGroup,
			},
		},
	}
}

func buildHelpConfig() yargs.HelpConfig {
	subcommands := map[string]yargs.SubCommandInfo{
		"scan": {
			Name:        "scan",
			Description: "Extract completions from an installed program",
			Usage:       "PROG [SUBCOMMAND...]",
			Examples:    []string{"helptab scan rg --format=fish", "helptab scan git log"},
			Aliases:     []string{"command"},
		},
		"file": {
			Name:        "file",
			Description: "Extract completions from a saved help-text file",
			Usage:       "PATH",
			Examples:    []string{"helptab file ./rg-help.txt --format=zsh"},
		},
		"load": {
			Name:        "load",
			Description: "Re-render a previously exported JSON model",
			Usage:       "PATH",
			Examples:    []string{"helptab load rg.json --format=bash"},
		},
		"preprocess": {
			Name:        "preprocess",
			Description: "Print the option/description pairs found in the input",
			Usage:       "SOURCE",
			Hidden:      true,
		},
		"subcommands": {
			Name:        "subcommands",
			Description: "List detected subcommand names",
			Usage:       "SOURCE",
		},
	}
	groups := map[string]yargs.GroupInfo{
		"cache": {
			Name:        "cache",
			Description: "Manage the extraction cache",
			Commands: map[string]yargs.SubCommandInfo{
				"clear": {Name: "clear", Description: "Remove every cache entry"},
				"stats": {Name: "stats", Description: "Show cache entry counts and disk usage"},
				"prune": {Name: "prune", Description: "Remove expired cache entries"},
			},
		},
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "helptab",
			Description: "Turn --help output and man pages into shell completions.",
			Examples: []string{
				"helptab scan rg --format=fish",
				"helptab scan git --format=zsh --write",
				"helptab file ./tool-help.txt --json",
			},
		},
		SubCommands: subcommands,
		Groups:      groups,
	}
}
