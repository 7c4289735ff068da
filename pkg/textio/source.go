// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
)

// DefaultTimeout bounds a single help or man invocation.
const DefaultTimeout = 5 * time.Second

// helpEnv disables pagers and interactive prompts so programs like git
// don't block waiting for a terminal.
var helpEnv = []string{
	"PAGER=cat",
	"GIT_PAGER=cat",
	"MANPAGER=cat",
	"TERM=dumb",
	"GIT_TERMINAL_PROMPT=0",
}

// Runner captures help and man-page text from installed programs.
// The zero value is usable.
type Runner struct {
	// Timeout per invocation; DefaultTimeout when zero.
	Timeout time.Duration
	// UsePTY runs the program under a pseudo-terminal. Some programs only
	// print their full help when stdout is a terminal.
	UsePTY bool
}

func (r *Runner) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return DefaultTimeout
}

// CommandHelp runs "<args> --help", falling back to "-h", and returns the
// combined output. Non-zero exit statuses are tolerated as long as the
// program printed something; many tools exit 1 after printing usage.
func (r *Runner) CommandHelp(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("no command given")
	}
	for _, flag := range []string{"--help", "-h"} {
		out := r.run(ctx, args[0], append(append([]string{}, args[1:]...), flag)...)
		if len(out) > 0 {
			return out, nil
		}
	}
	return "", fmt.Errorf("no help output for %q", strings.Join(args, " "))
}

func (r *Runner) run(ctx context.Context, name string, args ...string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), helpEnv...)

	if r.UsePTY {
		out, err := runPTY(cmd)
		if err != nil {
			return ""
		}
		return out
	}

	out, _ := cmd.CombinedOutput()
	return string(out)
}

// runPTY starts cmd with its stdio attached to a pseudo-terminal and drains
// everything it writes. The copy ends with an I/O error when the child side
// of the pty closes; that is the normal termination path.
func runPTY(cmd *exec.Cmd) (string, error) {
	f, err := pty.Start(cmd)
	if err != nil {
		return "", fmt.Errorf("failed to start pty: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, f)
	_ = cmd.Wait()
	return buf.String(), nil
}

// ManPage returns the man page text for prog with overstrike sequences
// already removed.
func (r *Runner) ManPage(ctx context.Context, prog string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, "man", prog)
	cmd.Env = append(os.Environ(), helpEnv...)
	out, err := cmd.Output()
	if err != nil || len(out) == 0 {
		return "", fmt.Errorf("no man page for %q", prog)
	}
	return RemoveOverstrike(string(out)), nil
}

// ManAvailable reports whether a man page exists for prog.
func (r *Runner) ManAvailable(ctx context.Context, prog string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, "man", "-w", prog)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// ReadFile returns the contents of a help-text file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
