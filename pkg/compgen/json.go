// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compgen

import (
	"encoding/json"
	"fmt"

	"github.com/helptab/helptab/pkg/helptext"
)

// The interchange projection: option names collapse to their raw spellings
// (the classifier re-derives kinds on load) and subcommands keep only name
// and description.
type jsonCommand struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Usage       string           `json:"usage"`
	Options     []jsonOption     `json:"options"`
	Subcommands []jsonSubcommand `json:"subcommands,omitempty"`
	Version     string           `json:"version,omitempty"`
}

type jsonOption struct {
	Names       []string `json:"names"`
	Argument    string   `json:"argument"`
	Description string   `json:"description"`
}

type jsonSubcommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// JSON renders the command as pretty-printed interchange JSON.
func JSON(cmd helptext.Command) (string, error) {
	out := jsonCommand{
		Name:        cmd.Name,
		Description: cmd.Description,
		Usage:       cmd.Usage,
		Options:     make([]jsonOption, 0, len(cmd.Options)),
		Version:     cmd.Version,
	}
	for _, opt := range cmd.Options {
		names := make([]string, 0, len(opt.Names))
		for _, name := range opt.Names {
			names = append(names, name.Raw)
		}
		out.Options = append(out.Options, jsonOption{
			Names:       names,
			Argument:    opt.Argument,
			Description: opt.Description,
		})
	}
	for _, sub := range cmd.Subcommands {
		out.Subcommands = append(out.Subcommands, jsonSubcommand{
			Name:        sub.Name,
			Description: sub.Description,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode command: %w", err)
	}
	return string(data), nil
}
