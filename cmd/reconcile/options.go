// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"znkr.io/reconcile"
	"znkr.io/reconcile/textseq"
)

const defaultConfigFile = ".reconcile.toml"

// options collects the flags of all commands. Not every command uses every field.
type options struct {
	color  string
	config string

	sep     string
	lines   bool
	optimal bool
	noMoves bool
	format  string
	trace   bool
}

// fileConfig is the layout of the defaults file. Flags set on the command line take precedence.
type fileConfig struct {
	Sep     string `toml:"sep"`
	Lines   bool   `toml:"lines"`
	Optimal bool   `toml:"optimal"`
	NoMoves bool   `toml:"no_moves"`
	Format  string `toml:"format"`
	Color   string `toml:"color"`
}

func addSeqFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.sep, "sep", "", "separator between elements (default: split into characters)")
	cmd.Flags().BoolVar(&opts.lines, "lines", false, "compare line by line")
	cmd.Flags().BoolVar(&opts.optimal, "optimal", false, "find a longest common subsequence")
}

// load merges the defaults file into opts and validates the result.
func (o *options) load(cmd *cobra.Command) error {
	path := o.config
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); errors.Is(err, fs.ErrNotExist) {
			return o.validate()
		}
		path = defaultConfigFile
	}

	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	use := func(key string) bool { return meta.IsDefined(key) && !cmd.Flags().Changed(key) }
	if use("sep") {
		o.sep = fc.Sep
	}
	if use("lines") {
		o.lines = fc.Lines
	}
	if use("optimal") {
		o.optimal = fc.Optimal
	}
	if meta.IsDefined("no_moves") && !cmd.Flags().Changed("no-moves") {
		o.noMoves = fc.NoMoves
	}
	if use("format") {
		o.format = fc.Format
	}
	if use("color") {
		o.color = fc.Color
	}
	return o.validate()
}

func (o *options) validate() error {
	o.format = strings.ToLower(o.format)
	switch o.format {
	case "", "text", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format %q (want text, json or msgpack)", o.format)
	}
	o.color = strings.ToLower(o.color)
	switch o.color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("unknown color mode %q (want auto, on or off)", o.color)
	}
	if o.lines && o.sep != "" {
		return errors.New("--lines and --sep cannot be used together")
	}
	return nil
}

// sequences reads both arguments and splits them into sequences.
func (o *options) sequences(args []string) (x, y []string, err error) {
	old, err := readInput(args[0])
	if err != nil {
		return nil, nil, err
	}
	new, err := readInput(args[1])
	if err != nil {
		return nil, nil, err
	}
	if o.lines {
		return textseq.Lines(old), textseq.Lines(new), nil
	}
	return textseq.Split(old, o.sep), textseq.Split(new, o.sep), nil
}

func (o *options) diffOptions() []reconcile.Option {
	var opts []reconcile.Option
	if o.optimal {
		opts = append(opts, reconcile.Optimal())
	}
	if o.noMoves {
		opts = append(opts, reconcile.NoMoves())
	}
	return opts
}

// readInput returns arg, or the contents of the file it names if it starts with @.
func readInput(arg string) (string, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
