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
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
	"znkr.io/reconcile"
)

func newDiffCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [flags] OLD NEW",
		Short: "Print the edit script that transforms OLD into NEW",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, opts, args)
		},
	}
	addSeqFlags(cmd, opts)
	cmd.Flags().BoolVar(&opts.noMoves, "no-moves", false, "don't reuse removed elements")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format (text|json|msgpack)")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log every edit to stderr")
	return cmd
}

func runDiff(cmd *cobra.Command, opts *options, args []string) error {
	if err := opts.load(cmd); err != nil {
		return err
	}
	x, y, err := opts.sequences(args)
	if err != nil {
		return err
	}

	dopts := opts.diffOptions()
	if opts.trace {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		dopts = append(dopts, reconcile.Observe(reconcile.LogObserver(logger)))
	}
	s := reconcile.Diff(x, y, dopts...)

	// The script is only printed if it reproduces NEW.
	got, err := reconcile.Apply(x, s)
	if err != nil {
		return fmt.Errorf("verifying script: %w", err)
	}
	if !slices.Equal(got, y) {
		return errors.New("verifying script: result differs from NEW")
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		return writeJSON(out, s)
	case "msgpack":
		return writeMsgpack(out, s)
	default:
		return writeText(out, s, newPalette(opts.color, out), opts.lines)
	}
}
