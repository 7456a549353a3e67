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
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"znkr.io/reconcile"
)

func newAnchorsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchors [flags] OLD NEW",
		Short: "Print the positions in OLD and NEW that are kept",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.load(cmd); err != nil {
				return err
			}
			x, y, err := opts.sequences(args)
			if err != nil {
				return err
			}
			var aopts []reconcile.Option
			if opts.optimal {
				aopts = append(aopts, reconcile.Optimal())
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, a := range reconcile.Anchors(x, y, aopts...) {
				fmt.Fprintf(w, "%d\t%d\t%s\n", a.Old, a.New, display(x[a.Old], opts.lines))
			}
			return w.Flush()
		},
	}
	addSeqFlags(cmd, opts)
	return cmd
}
