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

// reconcile compares two inputs and prints the edit script that transforms one into the other.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "reconcile",
		Short: "Compute edit scripts with moves between two sequences",
		Long: `reconcile compares two sequences and prints the keep, remove and insert edits that
transform the first into the second. Insertions of an element that was removed earlier are
reported as moves.

Arguments are taken literally, or read from a file when prefixed with @.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().StringVar(&opts.config, "config", "", "defaults file (default "+defaultConfigFile+" if present)")

	root.AddCommand(newDiffCmd(opts))
	root.AddCommand(newAnchorsCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}
