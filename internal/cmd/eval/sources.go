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
	"encoding/binary"
	"fmt"
	"iter"
	"math/rand/v2"

	"znkr.io/reconcile/internal/cmd/eval/internal/git"
	"znkr.io/reconcile/textseq"
)

// randomCases yields cfg.n generated cases.
func randomCases(cfg *config) iter.Seq2[int, testCase] {
	return func(yield func(int, testCase) bool) {
		for i := range cfg.n {
			tc := generate(newRand(cfg.seed, uint64(i)), cfg, i)
			if !yield(i, tc) {
				return
			}
		}
	}
}

// newRand returns the random source for case i. Every case can be reproduced from the seed alone.
func newRand(seed, i uint64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	binary.LittleEndian.PutUint64(s[8:16], i)
	return rand.New(rand.NewChaCha8(s))
}

// repoCases yields the lines of up to n text files changed by commits. Errors are reported as
// notes and the change is skipped.
func repoCases(repo *git.Repo, commits []string, n int, notes chan<- note) iter.Seq2[int, testCase] {
	return func(yield func(int, testCase) bool) {
		i := 0
		for _, commit := range commits {
			changes, err := repo.Changes(commit)
			if err != nil {
				notes <- note{prefix: commit, msg: fmt.Sprintf("error processing commit: %v", err)}
				continue
			}
			for _, c := range changes {
				if i >= n {
					return
				}
				old, err := repo.Read(c.OldID)
				if err != nil {
					notes <- note{prefix: commit + ":" + c.Name, msg: err.Error()}
					continue
				}
				new, err := repo.Read(c.NewID)
				if err != nil {
					notes <- note{prefix: commit + ":" + c.Name, msg: err.Error()}
					continue
				}
				if git.IsBinary(old) || git.IsBinary(new) {
					continue
				}
				tc := testCase{
					name: commit + ":" + c.Name,
					kind: "git",
					x:    textseq.Lines(old),
					y:    textseq.Lines(new),
				}
				if !yield(i, tc) {
					return
				}
				i++
			}
		}
	}
}
