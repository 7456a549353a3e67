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
	"fmt"
	"math/rand/v2"
)

type testCase struct {
	name string // used in notes
	kind string
	x, y []string
}

var kinds = []string{
	"random",
	"edited",
	"duplicates",
	"disjoint",
	"shuffled",
	"reversed",
}

// generate creates case i. Most cases are random, every other case is one of the adversarial
// kinds.
func generate(rng *rand.Rand, cfg *config, i int) testCase {
	kind := kinds[0]
	if i%2 == 1 {
		kind = kinds[1+rng.IntN(len(kinds)-1)]
	}

	n := rng.IntN(cfg.length + 1)
	tc := testCase{name: fmt.Sprintf("case %d (%s)", i, kind), kind: kind}
	switch kind {
	case "random":
		tc.x = sequence(rng, n, 0, cfg.alphabet)
		tc.y = sequence(rng, rng.IntN(cfg.length+1), 0, cfg.alphabet)
	case "edited":
		// A few random edits, which is the common case in practice.
		tc.x = sequence(rng, n, 0, cfg.alphabet)
		tc.y = edit(rng, tc.x, cfg.alphabet, 1+n/10)
	case "duplicates":
		tc.x = sequence(rng, n, 0, 1)
		tc.y = sequence(rng, rng.IntN(cfg.length+1), 0, 1)
	case "disjoint":
		tc.x = sequence(rng, n, 0, cfg.alphabet)
		tc.y = sequence(rng, rng.IntN(cfg.length+1), cfg.alphabet, cfg.alphabet)
	case "shuffled":
		tc.x = sequence(rng, n, 0, cfg.alphabet)
		tc.y = append([]string(nil), tc.x...)
		rng.Shuffle(len(tc.y), func(i, j int) { tc.y[i], tc.y[j] = tc.y[j], tc.y[i] })
	case "reversed":
		tc.x = sequence(rng, n, 0, cfg.alphabet)
		tc.y = make([]string, len(tc.x))
		for i, v := range tc.x {
			tc.y[len(tc.x)-1-i] = v
		}
	default:
		panic("never reached")
	}
	return tc
}

// element returns the k-th element of the alphabet.
func element(k int) string {
	return string(rune(0x4E00 + k))
}

func sequence(rng *rand.Rand, n, offset, alphabet int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = element(offset + rng.IntN(alphabet))
	}
	return out
}

// edit applies d random removals, insertions and moves to a copy of x.
func edit(rng *rand.Rand, x []string, alphabet, d int) []string {
	y := append([]string(nil), x...)
	for range d {
		switch op := rng.IntN(3); {
		case op == 0 && len(y) > 0:
			i := rng.IntN(len(y))
			y = append(y[:i], y[i+1:]...)
		case op == 1:
			i := rng.IntN(len(y) + 1)
			y = append(y[:i], append([]string{element(rng.IntN(alphabet))}, y[i:]...)...)
		case len(y) > 1:
			i := rng.IntN(len(y))
			v := y[i]
			y = append(y[:i], y[i+1:]...)
			j := rng.IntN(len(y) + 1)
			y = append(y[:j], append([]string{v}, y[j:]...)...)
		}
	}
	return y
}
