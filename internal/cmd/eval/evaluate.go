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
	"slices"
	"time"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/reconcile"
)

type result struct {
	id       int
	kind     string
	N, M     int
	greedy   int // anchors found by the default matcher
	optimal  int // anchors found with reconcile.Optimal
	lcs      int // length of a longest common subsequence according to diffmatchpatch
	moves    int
	duration time.Duration
}

// evaluate runs all variants on tc and returns the measurements and a description of every
// violated invariant.
func evaluate(id int, tc testCase) (r result, problems []string) {
	defer func() {
		if p := recover(); p != nil {
			problems = append(problems, fmt.Sprintf("panic: %v", p))
		}
	}()

	r = result{id: id, kind: tc.kind, N: len(tc.x), M: len(tc.y)}
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	variants := []struct {
		name string
		opts []reconcile.Option
	}{
		{"default", nil},
		{"optimal", []reconcile.Option{reconcile.Optimal()}},
		{"no-moves", []reconcile.Option{reconcile.NoMoves()}},
	}
	for _, v := range variants {
		start := time.Now()
		s := reconcile.Diff(tc.x, tc.y, v.opts...)
		if v.name == "default" {
			r.duration = time.Since(start)
			r.moves = s.Stats().Moves
		}
		for _, msg := range checkScript(tc.x, tc.y, s) {
			report("%s: %s", v.name, msg)
		}
		if !slices.Equal(s, reconcile.Diff(tc.x, tc.y, v.opts...)) {
			report("%s: result is not deterministic", v.name)
		}
		if v.name == "no-moves" && s.Stats().Moves > 0 {
			report("%s: script contains moves", v.name)
		}
	}

	// Idempotence: diffing the result against the target only keeps.
	for _, e := range reconcile.Diff(tc.y, tc.y) {
		if e.Op != reconcile.Keep {
			report("identity: script contains %v", e.Op)
			break
		}
	}

	r.greedy = len(reconcile.Anchors(tc.x, tc.y))
	r.optimal = len(reconcile.Anchors(tc.x, tc.y, reconcile.Optimal()))
	r.lcs = lcs(tc.x, tc.y)
	if r.optimal != r.lcs {
		report("optimal: %d anchors, want %d", r.optimal, r.lcs)
	}
	if r.greedy > r.optimal {
		report("default: %d anchors, more than the optimal %d", r.greedy, r.optimal)
	}
	return r, problems
}

// checkScript verifies that s transforms x into y, that every element is covered exactly once and
// that no element is reused more often than it was removed.
func checkScript(x, y []string, s reconcile.Script[string]) []string {
	var problems []string
	got, err := reconcile.Apply(x, s)
	if err != nil {
		return append(problems, fmt.Sprintf("apply: %v", err))
	}
	if !slices.Equal(got, y) {
		problems = append(problems, "round trip: result differs from the input")
	}

	seenX := make([]int, len(x))
	seenY := make([]int, len(y))
	removed := make(map[string]int)
	moved := make(map[string]int)
	for _, e := range s {
		switch e.Op {
		case reconcile.Keep:
			seenX[e.OldIndex]++
			seenY[e.NewIndex]++
		case reconcile.Remove:
			seenX[e.OldIndex]++
			removed[e.Value]++
		case reconcile.Insert:
			seenY[e.NewIndex]++
			if e.IsMove() {
				moved[e.Value]++
			}
		}
	}
	for i, n := range seenX {
		if n != 1 {
			problems = append(problems, fmt.Sprintf("coverage: old element %d appears %d times", i, n))
		}
	}
	for i, n := range seenY {
		if n != 1 {
			problems = append(problems, fmt.Sprintf("coverage: new element %d appears %d times", i, n))
		}
	}
	for v, n := range moved {
		if n > removed[v] {
			problems = append(problems, fmt.Sprintf("cache: %q moved %d times, removed %d times", v, n, removed[v]))
		}
	}
	return problems
}

// lcs returns the length of a longest common subsequence of x and y. Every distinct element is
// mapped to a rune, the same way diffmatchpatch compares lines.
func lcs(x, y []string) int {
	ids := make(map[string]rune)
	runes := func(seq []string) []rune {
		out := make([]rune, len(seq))
		for i, v := range seq {
			r, ok := ids[v]
			if !ok {
				r = rune(len(ids))
				if r >= 0xD800 {
					r += 0x800 // skip surrogates
				}
				ids[v] = r
			}
			out[i] = r
		}
		return out
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // no deadline, the result is a minimal diff
	n := 0
	for _, d := range dmp.DiffMainRunes(runes(x), runes(y), false) {
		if d.Type == diffmatchpatch.DiffEqual {
			n += utf8.RuneCountInString(d.Text)
		}
	}
	return n
}
