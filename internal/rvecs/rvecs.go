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

// Package rvecs contains functions to work with the result vectors, the representation that sits
// between the anchors found by the matcher and the raw edit stream. rx[s] is true if x[s] is not
// anchored (it's removed) and ry[t] is true if y[t] is not anchored (it's inserted).
//
// Both vectors have one extra element that is always false. It acts as a sentinel and simplifies
// the loops below.
package rvecs

import (
	"znkr.io/reconcile/internal/anchor"
	"znkr.io/reconcile/internal/edits"
)

// Make allocates result vectors for inputs of length n and m.
func Make(n, m int) (rx, ry []bool) {
	r := make([]bool, n+m+2)
	rx = r[: n+1 : n+1]
	ry = r[n+1:]
	return
}

// FromAnchors returns result vectors that mark every element not covered by pairs.
func FromAnchors(n, m int, pairs []anchor.Pair) (rx, ry []bool) {
	rx, ry = Make(n, m)
	for s := range n {
		rx[s] = true
	}
	for t := range m {
		ry[t] = true
	}
	for _, p := range pairs {
		rx[p.Old] = false
		ry[p.New] = false
	}
	return rx, ry
}

// Steps walks both result vectors and returns one step for every element of x and y. Between two
// anchored runs, all removals come first, followed by all insertions. Insertions are always fresh.
func Steps(rx, ry []bool) []edits.Step {
	n, m := len(rx)-1, len(ry)-1

	// Every element in x is either removed or kept, every element in y that isn't kept is
	// inserted. This allows us to preallocate the return value.
	nsteps := n
	for t := range m {
		if ry[t] {
			nsteps++
		}
	}
	if nsteps == 0 {
		return nil
	}

	out := make([]edits.Step, 0, nsteps)
	for s, t := 0, 0; s < n || t < m; {
		s0, t0 := s, t
		for s < n && rx[s] {
			out = append(out, edits.Step{Op: edits.Remove, S: s, T: -1, From: -1})
			s++
		}
		for t < m && ry[t] {
			out = append(out, edits.Step{Op: edits.Insert, S: -1, T: t, Src: edits.Fresh, From: -1})
			t++
		}
		for s < n && t < m && !rx[s] && !ry[t] {
			out = append(out, edits.Step{Op: edits.Keep, S: s, T: t, From: -1})
			s++
			t++
		}
		if s == s0 && t == t0 {
			panic("result vectors have a different number of kept elements")
		}
	}
	return out
}
