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

// Package anchor finds anchors, pairs of equal elements in two slices that form a common
// subsequence.
package anchor

import (
	"fmt"
	"sort"

	"znkr.io/reconcile/internal/config"
)

// Pair is an anchor: x[Old] == y[New].
type Pair struct{ Old, New int }

// Match returns anchors for x and y. The anchors are strictly increasing in both coordinates.
func Match[T comparable](x, y []T, cfg config.Config) []Pair {
	smin, smax, tmin, tmax := findChangeBounds(x, y)
	pairs := make([]Pair, 0, smin+len(x)-smax)
	for i := range smin {
		pairs = append(pairs, Pair{i, i})
	}

	if smin < smax && tmin < tmax {
		// Work on integer IDs instead of Ts and drop all elements that only appear on one side.
		x0, y0, xidx, yidx := preprocess(x[smin:smax], y[tmin:tmax])
		eq := func(s, t int) bool { return x0[s] == y0[t] }

		var mid []Pair
		switch cfg.Mode {
		case config.ModeDefault:
			// For every ID, the increasing positions in y0 where it appears.
			positions := make([][]int, smax-smin) // IDs are < smax-smin
			for t, id := range y0 {
				positions[id] = append(positions[id], t)
			}
			next := func(s, t int) int {
				pos := positions[x0[s]]
				i := sort.SearchInts(pos, t)
				if i == len(pos) {
					return len(y0)
				}
				return pos[i]
			}
			mid = greedy(len(x0), len(y0), xidx, yidx, next)
		case config.ModeOptimal:
			mid = optimal(len(x0), len(y0), eq)
		default:
			panic(fmt.Sprintf("unknown mode: %v", cfg.Mode))
		}

		for _, p := range mid {
			pairs = append(pairs, Pair{smin + xidx[p.Old], tmin + yidx[p.New]})
		}
	}

	for i := range len(x) - smax {
		pairs = append(pairs, Pair{smax + i, tmax + i})
	}
	check(pairs, func(s, t int) bool { return x[s] == y[t] })
	return pairs
}

// MatchFunc returns anchors for x and y using the provided equality comparison. The anchors are
// strictly increasing in both coordinates.
//
// Note that this function has generally worse performance than [Match].
func MatchFunc[T any](x, y []T, eq func(a, b T) bool, cfg config.Config) []Pair {
	smin, smax, tmin, tmax := findChangeBoundsFunc(x, y, eq)
	pairs := make([]Pair, 0, smin+len(x)-smax)
	for i := range smin {
		pairs = append(pairs, Pair{i, i})
	}

	if smin < smax && tmin < tmax {
		x0, y0 := x[smin:smax], y[tmin:tmax]
		eq0 := func(s, t int) bool { return eq(x0[s], y0[t]) }

		var mid []Pair
		switch cfg.Mode {
		case config.ModeDefault:
			next := func(s, t int) int {
				for t < len(y0) && !eq0(s, t) {
					t++
				}
				return t
			}
			mid = greedy(len(x0), len(y0), nil, nil, next)
		case config.ModeOptimal:
			// Same as preprocess for comparable types, elements without any match are dropped.
			// Without this, the choice between longest common subsequences would differ from
			// Match.
			xidx, yidx := matchable(len(x0), len(y0), eq0)
			mid = optimal(len(xidx), len(yidx), func(s, t int) bool { return eq0(xidx[s], yidx[t]) })
			for i, p := range mid {
				mid[i] = Pair{xidx[p.Old], yidx[p.New]}
			}
		default:
			panic(fmt.Sprintf("unknown mode: %v", cfg.Mode))
		}

		for _, p := range mid {
			pairs = append(pairs, Pair{smin + p.Old, tmin + p.New})
		}
	}

	for i := range len(x) - smax {
		pairs = append(pairs, Pair{smax + i, tmax + i})
	}
	check(pairs, func(s, t int) bool { return eq(x[s], y[t]) })
	return pairs
}

// findChangeBounds returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBounds[T comparable](x, y []T) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && x[smin] == y[tmin] {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && x[smax-1] == y[tmax-1] {
		smax--
		tmax--
	}

	return
}

// findChangeBoundsFunc returns the upper and lower bounds for the changed portion of the inputs.
func findChangeBoundsFunc[T any](x, y []T, eq func(a, b T) bool) (smin, smax, tmin, tmax int) {
	smin, tmin = 0, 0
	smax, tmax = len(x), len(y)

	// Strip common prefix.
	for smin < smax && tmin < tmax && eq(x[smin], y[tmin]) {
		smin++
		tmin++
	}

	// Strip common suffix.
	for smax > smin && tmax > tmin && eq(x[smax-1], y[tmax-1]) {
		smax--
		tmax--
	}

	return
}

// preprocess assigns a unique ID to every element of x that also appears in y and drops all
// elements that only appear in x or y. Those can never be anchors.
//
// The results are the following slices:
//   - x0:   x as IDs except for elements that appear only in x
//   - y0:   y as IDs except for elements that appear only in y
//   - xidx: A mapping from x0 to x: x0[s] corresponds to x[xidx[s]]
//   - yidx: A mapping from y0 to y: y0[t] corresponds to y[yidx[t]]
//
// IDs are dense and smaller than len(x).
func preprocess[T comparable](x, y []T) (x0, y0, xidx, yidx []int) {
	idx := make(map[T]int, len(x)) // temporary map from element to ID
	buf := make([]int, 2*len(x)+2*len(y))
	x0, buf = buf[:0:len(x)], buf[len(x):]
	xidx, buf = buf[:0:len(x)], buf[len(x):]
	y0, buf = buf[:0:len(y)], buf[len(y):]
	yidx, buf = buf[:0:len(y)], buf[len(y):]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}

	// Step 1: Create an ID for every element in x.
	for _, e := range x {
		id, ok := idx[e]
		if !ok {
			id = len(idx)
			idx[e] = id
		}
		x0 = append(x0, id)
	}
	// Step 2: Translate y, ignoring everything that's not in x and remembering which IDs appear
	// in y.
	iny := make([]bool, len(idx))
	for t, e := range y {
		id, ok := idx[e]
		if !ok {
			continue
		}
		iny[id] = true
		yidx = append(yidx, t)
		y0 = append(y0, id)
	}
	// Step 3: Filter out elements from x0 that are not in y.
	i := 0
	for s, id := range x0 {
		if iny[id] {
			xidx = append(xidx, s)
			x0[i] = id
			i++
		}
	}
	x0 = x0[:i]
	return
}

// matchable returns the indexes of all elements in sequences of length n and m that have at least
// one match on the other side.
func matchable(n, m int, eq func(s, t int) bool) (xidx, yidx []int) {
	iny := make([]bool, m)
	xidx = make([]int, 0, n)
	for s := range n {
		found := false
		for t := range m {
			if eq(s, t) {
				found = true
				iny[t] = true
			}
		}
		if found {
			xidx = append(xidx, s)
		}
	}
	yidx = make([]int, 0, m)
	for t, ok := range iny {
		if ok {
			yidx = append(yidx, t)
		}
	}
	return xidx, yidx
}

// check panics if pairs are not strictly increasing in both coordinates or if a pair doesn't
// match. Either means the matcher is broken.
func check(pairs []Pair, eq func(s, t int) bool) {
	for i, p := range pairs {
		if i > 0 && (p.Old <= pairs[i-1].Old || p.New <= pairs[i-1].New) {
			panic(fmt.Sprintf("invalid anchor order: %v follows %v", p, pairs[i-1]))
		}
		if !eq(p.Old, p.New) {
			panic(fmt.Sprintf("invalid anchor: %v is not a match", p))
		}
	}
}
