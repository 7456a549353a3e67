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

package reconcile

import (
	"znkr.io/reconcile/internal/anchor"
	"znkr.io/reconcile/internal/config"
	"znkr.io/reconcile/internal/edits"
	"znkr.io/reconcile/internal/recycle"
	"znkr.io/reconcile/internal/rvecs"
)

// Op describes an edit operation.
type Op = edits.Op

const (
	Keep   = edits.Keep   // An element of x is retained
	Remove = edits.Remove // An element of x is removed
	Insert = edits.Insert // An element is inserted at a position of y
)

// Source describes where an inserted element comes from.
type Source = edits.Source

const (
	Fresh    = edits.Fresh    // The element is taken from y
	Recycled = edits.Recycled // The element was removed from x earlier in the script (a move)
)

// Anchor is a pair of matching positions in x and y: x[Old] == y[New].
type Anchor = anchor.Pair

// Edit describes a single edit of a script.
//
//   - For Keep, OldIndex and NewIndex are set and Value is x[OldIndex].
//   - For Remove, OldIndex is set, NewIndex is -1 and Value is x[OldIndex].
//   - For a Fresh Insert, NewIndex is set, OldIndex is -1 and Value is y[NewIndex].
//   - For a Recycled Insert, NewIndex is set, OldIndex is the index of the reused element and
//     Value is x[OldIndex].
type Edit[T any] struct {
	Op       Op
	Source   Source
	OldIndex int
	NewIndex int
	Value    T
}

// IsMove reports whether e inserts an element that was removed earlier.
func (e Edit[T]) IsMove() bool { return e.Op == Insert && e.Source == Recycled }

// Script is a sequence of edits that transforms x into y when applied in order.
//
// Every element of x appears in exactly one Keep or Remove, every element of y in exactly one Keep
// or Insert, and both appear in increasing order. Between two runs of kept elements, all removals
// come before all insertions.
type Script[T any] []Edit[T]

// Stats summarizes a script.
type Stats struct {
	Keeps   int // Number of kept elements
	Removes int // Number of removed elements, including the ones that are moved
	Inserts int // Number of inserted elements, including the ones that are moved
	Moves   int // Number of recycled insertions
}

// Deletes returns the number of removed elements that are not reused.
func (st Stats) Deletes() int { return st.Removes - st.Moves }

// Stats counts the edits in s.
func (s Script[T]) Stats() Stats {
	var st Stats
	for _, e := range s {
		switch e.Op {
		case Keep:
			st.Keeps++
		case Remove:
			st.Removes++
		case Insert:
			st.Inserts++
			if e.Source == Recycled {
				st.Moves++
			}
		}
	}
	return st
}

// Diff compares the contents of x and y and returns a script that transforms x into y.
//
// The script keeps a common subsequence of x and y, removes every other element of x and inserts
// every other element of y. An insertion of an element that is equal to an element removed earlier
// in the script reuses that element, the pair is a move. Equal removed elements are reused in the
// order in which they were removed.
//
// If x and y are identical, the script consists of a Keep for every element.
//
// The following options are supported: [Optimal], [NoMoves], [Observe]
//
// The result is deterministic: the same inputs and options always produce the same script.
func Diff[T comparable](x, y []T, opts ...Option) Script[T] {
	cfg := config.FromOptions(opts, config.Optimal|config.NoMoves|config.Observer)
	pairs := anchor.Match(x, y, cfg)
	steps := rvecs.Steps(rvecs.FromAnchors(len(x), len(y), pairs))
	if cfg.Moves {
		recycle.Moves(steps, x, y)
	}
	return script(x, y, steps, cfg)
}

// DiffFunc compares the contents of x and y using the provided equality comparison and returns a
// script that transforms x into y.
//
// For the same inputs, DiffFunc returns the same script as [Diff] with eq being ==.
//
// The following options are supported: [Optimal], [NoMoves], [Observe]
//
// Note that this function has generally worse performance than [Diff].
func DiffFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) Script[T] {
	cfg := config.FromOptions(opts, config.Optimal|config.NoMoves|config.Observer)
	pairs := anchor.MatchFunc(x, y, eq, cfg)
	steps := rvecs.Steps(rvecs.FromAnchors(len(x), len(y), pairs))
	if cfg.Moves {
		recycle.MovesFunc(steps, x, y, eq)
	}
	return script(x, y, steps, cfg)
}

// Anchors returns the matching positions of x and y that [Diff] keeps.
//
// The anchors are strictly increasing in both coordinates and form a common subsequence of x and y.
// With [Optimal], it's a longest common subsequence.
//
// The following option is supported: [Optimal]
func Anchors[T comparable](x, y []T, opts ...Option) []Anchor {
	cfg := config.FromOptions(opts, config.Optimal)
	return anchor.Match(x, y, cfg)
}

// AnchorsFunc returns the matching positions of x and y that [DiffFunc] keeps.
//
// The following option is supported: [Optimal]
func AnchorsFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) []Anchor {
	cfg := config.FromOptions(opts, config.Optimal)
	return anchor.MatchFunc(x, y, eq, cfg)
}

func script[T any](x, y []T, steps []edits.Step, cfg config.Config) Script[T] {
	if len(steps) == 0 {
		return nil
	}

	out := make(Script[T], 0, len(steps))
	for _, st := range steps {
		e := Edit[T]{
			Op:       st.Op,
			Source:   st.Src,
			OldIndex: st.S,
			NewIndex: st.T,
		}
		switch {
		case st.Op == edits.Insert && st.Src == edits.Recycled:
			e.OldIndex = st.From
			e.Value = x[st.From]
		case st.Op == edits.Insert:
			e.Value = y[st.T]
		default:
			e.Value = x[st.S]
		}
		out = append(out, e)

		if cfg.Observer != nil {
			cfg.Observer(edits.Event{
				Op:       e.Op,
				Source:   e.Source,
				OldIndex: e.OldIndex,
				NewIndex: e.NewIndex,
				Value:    e.Value,
			})
		}
	}
	return out
}
