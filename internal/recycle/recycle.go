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

// Package recycle turns removals followed by insertions of an equal element into moves.
//
// The steps are processed in order. Every removal puts the removed element into a cache, every
// insertion first looks for an equal element in the cache and reuses the oldest one if there is
// one. Removals are never rewritten; a removal whose element is reused later is the first half of
// a move. Elements left in the cache at the end are genuine deletions.
package recycle

import "znkr.io/reconcile/internal/edits"

// Moves rewrites insertions in steps into recycled insertions where possible. It returns the number
// of removed elements that were not reused.
func Moves[T comparable](steps []edits.Step, x, y []T) (deleted int) {
	var c Cache[T]
	for i := range steps {
		st := &steps[i]
		switch st.Op {
		case edits.Keep:
			// Nothing to do.
		case edits.Remove:
			c.Push(x[st.S], st.S)
		case edits.Insert:
			if from, ok := c.Pop(y[st.T]); ok {
				st.Src, st.From = edits.Recycled, from
			}
		default:
			panic("never reached")
		}
	}
	return c.Len()
}

// MovesFunc is like Moves, but uses eq to compare elements.
func MovesFunc[T any](steps []edits.Step, x, y []T, eq func(a, b T) bool) (deleted int) {
	c := NewCacheFunc(eq)
	for i := range steps {
		st := &steps[i]
		switch st.Op {
		case edits.Keep:
			// Nothing to do.
		case edits.Remove:
			c.Push(x[st.S], st.S)
		case edits.Insert:
			if from, ok := c.Pop(y[st.T]); ok {
				st.Src, st.From = edits.Recycled, from
			}
		default:
			panic("never reached")
		}
	}
	return c.Len()
}
