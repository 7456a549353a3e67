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
	"errors"
	"fmt"
)

// ErrMismatch is returned if a script can't be applied, because it was not created for the input
// or because it's malformed.
var ErrMismatch = errors.New("reconcile: script does not match input")

// Apply applies s to x and returns the result. x is not modified.
//
// Kept and recycled elements are taken from x, fresh insertions from the script. For every x and
// y, Apply(x, Diff(x, y)) returns a slice equal to y.
func Apply[T any](x []T, s Script[T]) ([]T, error) {
	var out []T
	if len(s) > 0 {
		out = make([]T, 0, len(s))
	}
	err := walk(s, len(x), func(_ int, e Edit[T]) {
		switch {
		case e.Op == Keep || e.IsMove():
			out = append(out, x[e.OldIndex])
		case e.Op == Insert:
			out = append(out, e.Value)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Patcher is a mutable list that is brought from the state x to the state y by [ApplyTo].
//
// Positions refer to the current state of the list, that is, they take all previous calls into
// account.
type Patcher[T any] interface {
	// Remove removes the element at pos.
	Remove(pos int)

	// Insert inserts v at pos. For a move, v is the element that was removed earlier, otherwise
	// it's the new element.
	Insert(pos int, v T)
}

// ApplyTo replays s on p, a list that holds the elements of x. This is useful to reconcile lists
// whose elements carry identity or state, for example the children of a UI node: moved elements
// are reinserted instead of recreated.
//
// The script is validated before p is modified. If it's invalid, p is left unchanged.
func ApplyTo[T any](p Patcher[T], s Script[T]) error {
	if err := walk(s, -1, func(int, Edit[T]) {}); err != nil {
		return err
	}
	return walk(s, -1, func(pos int, e Edit[T]) {
		switch e.Op {
		case Remove:
			p.Remove(pos)
		case Insert:
			p.Insert(pos, e.Value)
		}
	})
}

// walk checks that s is a well formed script for an input of length n and calls fn for every
// edit with the position in the working list it applies to. If n < 0, the length is not checked.
//
// The working list always consists of the elements of y produced so far followed by the elements
// of x that have not been processed yet.
func walk[T any](s Script[T], n int, fn func(pos int, e Edit[T])) error {
	s0, t0 := 0, 0                // next index into x and y
	removed := make(map[int]bool) // removed elements available for reuse
	for i, e := range s {
		pos := t0
		switch e.Op {
		case Keep:
			if e.OldIndex != s0 || e.NewIndex != t0 {
				return fmt.Errorf("%w: edit %d: keep(%d,%d), want keep(%d,%d)", ErrMismatch, i, e.OldIndex, e.NewIndex, s0, t0)
			}
			s0++
			t0++
		case Remove:
			if e.OldIndex != s0 {
				return fmt.Errorf("%w: edit %d: remove(%d), want remove(%d)", ErrMismatch, i, e.OldIndex, s0)
			}
			removed[s0] = true
			s0++
		case Insert:
			if e.NewIndex != t0 {
				return fmt.Errorf("%w: edit %d: insert at %d, want %d", ErrMismatch, i, e.NewIndex, t0)
			}
			switch e.Source {
			case Fresh:
			case Recycled:
				if !removed[e.OldIndex] {
					return fmt.Errorf("%w: edit %d: element %d is not available for reuse", ErrMismatch, i, e.OldIndex)
				}
				delete(removed, e.OldIndex)
			default:
				return fmt.Errorf("%w: edit %d: unknown source %v", ErrMismatch, i, e.Source)
			}
			t0++
		default:
			return fmt.Errorf("%w: edit %d: unknown op %v", ErrMismatch, i, e.Op)
		}
		if n >= 0 && s0 > n {
			return fmt.Errorf("%w: edit %d: index %d out of range for input of length %d", ErrMismatch, i, s0-1, n)
		}
		fn(pos, e)
	}
	if n >= 0 && s0 != n {
		return fmt.Errorf("%w: script covers %d of %d elements", ErrMismatch, s0, n)
	}
	return nil
}
