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

// Package edits contains the internal edit representation that's produced by the script builder,
// rewritten by the move recycler and then translated to the user facing API.
package edits

import "fmt"

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op,Source
type Op int

const (
	Keep   Op = iota // An element is retained
	Remove           // An element is removed from the old sequence
	Insert           // An element is inserted into the new sequence
)

// Source describes where the element of an insertion comes from.
type Source int

const (
	Fresh    Source = iota // The element is new
	Recycled               // The element was removed earlier and is reused (a move)
)

// Step is a single raw edit.
//
// S is the index into the old sequence (x) and T the index into the new sequence (y). Indices that
// don't apply to an operation are -1. For a recycled insertion, From is the index in x of the
// element that's reused, otherwise it's -1.
type Step struct {
	Op   Op
	S, T int
	Src  Source
	From int
}

func (s Step) String() string {
	switch {
	case s.Op == Keep:
		return fmt.Sprintf("keep(%d,%d)", s.S, s.T)
	case s.Op == Remove:
		return fmt.Sprintf("remove(%d)", s.S)
	case s.Op == Insert && s.Src == Recycled:
		return fmt.Sprintf("insert(%d<-%d)", s.T, s.From)
	case s.Op == Insert:
		return fmt.Sprintf("insert(%d)", s.T)
	default:
		return fmt.Sprintf("%v(%d,%d)", s.Op, s.S, s.T)
	}
}

// Event describes a single edit of a finished script. It's reported to observers.
type Event struct {
	Op       Op
	Source   Source // Only meaningful for Insert.
	OldIndex int    // -1 for fresh insertions.
	NewIndex int    // -1 for removals.
	Value    any
}
