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
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDiff(t *testing.T) {
	tests := []struct {
		name        string
		x, y        string
		want        string // default
		wantOptimal string
		wantNoMoves string // default with NoMoves
	}{
		{
			name:        "identical",
			x:           "ABC",
			y:           "ABC",
			want:        "KKK",
			wantOptimal: "KKK",
			wantNoMoves: "KKK",
		},
		{
			name: "empty",
		},
		{
			name:        "x-empty",
			y:           "XYZ",
			want:        "III",
			wantOptimal: "III",
			wantNoMoves: "III",
		},
		{
			name:        "y-empty",
			x:           "XYZ",
			want:        "RRR",
			wantOptimal: "RRR",
			wantNoMoves: "RRR",
		},
		{
			name:        "ABCABBA_to_CBABAC",
			x:           "ABCABBA",
			y:           "CBABAC",
			want:        "RRKRKRKMMI",
			wantOptimal: "RRKRKMKKI",
			wantNoMoves: "RRKRKRKIII",
		},
		{
			name:        "swap",
			x:           "ABCDEFG",
			y:           "ABCEDFGA",
			want:        "KKKRKMKKI",
			wantOptimal: "KKKRKMKKI",
			wantNoMoves: "KKKRKIKKI",
		},
		{
			name:        "shrink",
			x:           "AAAA",
			y:           "AA",
			want:        "KKRR",
			wantOptimal: "KKRR",
			wantNoMoves: "KKRR",
		},
		{
			name:        "disjoint",
			x:           "ABC",
			y:           "XYZ",
			want:        "RRRIII",
			wantOptimal: "RRRIII",
			wantNoMoves: "RRRIII",
		},
		{
			name:        "rotate",
			x:           "ABCD",
			y:           "BCDA",
			want:        "RKKKM",
			wantOptimal: "RKKKM",
			wantNoMoves: "RKKKI",
		},
		{
			name:        "reverse",
			x:           "ABCD",
			y:           "DCBA",
			want:        "RRRKMMM",
			wantOptimal: "RRRKMMM",
			wantNoMoves: "RRRKIII",
		},
		{
			name:        "duplicates",
			x:           "AABB",
			y:           "BBAA",
			want:        "RRKKMM",
			wantOptimal: "RRKKMM",
			wantNoMoves: "RRKKII",
		},
		{
			name:        "unique-at-both-ends",
			x:           "XAAAY",
			y:           "AAA",
			want:        "RKKKR",
			wantOptimal: "RKKKR",
			wantNoMoves: "RKKKR",
		},
	}

	eq := func(a, b string) bool { return a == b }
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := split(tt.x), split(tt.y)
			variants := []struct {
				name string
				opts []Option
				want string
			}{
				{"default", nil, tt.want},
				{"optimal", []Option{Optimal()}, tt.wantOptimal},
				{"no-moves", []Option{NoMoves()}, tt.wantNoMoves},
			}
			for _, v := range variants {
				t.Run(v.name, func(t *testing.T) {
					got := Diff(x, y, v.opts...)
					if diff := cmp.Diff(v.want, render(got)); diff != "" {
						t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
					}
					gotFunc := DiffFunc(x, y, eq, v.opts...)
					if diff := cmp.Diff(got, gotFunc); diff != "" {
						t.Errorf("DiffFunc(...) differs from Diff(...) [-diff,+func]:\n%s", diff)
					}
					applied, err := Apply(x, got)
					if err != nil {
						t.Fatalf("Apply(...) failed: %v", err)
					}
					if diff := cmp.Diff(y, applied, cmpopts.EquateEmpty()); diff != "" {
						t.Errorf("Apply(x, Diff(x, y)) differs from y [-want,+got]:\n%s", diff)
					}
				})
			}
		})
	}
}

func TestDiffScript(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want Script[string]
	}{
		{
			name: "swap",
			x:    "ABCDEFG",
			y:    "ABCEDFGA",
			want: Script[string]{
				{Keep, Fresh, 0, 0, "A"},
				{Keep, Fresh, 1, 1, "B"},
				{Keep, Fresh, 2, 2, "C"},
				{Remove, Fresh, 3, -1, "D"},
				{Keep, Fresh, 4, 3, "E"},
				{Insert, Recycled, 3, 4, "D"},
				{Keep, Fresh, 5, 5, "F"},
				{Keep, Fresh, 6, 6, "G"},
				{Insert, Fresh, -1, 7, "A"},
			},
		},
		{
			name: "ABCABBA_to_CBABAC",
			x:    "ABCABBA",
			y:    "CBABAC",
			want: Script[string]{
				{Remove, Fresh, 0, -1, "A"},
				{Remove, Fresh, 1, -1, "B"},
				{Keep, Fresh, 2, 0, "C"},
				{Remove, Fresh, 3, -1, "A"},
				{Keep, Fresh, 4, 1, "B"},
				{Remove, Fresh, 5, -1, "B"},
				{Keep, Fresh, 6, 2, "A"},
				{Insert, Recycled, 1, 3, "B"}, // first removed B is reused first
				{Insert, Recycled, 0, 4, "A"},
				{Insert, Fresh, -1, 5, "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(split(tt.x), split(tt.y))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestDiffScenarios(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want Stats
	}{
		{
			name: "duplicates-round-trip",
			x:    "ABCABBA",
			y:    "CBABAC",
			want: Stats{Keeps: 3, Removes: 4, Inserts: 3, Moves: 2},
		},
		{
			name: "swapped-pair-is-one-move",
			x:    "ABCDEFG",
			y:    "ABCEDFGA",
			want: Stats{Keeps: 6, Removes: 1, Inserts: 2, Moves: 1},
		},
		{
			name: "only-inserts",
			x:    "",
			y:    "XYZ",
			want: Stats{Inserts: 3},
		},
		{
			name: "only-removes",
			x:    "XYZ",
			y:    "",
			want: Stats{Removes: 3},
		},
		{
			name: "shrink-duplicates",
			x:    "AAAA",
			y:    "AA",
			want: Stats{Keeps: 2, Removes: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := split(tt.x), split(tt.y)
			s := Diff(x, y)
			if diff := cmp.Diff(tt.want, s.Stats()); diff != "" {
				t.Errorf("Diff(...).Stats() differs [-want,+got]:\n%s", diff)
			}
			checkScript(t, x, y, s)
		})
	}
}

func TestStatsDeletes(t *testing.T) {
	s := Diff(split("XYZ"), nil)
	if got := s.Stats().Deletes(); got != 3 {
		t.Errorf("Deletes() = %d, want 3", got)
	}
	s = Diff(split("AAAA"), split("AA"))
	if got := s.Stats().Deletes(); got != 2 {
		t.Errorf("Deletes() = %d, want 2", got)
	}
	s = Diff(split("AB"), split("BA"))
	if got := s.Stats().Deletes(); got != 0 {
		t.Errorf("Deletes() = %d, want 0", got)
	}
}

func TestAnchors(t *testing.T) {
	tests := []struct {
		name        string
		x, y        string
		want        []Anchor
		wantOptimal []Anchor
	}{
		{
			name:        "ABCABBA_to_CBABAC",
			x:           "ABCABBA",
			y:           "CBABAC",
			want:        []Anchor{{Old: 2, New: 0}, {Old: 4, New: 1}, {Old: 6, New: 2}},
			wantOptimal: []Anchor{{Old: 2, New: 0}, {Old: 4, New: 1}, {Old: 5, New: 3}, {Old: 6, New: 4}},
		},
		{
			name:        "prefix-and-suffix",
			x:           "ABCDEFG",
			y:           "ABCEDFGA",
			want:        []Anchor{{Old: 0, New: 0}, {Old: 1, New: 1}, {Old: 2, New: 2}, {Old: 4, New: 3}, {Old: 5, New: 5}, {Old: 6, New: 6}},
			wantOptimal: []Anchor{{Old: 0, New: 0}, {Old: 1, New: 1}, {Old: 2, New: 2}, {Old: 4, New: 3}, {Old: 5, New: 5}, {Old: 6, New: 6}},
		},
		{
			name: "disjoint",
			x:    "ABC",
			y:    "XYZ",
		},
	}

	eq := func(a, b string) bool { return a == b }
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := split(tt.x), split(tt.y)
			if diff := cmp.Diff(tt.want, Anchors(x, y), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Anchors(...) differs [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.want, AnchorsFunc(x, y, eq), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("AnchorsFunc(...) differs [-want,+got]:\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantOptimal, Anchors(x, y, Optimal()), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Anchors(..., Optimal()) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestOptionNotAllowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Anchors(..., NoMoves()) didn't panic")
		}
		if got, want := fmt.Sprint(r), "Option reconcile.NoMoves not allowed here"; got != want {
			t.Errorf("panic = %q, want %q", got, want)
		}
	}()
	Anchors(split("AB"), split("BA"), NoMoves())
}

func TestObserve(t *testing.T) {
	x, y := split("ABCDEFG"), split("ABCEDFGA")
	var got []Event
	s := Diff(x, y, Observe(func(e Event) { got = append(got, e) }))

	want := make([]Event, 0, len(s))
	for _, e := range s {
		want = append(want, Event{
			Op:       e.Op,
			Source:   e.Source,
			OldIndex: e.OldIndex,
			NewIndex: e.NewIndex,
			Value:    e.Value,
		})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("observed events differ from script [-want,+got]:\n%s", diff)
	}
}

// TestProperties checks the invariants of Diff on random inputs with many duplicates.
func TestProperties(t *testing.T) {
	variants := map[string][]Option{
		"default":  nil,
		"optimal":  {Optimal()},
		"no-moves": {NoMoves()},
	}
	for name, opts := range variants {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
			for range 500 {
				x := randomSeq(rng, rng.IntN(20), 1+rng.IntN(5))
				y := randomSeq(rng, rng.IntN(20), 1+rng.IntN(5))

				s := Diff(x, y, opts...)
				checkScript(t, x, y, s)

				// Determinism.
				if diff := cmp.Diff(s, Diff(x, y, opts...)); diff != "" {
					t.Fatalf("Diff(%v, %v) is not deterministic [-first,+second]:\n%s", x, y, diff)
				}

				// Identity.
				for _, e := range Diff(y, y, opts...) {
					if e.Op != Keep {
						t.Fatalf("Diff(%v, %v) contains %v, want only Keep", y, y, e.Op)
					}
				}
			}
		})
	}
}

func TestGreedyNeverBeatsOptimal(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	for range 500 {
		x := randomSeq(rng, rng.IntN(30), 1+rng.IntN(4))
		y := randomSeq(rng, rng.IntN(30), 1+rng.IntN(4))
		greedy, optimal := len(Anchors(x, y)), len(Anchors(x, y, Optimal()))
		if greedy > optimal {
			t.Fatalf("Anchors(%v, %v): greedy found %d anchors, optimal only %d", x, y, greedy, optimal)
		}
	}
}

// TestAdversarial makes sure that inputs that are bad for the anchor matcher still terminate and
// produce valid scripts.
func TestAdversarial(t *testing.T) {
	const n = 1000
	tests := []struct {
		name string
		x, y []int
	}{
		{
			name: "all-duplicates",
			x:    repeat([]int{0}, n),
			y:    repeat([]int{0}, n/2),
		},
		{
			name: "disjoint",
			x:    count(0, n),
			y:    count(n, 2*n),
		},
		{
			name: "alternating",
			x:    repeat([]int{0, 1}, n/2),
			y:    repeat([]int{1, 0}, n/2),
		},
		{
			name: "reversed",
			x:    count(0, n),
			y:    reversed(count(0, n)),
		},
		{
			name: "runs",
			x:    append(repeat([]int{0}, n/2), repeat([]int{1}, n/2)...),
			y:    append(repeat([]int{1}, n/2), repeat([]int{0}, n/2)...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkScript(t, tt.x, tt.y, Diff(tt.x, tt.y))
			checkScript(t, tt.x, tt.y, Diff(tt.x, tt.y, Optimal()))
		})
	}
}

// checkScript verifies the round trip, coverage, ordering and cache conservation for s.
func checkScript[T comparable](t *testing.T, x, y []T, s Script[T]) {
	t.Helper()

	got, err := Apply(x, s)
	if err != nil {
		t.Fatalf("Apply(%v, Diff(%v, %v)) failed: %v", x, x, y, err)
	}
	if diff := cmp.Diff(y, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("Apply(x, Diff(x, y)) differs from y [-want,+got]:\nx = %v\ny = %v\n%s", x, y, diff)
	}

	seenX := make([]int, len(x))
	seenY := make([]int, len(y))
	removed := make(map[T]int)
	moved := make(map[T]int)
	inGap := false // true after an insertion, until the next keep
	for _, e := range s {
		switch e.Op {
		case Keep:
			seenX[e.OldIndex]++
			seenY[e.NewIndex]++
			inGap = false
		case Remove:
			if inGap {
				t.Fatalf("Diff(%v, %v): remove after insert in the same gap", x, y)
			}
			seenX[e.OldIndex]++
			removed[e.Value]++
		case Insert:
			seenY[e.NewIndex]++
			if e.IsMove() {
				moved[e.Value]++
			}
			inGap = true
		}
	}
	for s, n := range seenX {
		if n != 1 {
			t.Fatalf("Diff(%v, %v): x[%d] appears in %d edits, want 1", x, y, s, n)
		}
	}
	for i, n := range seenY {
		if n != 1 {
			t.Fatalf("Diff(%v, %v): y[%d] appears in %d edits, want 1", x, y, i, n)
		}
	}
	for v, n := range moved {
		if n > removed[v] {
			t.Fatalf("Diff(%v, %v): %v is moved %d times but only removed %d times", x, y, v, n, removed[v])
		}
	}
}

func render[T any](s Script[T]) string {
	var sb strings.Builder
	for _, e := range s {
		switch {
		case e.Op == Keep:
			sb.WriteRune('K')
		case e.Op == Remove:
			sb.WriteRune('R')
		case e.IsMove():
			sb.WriteRune('M')
		case e.Op == Insert:
			sb.WriteRune('I')
		default:
			panic("never reached")
		}
	}
	return sb.String()
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "")
}

func randomSeq(rng *rand.Rand, n, alphabet int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + rng.IntN(alphabet)))
	}
	return out
}

func repeat(v []int, n int) []int {
	out := make([]int, 0, len(v)*n)
	for range n {
		out = append(out, v...)
	}
	return out
}

func count(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func reversed(v []int) []int {
	out := make([]int, len(v))
	for i, e := range v {
		out[len(v)-1-i] = e
	}
	return out
}

func BenchmarkDiff(b *testing.B) {
	params := []struct {
		N, M int // Length of x and y respectively
		D    int // Number of edits (besides edits due to size differences)
	}{
		{50, 50, 10},
		{500, 50, 10},
		{50, 500, 10},
		{500, 500, 10},
		{500, 500, 100},
		{5000, 5500, 100},
	}

	for _, p := range params {
		name := fmt.Sprintf("N=%d_M=%d_D=%d", p.N, p.M, p.D)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()

			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(name))))

			// Construct y as a window of x, then add D edits.
			flipped := false
			n, m := p.N, p.M
			if n < m {
				n, m = m, n
				flipped = true
			}

			x := make([]int, n)
			for i := range x {
				x[i] = rng.IntN(100)
			}

			y := make([]int, m)
			delta := 0
			if n != m {
				delta = rng.IntN((n - m) / 2)
			}
			for i := range y {
				y[i] = x[i+delta]
			}

			// We might already have some changes due to the different sizes for N and M, add D
			// additional changes.
			for d := p.D; d > 0; {
				i := rng.IntN(len(y))
				if y[i] >= 0 {
					y[i] = -y[i]
					d--
				}
			}

			if flipped {
				x, y = y, x
			}

			for b.Loop() {
				_ = Diff(x, y)
			}
		})
	}
}
