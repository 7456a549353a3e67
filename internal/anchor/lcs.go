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

package anchor

// greedy finds anchors for two sequences of length n and m by repeatedly accepting the matching
// pair after the last anchor that has the smallest index sum. Ties go to the pair with the smaller
// index into y, that is, skipping elements in x is preferred over skipping elements in y.
//
// next(s, t) must return the smallest t' >= t for which (s, t') is a match, or m if there's none.
//
// The index sum is computed on the positions xpos[s] and ypos[t] when the sequences are a subset
// of the original inputs. A nil slice means identity.
//
// Every accepted anchor costs at most O(n) calls to next and there are at most min(n, m) anchors.
func greedy(n, m int, xpos, ypos []int, next func(s, t int) int) []Pair {
	pos := func(v []int, i int) int {
		if v == nil {
			return i
		}
		return v[i]
	}

	var pairs []Pair
	s0, t0 := 0, 0 // first unconsumed element in x and y
	for s0 < n && t0 < m {
		best, bs, bt := -1, -1, -1
		for s := s0; s < n; s++ {
			// No pair starting at s or later can beat the best pair anymore.
			if best >= 0 && pos(xpos, s)+pos(ypos, t0) > best {
				break
			}
			t := next(s, t0)
			if t >= m {
				continue
			}
			sum := pos(xpos, s) + pos(ypos, t)
			if best < 0 || sum < best || sum == best && t < bt {
				best, bs, bt = sum, s, t
			}
		}
		if best < 0 {
			break // no more matches
		}
		pairs = append(pairs, Pair{bs, bt})
		s0, t0 = bs+1, bt+1
	}
	return pairs
}

// optimal finds a longest common subsequence of two sequences of length n and m. Among all longest
// common subsequences it picks the one that skips elements in x as early as possible.
//
// Time and space complexity are O(nm).
func optimal(n, m int, eq func(s, t int) bool) []Pair {
	// l[s*w+t] is the length of the longest common subsequence of x[s:] and y[t:].
	w := m + 1
	l := make([]int, (n+1)*w)
	for s := n - 1; s >= 0; s-- {
		for t := m - 1; t >= 0; t-- {
			if eq(s, t) {
				l[s*w+t] = l[(s+1)*w+t+1] + 1
			} else {
				l[s*w+t] = max(l[(s+1)*w+t], l[s*w+t+1])
			}
		}
	}

	pairs := make([]Pair, 0, l[0])
	for s, t := 0, 0; s < n && t < m; {
		switch {
		case eq(s, t):
			pairs = append(pairs, Pair{s, t})
			s++
			t++
		case l[(s+1)*w+t] >= l[s*w+t+1]:
			s++
		default:
			t++
		}
	}
	return pairs
}
