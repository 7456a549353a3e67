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

// Package reconcile computes edit scripts that transform one slice into another and applies them.
//
// The main function is [Diff], which returns a [Script] of keep, remove and insert edits. Unlike a
// plain diff, an insertion can reuse an element that was removed earlier in the script. Such a
// pair is a move: the element is relocated rather than destroyed and recreated. This matters when
// elements carry identity or state, for example when reconciling the children of a UI node. Use
// [ApplyTo] to replay a script on such a list, or [Apply] to materialize the new slice.
//
// The elements that are kept are found in three stages. First, the common prefix and suffix are
// stripped. Then, by default, anchors are accepted greedily: the closest matching pair (by index
// sum) after the last anchor is taken next. Use [Optimal] to find a longest common subsequence
// instead. Finally, the gaps between anchors are filled with removals followed by insertions, and
// insertions are matched against the removals seen so far, first removed, first reused.
//
// Performance: With the default, time complexity is O(N M log M) in the worst case and close to
// linear for similar inputs. With [Optimal], time and space complexity are O(NM). N and M are the
// lengths of the inputs after stripping the common prefix and suffix.
//
// Note: For splitting text into sequences, please see [znkr.io/reconcile/textseq].
//
// [znkr.io/reconcile/textseq]: https://pkg.go.dev/znkr.io/reconcile/textseq
package reconcile
