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
// Package textseq splits text into sequences for [znkr.io/reconcile.Diff] and joins them back.
//
// [znkr.io/reconcile.Diff]: https://pkg.go.dev/znkr.io/reconcile#Diff
package textseq

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Split splits s at every occurrence of sep. If sep is empty, s is split into user-perceived
// characters (see [Graphemes]). An empty s yields an empty sequence.
func Split(s, sep string) []string {
	if s == "" {
		return nil
	}
	if sep == "" {
		return Graphemes(s)
	}
	return strings.Split(s, sep)
}

// Graphemes splits s into extended grapheme clusters. Unlike splitting into runes, this keeps
// combining marks, emoji sequences and CRLF together.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, uniseg.GraphemeClusterCount(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}

// Lines splits s into lines. Every line keeps its trailing newline, a missing newline at the end
// of s is not an extra empty line.
func Lines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}

// Join concatenates the elements of a sequence created by [Split] with sep. Sequences created by
// [Graphemes] or [Lines] are joined with an empty sep.
func Join(seq []string, sep string) string {
	return strings.Join(seq, sep)
}
