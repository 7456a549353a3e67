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

import "znkr.io/reconcile/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// Optimal finds a longest common subsequence irrespective of the cost. By default, the anchors are
// found greedily, which is cheaper for inputs with few differences but can keep fewer elements
// than possible.
//
// With this option, time and space complexity are O(NM) where N and M are the number of elements
// that remain after stripping the common prefix and suffix.
func Optimal() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Mode = config.ModeOptimal
		return config.Optimal
	}
}

// NoMoves disables recycling of removed elements. Every insertion is [Fresh].
func NoMoves() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Moves = false
		return config.NoMoves
	}
}

// Observe calls o once for every edit of the resulting script, in script order.
func Observe(o Observer) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Observer = o
		return config.Observer
	}
}
