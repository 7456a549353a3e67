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

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// reconcile.Option.
package config

import "znkr.io/reconcile/internal/edits"

// Mode describes the mode of the anchor matcher.
type Mode int

const (
	// Greedily accept the closest equal pair. This approximates the longest common subsequence
	// without building a full table.
	ModeDefault Mode = iota

	// Find a longest common subsequence irrespective of the cost.
	ModeOptimal
)

// Config collects all configurable parameters for the functions in this module.
type Config struct {
	// Anchor matcher mode.
	Mode Mode

	// If set, removed elements are reused by later insertions of an equal element.
	Moves bool

	// If non-nil, called once for every edit of a finished script.
	Observer func(edits.Event)
}

// Default is the default configuration.
var Default = Config{
	Mode:     ModeDefault,
	Moves:    true,
	Observer: nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not supported by a function.
type Flag int

const (
	Optimal Flag = 1 << iota
	NoMoves
	Observer
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case Optimal:
		return "reconcile.Optimal"
	case NoMoves:
		return "reconcile.NoMoves"
	case Observer:
		return "reconcile.Observe"
	default:
		panic("never reached")
	}
}
