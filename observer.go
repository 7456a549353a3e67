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
	"context"
	"log/slog"

	"znkr.io/reconcile/internal/edits"
)

// Event describes an edit of a script in a form that doesn't depend on the element type.
type Event = edits.Event

// Observer receives an [Event] for every edit of a script, see [Observe].
type Observer func(Event)

// LogObserver returns an observer that logs every edit as a debug record to l.
func LogObserver(l *slog.Logger) Observer {
	return func(e Event) {
		attrs := []slog.Attr{
			slog.String("op", e.Op.String()),
			slog.Int("old", e.OldIndex),
			slog.Int("new", e.NewIndex),
			slog.Any("value", e.Value),
		}
		if e.Op == Insert {
			attrs = append(attrs, slog.String("source", e.Source.String()))
		}
		l.LogAttrs(context.Background(), slog.LevelDebug, "edit", attrs...)
	}
}
