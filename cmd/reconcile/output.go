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

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/term"
	"znkr.io/reconcile"
)

// palette holds the colors for the text output.
type palette struct {
	remove, insert, move, stats *color.Color
}

func newPalette(mode string, w io.Writer) palette {
	p := palette{
		remove: color.New(color.FgRed),
		insert: color.New(color.FgGreen),
		move:   color.New(color.FgCyan),
		stats:  color.New(color.Faint),
	}
	enabled := mode == "on"
	if mode == "auto" {
		f, ok := w.(*os.File)
		enabled = ok && term.IsTerminal(int(f.Fd()))
	}
	for _, c := range []*color.Color{p.remove, p.insert, p.move, p.stats} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func writeText(w io.Writer, s reconcile.Script[string], p palette, lines bool) error {
	bw := bufio.NewWriter(w)
	for _, e := range s {
		v := display(e.Value, lines)
		switch {
		case e.Op == reconcile.Keep:
			fmt.Fprintf(bw, "  = %s\n", v)
		case e.Op == reconcile.Remove:
			fmt.Fprintf(bw, "%s\n", p.remove.Sprintf("  - %s", v))
		case e.IsMove():
			fmt.Fprintf(bw, "%s\n", p.move.Sprintf("  ~ %s (from %d)", v, e.OldIndex))
		case e.Op == reconcile.Insert:
			fmt.Fprintf(bw, "%s\n", p.insert.Sprintf("  + %s", v))
		default:
			panic("never reached")
		}
	}
	st := s.Stats()
	summary := fmt.Sprintf("%d kept, %d removed, %d inserted, %d moved, %d deleted", st.Keeps, st.Removes, st.Inserts, st.Moves, st.Deletes())
	fmt.Fprintf(bw, "%s\n", p.stats.Sprint(summary))
	return bw.Flush()
}

// display returns the printable form of an element. Lines are printed without their newline.
func display(v string, lines bool) string {
	if lines {
		return strings.TrimSuffix(v, "\n")
	}
	return v
}

type record struct {
	Op     string `json:"op" msgpack:"op"`
	Source string `json:"source,omitempty" msgpack:"source,omitempty"`
	Old    int    `json:"old" msgpack:"old"`
	New    int    `json:"new" msgpack:"new"`
	Value  string `json:"value" msgpack:"value"`
}

type summary struct {
	Keeps   int `json:"keeps" msgpack:"keeps"`
	Removes int `json:"removes" msgpack:"removes"`
	Inserts int `json:"inserts" msgpack:"inserts"`
	Moves   int `json:"moves" msgpack:"moves"`
	Deletes int `json:"deletes" msgpack:"deletes"`
}

type payload struct {
	Edits []record `json:"edits" msgpack:"edits"`
	Stats summary  `json:"stats" msgpack:"stats"`
}

func newPayload(s reconcile.Script[string]) payload {
	p := payload{Edits: make([]record, 0, len(s))}
	for _, e := range s {
		r := record{
			Op:    strings.ToLower(e.Op.String()),
			Old:   e.OldIndex,
			New:   e.NewIndex,
			Value: e.Value,
		}
		if e.Op == reconcile.Insert {
			r.Source = strings.ToLower(e.Source.String())
		}
		p.Edits = append(p.Edits, r)
	}
	st := s.Stats()
	p.Stats = summary{
		Keeps:   st.Keeps,
		Removes: st.Removes,
		Inserts: st.Inserts,
		Moves:   st.Moves,
		Deletes: st.Deletes(),
	}
	return p
}

func writeJSON(w io.Writer, s reconcile.Script[string]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newPayload(s))
}

func writeMsgpack(w io.Writer, s reconcile.Script[string]) error {
	return msgpack.NewEncoder(w).Encode(newPayload(s))
}
