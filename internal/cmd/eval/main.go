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

// eval validates the reconcile algorithm on random and adversarial inputs, or on the lines of
// files changed in the history of a git repository. Every script is applied and checked against
// the input, and the number of kept elements is compared against a longest common subsequence
// computed by diffmatchpatch.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"znkr.io/reconcile/internal/cmd/eval/internal/git"
)

type config struct {
	repo     string
	n        int
	length   int
	alphabet int
	parallel int
	seed     uint64
	stats    string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.repo, "repo", "", "if set, evaluate changed files from the history of this repository")
	flag.IntVar(&cfg.n, "n", 10000, "number of cases to evaluate")
	flag.IntVar(&cfg.length, "len", 200, "maximum length of a sequence")
	flag.IntVar(&cfg.alphabet, "alphabet", 8, "number of distinct elements in random sequences")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "seed for the random inputs")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.Parse()

	if len(flag.CommandLine.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", flag.CommandLine.Args())
		os.Exit(1)
	}
	if cfg.n <= 0 || cfg.length < 0 || cfg.alphabet <= 0 || cfg.parallel <= 0 {
		fmt.Fprintf(os.Stderr, "error: -n, -alphabet and -parallel must be positive, -len must not be negative\n")
		os.Exit(1)
	}

	violations, err := run(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if violations > 0 {
		fmt.Fprintf(os.Stderr, "%d violations (seed %d)\n", violations, cfg.seed)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

func run(cfg *config) (int64, error) {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var processed atomic.Int64
	var violations atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return 0, fmt.Errorf("creating stats file: %v", err)
		}
		defer stats.Close()
	}

	// Totals for the summary, guarded by mu.
	var mu sync.Mutex
	var greedySum, optimalSum float64
	var ratios int
	var results chan result
	if stats != nil {
		results = make(chan result)
	}

	cases := randomCases(cfg)
	if cfg.repo != "" {
		repo, err := git.Open(cfg.repo)
		if err != nil {
			return 0, fmt.Errorf("opening git repository: %v", err)
		}
		defer repo.Close()
		commits, err := repo.RevList()
		if err != nil {
			return 0, fmt.Errorf("reading rev-list: %v", err)
		}
		cases = repoCases(repo, commits, cfg.n, notes)
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.parallel)

	// Render progress
	var ioWG sync.WaitGroup
	render := func() {
		const width = 60
		processed := processed.Load()
		progress := float64(processed) / float64(cfg.n)
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var evalsPerSec int
		if processed > 0 {
			evalsPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d evals/s, %d violations) ", width, bar, 100*progress, evalsPerSec, violations.Load())
	}
	ioWG.Add(1)
	go func() {
		defer ioWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	var statsErr error
	if results != nil {
		ioWG.Add(1)
		go func() {
			defer ioWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("case,kind,N,M,greedy,optimal,lcs,moves,duration_ns\n")
			for r := range results {
				_, err := fmt.Fprintf(w, "%d,%s,%d,%d,%d,%d,%d,%d,%d\n", r.id, r.kind, r.N, r.M, r.greedy, r.optimal, r.lcs, r.moves, r.duration.Nanoseconds())
				if err != nil && statsErr == nil {
					statsErr = fmt.Errorf("writing stats: %v", err)
				}
			}
			if err := w.Flush(); err != nil && statsErr == nil {
				statsErr = fmt.Errorf("flushing stats: %v", err)
			}
		}()
	}

	// Process cases.
	for i, tc := range cases {
		g.Go(func() error {
			defer processed.Add(1)
			r, problems := evaluate(i, tc)
			for _, p := range problems {
				violations.Add(1)
				select {
				case notes <- note{prefix: tc.name, msg: p}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if r.lcs > 0 {
				mu.Lock()
				greedySum += float64(r.greedy) / float64(r.lcs)
				optimalSum += float64(r.optimal) / float64(r.lcs)
				ratios++
				mu.Unlock()
			}
			if results != nil {
				results <- r
			}
			return nil
		})
	}

	// Shutdown
	err := g.Wait()
	close(done)
	if results != nil {
		close(results)
	}
	ioWG.Wait()
	if err != nil {
		return 0, err
	}
	if statsErr != nil {
		return 0, statsErr
	}

	if ratios > 0 {
		fmt.Printf("kept elements relative to a longest common subsequence: greedy %.4f, optimal %.4f (%d cases)\n",
			greedySum/float64(ratios), optimalSum/float64(ratios), ratios)
	}
	return violations.Load(), nil
}

