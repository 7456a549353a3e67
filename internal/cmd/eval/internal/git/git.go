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

// Package git reads file revisions from a repository for evaluations.
package git

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// nullID is the blob ID git reports for a file that doesn't exist on one side of a change.
const nullID = "0000000000000000000000000000000000000000"

// Repo is a git repository. All methods are safe for concurrent use.
type Repo struct {
	dir string

	mu  sync.Mutex // guards the cat-file process
	cat *exec.Cmd
	in  io.WriteCloser
	out *bufio.Reader
}

// Open starts a reader for the repository in dir. The caller must call Close.
func Open(dir string) (*Repo, error) {
	if _, err := git("-C", dir, "rev-parse", "--git-dir"); err != nil {
		return nil, err
	}

	cmd := exec.Command("git", "-C", dir, "cat-file", "--batch")
	in, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdin: %v", err)
	}
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("connecting stdout: %v", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git cat-file: %v", err)
	}
	return &Repo{
		dir: dir,
		cat: cmd,
		in:  in,
		out: bufio.NewReader(out),
	}, nil
}

// Close stops the reader.
func (r *Repo) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.in.Close()
	return r.cat.Wait()
}

// RevList returns the IDs of all commits reachable from HEAD, newest first. Merges are skipped.
func (r *Repo) RevList() ([]string, error) {
	out, err := git("-C", r.dir, "rev-list", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Change is a file that was modified by a commit.
type Change struct {
	Name  string
	OldID string
	NewID string
}

// Changes returns the files modified by commit. Added and deleted files are skipped.
func (r *Repo) Changes(commit string) ([]Change, error) {
	out, err := git("-C", r.dir, "diff-tree", "-r", "--no-commit-id", commit)
	if err != nil {
		return nil, err
	}
	var changes []Change
	for line := range strings.Lines(out) {
		// :<old mode> <new mode> <old id> <new id> <status>\t<name>
		meta, name, ok := strings.Cut(strings.TrimSuffix(line, "\n"), "\t")
		if !ok || !strings.HasPrefix(meta, ":") {
			return nil, fmt.Errorf("unexpected diff-tree output: %q", line)
		}
		fields := strings.Fields(meta[1:])
		if len(fields) != 5 {
			return nil, fmt.Errorf("unexpected diff-tree output: %q", line)
		}
		if fields[2] == nullID || fields[3] == nullID {
			continue
		}
		changes = append(changes, Change{Name: name, OldID: fields[2], NewID: fields[3]})
	}
	return changes, nil
}

// Read returns the contents of the blob with the given ID.
func (r *Repo) Read(id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := fmt.Fprintln(r.in, id); err != nil {
		return "", fmt.Errorf("requesting %s: %v", id, err)
	}
	// <id> <type> <size>\n<contents>\n
	header, err := r.out.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading %s: %v", id, err)
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return "", fmt.Errorf("reading %s: unexpected header %q", id, header)
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", fmt.Errorf("reading %s: %v", id, err)
	}
	buf := make([]byte, n+1)
	if _, err := io.ReadFull(r.out, buf); err != nil {
		return "", fmt.Errorf("reading %s: %v", id, err)
	}
	return string(buf[:n]), nil
}

// IsBinary reports whether s looks like the contents of a binary file.
func IsBinary(s string) bool {
	return strings.IndexByte(s[:min(len(s), 8000)], 0) >= 0
}

func git(args ...string) (string, error) {
	var wout, werr bytes.Buffer
	cmd := exec.Command("git", args...)
	cmd.Stdout = &wout
	cmd.Stderr = &werr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("running git %v: %v\n%s", args, err, werr.String())
		}
		return "", fmt.Errorf("running git %v: %v", args, err)
	}
	return wout.String(), nil
}
