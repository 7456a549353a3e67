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

package recycle

// Cache holds removed elements, identified by their index in the old sequence, until they are
// reused. Entries with the same key are handed out first in, first out.
//
// The zero value is an empty cache.
type Cache[K comparable] struct {
	buckets map[K]*bucket
	n       int
}

// bucket is a queue of indexes. Popped entries stay in the backing slice, head points at the
// oldest entry that's still available.
type bucket struct {
	idx  []int
	head int
}

// Push adds the element at index idx under key k.
func (c *Cache[K]) Push(k K, idx int) {
	if c.buckets == nil {
		c.buckets = make(map[K]*bucket)
	}
	b := c.buckets[k]
	if b == nil {
		b = &bucket{}
		c.buckets[k] = b
	}
	b.idx = append(b.idx, idx)
	c.n++
}

// Pop removes the oldest entry for k and returns its index. It returns false if there is none.
func (c *Cache[K]) Pop(k K) (int, bool) {
	b := c.buckets[k]
	if b == nil || b.head == len(b.idx) {
		return -1, false
	}
	idx := b.idx[b.head]
	b.head++
	c.n--
	return idx, true
}

// Len returns the number of entries that have not been popped yet.
func (c *Cache[K]) Len() int { return c.n }

// CacheFunc is like Cache, but uses an equality function instead of a key. Popping an entry is
// linear in the number of entries pushed so far.
type CacheFunc[T any] struct {
	eq      func(a, b T) bool
	entries []entry[T]
	n       int
}

type entry[T any] struct {
	v    T
	idx  int
	used bool
}

// NewCacheFunc returns an empty cache that compares elements with eq.
func NewCacheFunc[T any](eq func(a, b T) bool) *CacheFunc[T] {
	return &CacheFunc[T]{eq: eq}
}

// Push adds v, found at index idx.
func (c *CacheFunc[T]) Push(v T, idx int) {
	c.entries = append(c.entries, entry[T]{v: v, idx: idx})
	c.n++
}

// Pop removes the oldest entry equal to v and returns its index. It returns false if there is
// none.
func (c *CacheFunc[T]) Pop(v T) (int, bool) {
	for i := range c.entries {
		e := &c.entries[i]
		if !e.used && c.eq(e.v, v) {
			e.used = true
			c.n--
			return e.idx, true
		}
	}
	return -1, false
}

// Len returns the number of entries that have not been popped yet.
func (c *CacheFunc[T]) Len() int { return c.n }
