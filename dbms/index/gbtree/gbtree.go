// Package gbtree adapts github.com/google/btree to the SSet interface. It is
// a pointer-based in-memory B-tree used as a reference set and as a baseline
// in benchmarks.
package gbtree

import (
	"cmp"

	"github.com/google/btree"

	"github.com/btree-query-bench/blocktree/dbms/index"
)

var _ index.SSet[int64] = (*Set[int64])(nil)

// Set is an ordered set backed by a google/btree BTreeG.
type Set[T cmp.Ordered] struct {
	t *btree.BTreeG[T]
}

// New returns an empty Set whose nodes hold up to 2*degree-1 items.
func New[T cmp.Ordered](degree int) *Set[T] {
	return &Set[T]{t: btree.NewG[T](max(degree, 2), cmp.Less[T])}
}

// Size returns the number of stored items.
func (s *Set[T]) Size() int {
	return s.t.Len()
}

// Add inserts x and reports whether it was absent.
func (s *Set[T]) Add(x T) bool {
	if s.t.Has(x) {
		return false
	}
	s.t.ReplaceOrInsert(x)
	return true
}

// Remove deletes x and returns it, or false if x was absent.
func (s *Set[T]) Remove(x T) (T, bool) {
	return s.t.Delete(x)
}

// Find returns the smallest item >= x, or false if none.
func (s *Set[T]) Find(x T) (y T, ok bool) {
	s.t.AscendGreaterOrEqual(x, func(item T) bool {
		y, ok = item, true
		return false
	})
	return y, ok
}
