// Package blockstore simulates block-addressed storage in memory.
//
// A Store hands out integer block IDs, reuses IDs after they are freed, and
// supports point reads and writes by ID. Every value crossing the Store
// boundary is cloned, so a block read out of the store is an independent
// copy: mutations stay invisible until the caller writes the block back.
package blockstore

import "github.com/cockroachdb/errors"

// NoBlock is the sentinel ID that never refers to a live block.
const NoBlock = -1

// Block is a value that can be stored in a Store.
type Block[T any] interface {
	Clone() T
}

// Store is a growable array of block slots plus a free-ID list.
type Store[T Block[T]] struct {
	blocks []slot[T]
	free   []int // LIFO stack of vacated IDs
}

type slot[T any] struct {
	val  T
	live bool
}

// New returns an empty Store.
func New[T Block[T]]() *Store[T] {
	return &Store[T]{}
}

// Place stores v in a recycled slot if one is free, else in a new slot, and
// returns the block ID.
func (s *Store[T]) Place(v T) int {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.blocks[id] = slot[T]{val: v.Clone(), live: true}
		return id
	}
	s.blocks = append(s.blocks, slot[T]{val: v.Clone(), live: true})
	return len(s.blocks) - 1
}

// Free vacates block id and makes it available to Place.
func (s *Store[T]) Free(id int) {
	if !s.owns(id) {
		panic(errors.AssertionFailedf("blockstore: free of unowned block %d", id))
	}
	var zero T
	s.blocks[id] = slot[T]{val: zero}
	s.free = append(s.free, id)
}

// Read returns a copy of block id. ok is false if id is out of range or free.
func (s *Store[T]) Read(id int) (v T, ok bool) {
	if !s.owns(id) {
		return v, false
	}
	return s.blocks[id].val.Clone(), true
}

// Write overwrites block id with a copy of v. The caller must own id.
func (s *Store[T]) Write(id int, v T) {
	if !s.owns(id) {
		panic(errors.AssertionFailedf("blockstore: write to unowned block %d", id))
	}
	s.blocks[id].val = v.Clone()
}

// Len returns the number of slots ever allocated.
func (s *Store[T]) Len() int {
	return len(s.blocks)
}

// Live returns the number of blocks currently in use.
func (s *Store[T]) Live() int {
	return len(s.blocks) - len(s.free)
}

// FreeCount returns the number of vacated slots awaiting reuse.
func (s *Store[T]) FreeCount() int {
	return len(s.free)
}

func (s *Store[T]) owns(id int) bool {
	return id >= 0 && id < len(s.blocks) && s.blocks[id].live
}
