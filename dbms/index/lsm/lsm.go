// Package lsm wraps Pebble (CockroachDB's LSM storage engine) behind the
// common SSet interface so it can serve as a reference ordered set for the
// block-store B-tree. Pebble runs on its in-memory VFS; nothing touches disk.
package lsm

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/btree-query-bench/blocktree/dbms/index"
)

var _ index.SSet[int64] = (*Set)(nil)

// Set is an ordered set of int64 keys stored in an in-memory Pebble DB.
type Set struct {
	db *pebble.DB
	n  int
}

// Option adjusts the Pebble options used by Open.
type Option func(*pebble.Options)

// WithL0CompactionThreshold sets how many L0 files trigger a compaction.
func WithL0CompactionThreshold(n int) Option {
	return func(o *pebble.Options) { o.L0CompactionThreshold = n }
}

// Open creates an empty Set on a fresh in-memory filesystem.
func Open(opts ...Option) (*Set, error) {
	o := &pebble.Options{
		FS:           vfs.NewMem(),
		MemTableSize: 16 << 20,
		// Keep a few memtables so one can be flushed while the other is active.
		MemTableStopWritesThreshold: 4,
		// L0 compaction trigger.
		L0CompactionThreshold: 4,
		L0StopWritesThreshold: 12,
	}
	for _, opt := range opts {
		opt(o)
	}

	db, err := pebble.Open("", o)
	if err != nil {
		return nil, errors.Wrap(err, "lsm: open")
	}
	return &Set{db: db}, nil
}

// Close shuts Pebble down.
func (s *Set) Close() error {
	return errors.Wrap(s.db.Close(), "lsm: close")
}

// Size returns the number of keys in the set.
func (s *Set) Size() int {
	return s.n
}

// Add inserts x and reports whether it was absent.
func (s *Set) Add(x int64) bool {
	k := encodeKey(x)
	if s.has(k) {
		return false
	}
	if err := s.db.Set(k, nil, pebble.NoSync); err != nil {
		panic(errors.Wrapf(err, "lsm: set %d", x))
	}
	s.n++
	return true
}

// Remove deletes x and returns it, or false if x was absent.
func (s *Set) Remove(x int64) (int64, bool) {
	k := encodeKey(x)
	if !s.has(k) {
		return 0, false
	}
	if err := s.db.Delete(k, pebble.NoSync); err != nil {
		panic(errors.Wrapf(err, "lsm: delete %d", x))
	}
	s.n--
	return x, true
}

// Find returns the smallest key >= x, or false if none.
func (s *Set) Find(x int64) (int64, bool) {
	iter, err := s.db.NewIter(nil)
	if err != nil {
		panic(errors.Wrap(err, "lsm: new iter"))
	}
	defer iter.Close()

	if !iter.SeekGE(encodeKey(x)) {
		return 0, false
	}
	k := iter.Key()
	if len(k) != 8 {
		panic(errors.AssertionFailedf("lsm: unexpected key length %d", len(k)))
	}
	return decodeKey(k), true
}

func (s *Set) has(k []byte) bool {
	_, closer, err := s.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return false
	}
	if err != nil {
		panic(errors.Wrap(err, "lsm: get"))
	}
	closer.Close()
	return true
}

// ─── Key encoding ─────────────────────────────────────────────────────────────

// encodeKey encodes an int64 as a big-endian 8-byte slice with the sign bit
// flipped, so bytewise order matches signed integer order.
func encodeKey(k int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(k)^(1<<63))
	return b
}

func decodeKey(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63))
}
