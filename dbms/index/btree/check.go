package btree

import (
	"github.com/cockroachdb/errors"

	"github.com/btree-query-bench/blocktree/dbms/blockstore"
)

// Stats summarises the shape of a tree.
type Stats struct {
	Order      int // max keys per node
	Keys       int
	Nodes      int // live blocks
	Height     int // levels, 1 for a lone root leaf
	FreeBlocks int // vacated blocks awaiting reuse
}

// Stats returns the current shape of the tree.
func (t *BTree[T]) Stats() Stats {
	return Stats{
		Order:      t.b,
		Keys:       t.n,
		Nodes:      t.bs.Live(),
		Height:     t.Height(),
		FreeBlocks: t.bs.FreeCount(),
	}
}

// Height returns the number of levels in the tree.
func (t *BTree[T]) Height() int {
	h := 0
	for id := t.ri; id != blockstore.NoBlock; h++ {
		id = t.read(id).children[0]
	}
	return h
}

// Check walks the whole tree and returns an error describing the first
// structural violation found: unsorted or out-of-range keys, gaps in the key
// or child arrays, underfull or full nodes, uneven leaf depth, a key count
// that disagrees with Size, or live blocks the root cannot reach.
func (t *BTree[T]) Check() error {
	c := checker[T]{t: t, leafDepth: -1}
	if err := c.walk(t.ri, 0, nil, nil); err != nil {
		return err
	}
	if c.keys != t.n {
		return errors.Errorf("btree: counted %d keys, size is %d", c.keys, t.n)
	}
	if live := t.bs.Live(); c.nodes != live {
		return errors.Errorf("btree: %d nodes reachable, %d blocks live", c.nodes, live)
	}
	return nil
}

type checker[T any] struct {
	t         *BTree[T]
	leafDepth int
	keys      int
	nodes     int
}

// walk checks the subtree at id, whose keys must lie strictly between lo and
// hi (nil bounds are open).
func (c *checker[T]) walk(id, depth int, lo, hi *T) error {
	t := c.t
	u, ok := t.bs.Read(id)
	if !ok {
		return errors.Errorf("btree: block %d is not live", id)
	}
	if u.id != id {
		return errors.Errorf("btree: block %d claims id %d", id, u.id)
	}
	c.nodes++
	n := u.size()
	c.keys += n

	for i := n; i < t.b; i++ {
		if u.keys[i].ok {
			return errors.Errorf("btree: node %d: key slot %d populated after gap", id, i)
		}
	}
	if n == t.b {
		return errors.Errorf("btree: node %d is full at rest", id)
	}
	if id != t.ri && n < t.half-1 {
		return errors.Errorf("btree: node %d underflows: %d keys, want >= %d", id, n, t.half-1)
	}
	for i := 0; i < n; i++ {
		k := u.keys[i].key
		if i > 0 && t.cmp(u.keys[i-1].key, k) >= 0 {
			return errors.Errorf("btree: node %d: keys %d and %d out of order", id, i-1, i)
		}
		if (lo != nil && t.cmp(*lo, k) >= 0) || (hi != nil && t.cmp(k, *hi) >= 0) {
			return errors.Errorf("btree: node %d: key %d outside parent separators", id, i)
		}
	}

	if u.isLeaf() {
		for i, ci := range u.children {
			if ci != blockstore.NoBlock {
				return errors.Errorf("btree: leaf %d has child %d at %d", id, ci, i)
			}
		}
		if c.leafDepth < 0 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return errors.Errorf("btree: leaf %d at depth %d, want %d", id, depth, c.leafDepth)
		}
		return nil
	}

	for i := n + 1; i <= t.b; i++ {
		if u.children[i] != blockstore.NoBlock {
			return errors.Errorf("btree: node %d: child slot %d populated past %d keys", id, i, n)
		}
	}
	for i := 0; i <= n; i++ {
		if u.children[i] == blockstore.NoBlock {
			return errors.Errorf("btree: internal node %d missing child %d", id, i)
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = &u.keys[i-1].key
		}
		if i < n {
			chi = &u.keys[i].key
		}
		if err := c.walk(u.children[i], depth+1, clo, chi); err != nil {
			return err
		}
	}
	return nil
}
