package btree

import "github.com/btree-query-bench/blocktree/dbms/blockstore"

// entry is one key slot. ok is false for the empty padding after the last key.
type entry[T any] struct {
	key T
	ok  bool
}

type node[T any] struct {
	id       int
	keys     []entry[T] // len b
	children []int      // len b+1
}

// Clone implements blockstore.Block.
func (u node[T]) Clone() node[T] {
	return node[T]{
		id:       u.id,
		keys:     append([]entry[T](nil), u.keys...),
		children: append([]int(nil), u.children...),
	}
}

// newNode places an empty leaf in the store and returns it.
func (t *BTree[T]) newNode() node[T] {
	u := node[T]{
		keys:     make([]entry[T], t.b),
		children: make([]int, t.b+1),
	}
	for i := range u.children {
		u.children[i] = blockstore.NoBlock
	}
	u.id = t.bs.Place(u)
	t.bs.Write(u.id, u)
	return u
}

func (u *node[T]) isLeaf() bool {
	return u.children[0] == blockstore.NoBlock
}

func (u *node[T]) isFull() bool {
	return u.keys[len(u.keys)-1].ok
}

// size returns the number of populated key slots.
func (u *node[T]) size() int {
	lo, hi := 0, len(u.keys)
	for lo != hi {
		m := (lo + hi) / 2
		if !u.keys[m].ok {
			hi = m
		} else {
			lo = m + 1
		}
	}
	return lo
}

// add inserts x with ci as its right child. u must not be full. Returns false
// if x is already present.
func (u *node[T]) add(t *BTree[T], x T, ci int) bool {
	i := t.findIt(u.keys, x)
	if i < 0 {
		return false
	}
	b := len(u.keys)
	copy(u.keys[i+1:], u.keys[i:b-1])
	u.keys[i] = entry[T]{key: x, ok: true}
	copy(u.children[i+2:], u.children[i+1:b])
	u.children[i+1] = ci
	return true
}

// remove deletes and returns keys[i]. Children are not moved.
func (u *node[T]) remove(i int) T {
	y := u.keys[i].key
	copy(u.keys[i:], u.keys[i+1:])
	u.keys[len(u.keys)-1] = entry[T]{}
	return y
}

// split moves the upper half of a full node into a new sibling and writes
// both. The sibling's first key is the median the caller must pull up.
func (u *node[T]) split(t *BTree[T]) node[T] {
	if !u.isFull() {
		panic(t.assertf("split of non-full node %d", u.id))
	}
	w := t.newNode()
	j := len(u.keys) / 2
	for i := j; i < len(u.keys); i++ {
		w.keys[i-j] = u.keys[i]
		u.keys[i] = entry[T]{}
	}
	for i := j + 1; i < len(u.children); i++ {
		w.children[i-j-1] = u.children[i]
		u.children[i] = blockstore.NoBlock
	}
	t.bs.Write(u.id, *u)
	t.bs.Write(w.id, w)
	return w
}

// findIt binary searches the left-packed keys for x, treating empty slots as
// larger than any key. It returns the index of the first key greater than x,
// or -(i+1) if keys[i] equals x.
func (t *BTree[T]) findIt(a []entry[T], x T) int {
	lo, hi := 0, len(a)
	for lo != hi {
		m := (lo + hi) / 2
		if !a[m].ok {
			hi = m
			continue
		}
		switch c := t.cmp(x, a[m].key); {
		case c < 0:
			hi = m
		case c > 0:
			lo = m + 1
		default:
			return -m - 1
		}
	}
	return lo
}
