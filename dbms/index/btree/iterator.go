package btree

import "github.com/btree-query-bench/blocktree/dbms/blockstore"

// Ascend calls fn for every key in ascending order until fn returns false.
func (t *BTree[T]) Ascend(fn func(T) bool) {
	t.ascend(t.ri, fn)
}

// AscendGreaterOrEqual calls fn for every key >= pivot in ascending order
// until fn returns false.
func (t *BTree[T]) AscendGreaterOrEqual(pivot T, fn func(T) bool) {
	t.ascendFrom(t.ri, pivot, fn)
}

// Keys returns all keys in ascending order.
func (t *BTree[T]) Keys() []T {
	out := make([]T, 0, t.n)
	t.Ascend(func(x T) bool {
		out = append(out, x)
		return true
	})
	return out
}

func (t *BTree[T]) ascend(id int, fn func(T) bool) bool {
	if id == blockstore.NoBlock {
		return true
	}
	u := t.read(id)
	n := u.size()
	for i := 0; i < n; i++ {
		if !t.ascend(u.children[i], fn) || !fn(u.keys[i].key) {
			return false
		}
	}
	return t.ascend(u.children[n], fn)
}

func (t *BTree[T]) ascendFrom(id int, pivot T, fn func(T) bool) bool {
	if id == blockstore.NoBlock {
		return true
	}
	u := t.read(id)
	n := u.size()
	i := t.findIt(u.keys, pivot)
	if i < 0 {
		// Exact hit: everything left of keys[i] is smaller than pivot.
		i = -(i + 1)
	} else if !t.ascendFrom(u.children[i], pivot, fn) {
		return false
	}
	for ; i < n; i++ {
		if !fn(u.keys[i].key) || !t.ascend(u.children[i+1], fn) {
			return false
		}
	}
	return true
}
