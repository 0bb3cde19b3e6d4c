package btree

import (
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/dbms/blockstore"
)

// Add inserts x and reports whether it was absent. The tree is not modified
// when x is already present.
func (t *BTree[T]) Add(x T) bool {
	w, split, added := t.addRecursive(x, t.ri)
	if !added {
		return false
	}
	if split {
		// Root split: the only place the tree grows in height.
		m := w.remove(0)
		t.write(&w)
		root := t.newNode()
		root.keys[0] = entry[T]{key: m, ok: true}
		root.children[0] = t.ri
		root.children[1] = w.id
		t.write(&root)
		t.log.Debug("btree: root split",
			zap.Int("old_root", t.ri), zap.Int("new_root", root.id), zap.Int("sibling", w.id))
		t.ri = root.id
	}
	t.n++
	return true
}

// addRecursive inserts x into the subtree rooted at ui. If the subtree root
// overflowed it returns the split-off sibling, whose first key is the median
// to pull into the parent. added is false if x was already present.
func (t *BTree[T]) addRecursive(x T, ui int) (sib node[T], split, added bool) {
	u := t.read(ui)
	i := t.findIt(u.keys, x)
	if i < 0 {
		return sib, false, false
	}
	if u.children[i] == blockstore.NoBlock {
		u.add(t, x, blockstore.NoBlock)
		t.write(&u)
	} else {
		w, grew, ok := t.addRecursive(x, u.children[i])
		if !ok {
			return sib, false, false
		}
		if grew {
			m := w.remove(0)
			t.write(&w)
			u.add(t, m, w.id)
			t.write(&u)
		}
	}
	if u.isFull() {
		return u.split(t), true, true
	}
	return sib, false, true
}
