package btree

import (
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/dbms/blockstore"
)

// Remove deletes x and returns the stored key, or false if x is absent.
func (t *BTree[T]) Remove(x T) (T, bool) {
	y, ok := t.removeRecursive(x, t.ri)
	if !ok {
		return y, false
	}
	t.n--
	r := t.read(t.ri)
	if r.size() == 0 && t.n > 0 {
		// The root emptied into its only child: the tree loses a level.
		old := t.ri
		t.ri = r.children[0]
		t.bs.Free(old)
		t.log.Debug("btree: root collapsed", zap.Int("old_root", old), zap.Int("new_root", t.ri))
	}
	return y, true
}

// removeRecursive deletes x from the subtree rooted at ui and repairs any
// underflow it leaves in ui's children.
func (t *BTree[T]) removeRecursive(x T, ui int) (T, bool) {
	var zero T
	if ui == blockstore.NoBlock {
		return zero, false
	}
	u := t.read(ui)
	i := t.findIt(u.keys, x)
	if i < 0 {
		i = -(i + 1)
		if u.isLeaf() {
			y := u.remove(i)
			t.write(&u)
			return y, true
		}
		// Replace x with its successor, the smallest key of the right subtree.
		m := t.removeSmallest(u.children[i+1])
		y := u.keys[i].key
		u.keys[i] = entry[T]{key: m, ok: true}
		t.write(&u)
		t.checkUnderflow(&u, i+1)
		return y, true
	}
	y, ok := t.removeRecursive(x, u.children[i])
	if ok {
		t.checkUnderflow(&u, i)
	}
	return y, ok
}

// removeSmallest deletes and returns the leftmost key under ui.
func (t *BTree[T]) removeSmallest(ui int) T {
	u := t.read(ui)
	if u.isLeaf() {
		if u.size() == 0 {
			panic(t.assertf("removeSmallest reached empty leaf %d", u.id))
		}
		y := u.remove(0)
		t.write(&u)
		return y
	}
	y := t.removeSmallest(u.children[0])
	t.checkUnderflow(&u, 0)
	return y
}

// ─── Underflow repair ─────────────────────────────────────────────────────────

// checkUnderflow restores the minimum fill of u.children[i] by borrowing from
// or merging with a sibling. The leftmost child uses its right sibling, every
// other child its left sibling.
func (t *BTree[T]) checkUnderflow(u *node[T], i int) {
	if u.children[i] == blockstore.NoBlock {
		return
	}
	if i == 0 {
		t.checkUnderflowZero(u, i)
	} else {
		t.checkUnderflowNonZero(u, i)
	}
}

func (t *BTree[T]) checkUnderflowZero(u *node[T], i int) {
	w := t.read(u.children[i])
	if w.size() >= t.half-1 {
		return
	}
	v := t.read(u.children[i+1])
	if v.size() > t.half {
		t.shiftRL(u, i, &v, &w)
	} else {
		t.merge(u, i, &w, &v)
	}
}

func (t *BTree[T]) checkUnderflowNonZero(u *node[T], i int) {
	w := t.read(u.children[i])
	if w.size() >= t.half-1 {
		return
	}
	v := t.read(u.children[i-1])
	if v.size() > t.half {
		t.shiftLR(u, i-1, &v, &w)
	} else {
		t.merge(u, i-1, &v, &w)
	}
}

// merge folds w = u.children[i+1] and the separator u.keys[i] into
// v = u.children[i], then frees w.
func (t *BTree[T]) merge(u *node[T], i int, v, w *node[T]) {
	if v.id != u.children[i] || w.id != u.children[i+1] {
		panic(t.assertf("merge of non-adjacent children %d, %d under %d", v.id, w.id, u.id))
	}
	sv, sw := v.size(), w.size()
	if sv+sw+1 > t.b {
		panic(t.assertf("merge of %d and %d overflows (%d+%d+1 keys)", v.id, w.id, sv, sw))
	}
	copy(v.keys[sv+1:], w.keys[:sw])
	copy(v.children[sv+1:], w.children[:sw+1])
	v.keys[sv] = u.keys[i]

	// Drop the separator and the pointer to w from u.
	copy(u.keys[i:], u.keys[i+1:])
	u.keys[t.b-1] = entry[T]{}
	copy(u.children[i+1:], u.children[i+2:])
	u.children[t.b] = blockstore.NoBlock

	t.write(u)
	t.write(v)
	t.bs.Free(w.id)
	t.log.Debug("btree: merged siblings",
		zap.Int("parent", u.id), zap.Int("into", v.id), zap.Int("freed", w.id))
}

// shiftLR moves keys from v = u.children[i] rightwards through the separator
// into w = u.children[i+1] until both hold about the same number of keys.
func (t *BTree[T]) shiftLR(u *node[T], i int, v, w *node[T]) {
	sv, sw := v.size(), w.size()
	shift := (sv+sw)/2 - sw

	// Open shift slots at the front of w.
	copy(w.keys[shift:], w.keys[:t.b-shift])
	copy(w.children[shift:], w.children[:t.b+1-shift])

	w.keys[shift-1] = u.keys[i]
	u.keys[i] = v.keys[sv-shift]
	v.keys[sv-shift] = entry[T]{}
	for j := 0; j < shift-1; j++ {
		w.keys[j] = v.keys[sv-shift+1+j]
		v.keys[sv-shift+1+j] = entry[T]{}
	}
	for j := 0; j < shift; j++ {
		w.children[j] = v.children[sv-shift+1+j]
		v.children[sv-shift+1+j] = blockstore.NoBlock
	}
	t.write(u)
	t.write(v)
	t.write(w)
}

// shiftRL moves keys from v = u.children[i+1] leftwards through the
// separator into w = u.children[i] until both hold about the same number of
// keys.
func (t *BTree[T]) shiftRL(u *node[T], i int, v, w *node[T]) {
	sv, sw := v.size(), w.size()
	shift := (sv+sw)/2 - sw

	w.keys[sw] = u.keys[i]
	copy(w.keys[sw+1:], v.keys[:shift-1])
	copy(w.children[sw+1:], v.children[:shift])
	u.keys[i] = v.keys[shift-1]

	// Close the gap at the front of v.
	copy(v.keys, v.keys[shift:])
	for j := sv - shift; j < t.b; j++ {
		v.keys[j] = entry[T]{}
	}
	copy(v.children, v.children[shift:])
	for j := sv - shift + 1; j <= t.b; j++ {
		v.children[j] = blockstore.NoBlock
	}
	t.write(u)
	t.write(v)
	t.write(w)
}
