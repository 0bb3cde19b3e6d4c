package btree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/blocktree/dbms/blockstore"
)

func keysOf(u node[int]) []int {
	var out []int
	for _, e := range u.keys {
		if e.ok {
			out = append(out, e.key)
		}
	}
	return out
}

func TestOrderCoercion(t *testing.T) {
	for _, tc := range []struct{ in, want int }{
		{0, 5}, {3, 5}, {4, 5}, {5, 5}, {6, 7}, {11, 11}, {64, 65},
	} {
		require.Equal(t, tc.want, New[int](tc.in).Order(), "New(%d)", tc.in)
	}
	tr := New[int](11)
	require.Equal(t, 5, tr.half)
}

func TestFindIt(t *testing.T) {
	tr := New[int](7)
	u := tr.newNode()
	for _, k := range []int{10, 20, 30, 40} {
		require.True(t, u.add(tr, k, blockstore.NoBlock))
	}

	for _, tc := range []struct{ x, want int }{
		{5, 0}, {15, 1}, {25, 2}, {35, 3}, {45, 4},
		{10, -1}, {20, -2}, {30, -3}, {40, -4},
	} {
		require.Equal(t, tc.want, tr.findIt(u.keys, tc.x), "findIt(%d)", tc.x)
	}

	empty := tr.newNode()
	require.Equal(t, 0, tr.findIt(empty.keys, 1))
}

func TestNodeSizeAndFull(t *testing.T) {
	tr := New[int](5)
	u := tr.newNode()
	require.Zero(t, u.size())
	require.True(t, u.isLeaf())
	require.False(t, u.isFull())

	for i, k := range []int{3, 1, 4, 0, 2} {
		require.Equal(t, i, u.size())
		require.True(t, u.add(tr, k, blockstore.NoBlock))
	}
	require.Equal(t, 5, u.size())
	require.True(t, u.isFull())
	require.Equal(t, []int{0, 1, 2, 3, 4}, keysOf(u))
}

func TestNodeAddPlacesRightChild(t *testing.T) {
	tr := New[int](5)
	u := tr.newNode()
	u.keys[0] = entry[int]{key: 10, ok: true}
	u.keys[1] = entry[int]{key: 30, ok: true}
	u.children[0], u.children[1], u.children[2] = 100, 101, 102

	require.True(t, u.add(tr, 20, 200))
	require.Equal(t, []int{10, 20, 30}, keysOf(u))
	require.Equal(t, []int{100, 101, 200, 102, blockstore.NoBlock, blockstore.NoBlock}, u.children)

	require.True(t, u.add(tr, 5, 300))
	require.Equal(t, []int{5, 10, 20, 30}, keysOf(u))
	require.Equal(t, []int{100, 300, 101, 200, 102, blockstore.NoBlock}, u.children)

	require.False(t, u.add(tr, 20, 400), "duplicate key must be rejected")
	require.Equal(t, []int{5, 10, 20, 30}, keysOf(u))
}

func TestNodeRemove(t *testing.T) {
	tr := New[int](5)
	u := tr.newNode()
	for _, k := range []int{1, 2, 3} {
		u.add(tr, k, blockstore.NoBlock)
	}
	require.Equal(t, 2, u.remove(1))
	require.Equal(t, []int{1, 3}, keysOf(u))
	require.Equal(t, 1, u.remove(0))
	require.Equal(t, 3, u.remove(0))
	require.Zero(t, u.size())
}

func TestNodeSplit(t *testing.T) {
	tr := New[int](5)
	u := tr.newNode()
	for k := 0; k < 5; k++ {
		u.add(tr, 10*k, blockstore.NoBlock)
	}
	for i := range u.children {
		u.children[i] = 100 + i
	}

	w := u.split(tr)
	require.NotEqual(t, u.id, w.id)
	require.Equal(t, []int{0, 10}, keysOf(u))
	require.Equal(t, []int{20, 30, 40}, keysOf(w), "median stays in the sibling's first slot")
	require.Equal(t, []int{100, 101, 102, blockstore.NoBlock, blockstore.NoBlock, blockstore.NoBlock}, u.children)
	require.Equal(t, []int{103, 104, 105, blockstore.NoBlock, blockstore.NoBlock, blockstore.NoBlock}, w.children)

	// Both halves were persisted.
	su, ok := tr.bs.Read(u.id)
	require.True(t, ok)
	require.Equal(t, keysOf(u), keysOf(su))
	sw, ok := tr.bs.Read(w.id)
	require.True(t, ok)
	require.Equal(t, keysOf(w), keysOf(sw))
}

func TestSplitNonFullPanics(t *testing.T) {
	tr := New[int](5)
	u := tr.newNode()
	require.Panics(t, func() { u.split(tr) })
}

func TestNodeClone(t *testing.T) {
	tr := New[int](5)
	u := tr.newNode()
	u.add(tr, 1, blockstore.NoBlock)
	c := u.Clone()
	c.keys[0].key = 99
	c.children[0] = 7
	require.Equal(t, 1, u.keys[0].key)
	require.Equal(t, blockstore.NoBlock, u.children[0])
}
