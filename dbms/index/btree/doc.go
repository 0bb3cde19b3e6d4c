// Package btree implements a B-tree ordered set whose nodes live in a
// blockstore.Store and are addressed by block ID instead of by pointer.
//
// Node layout (one block per node):
//
//	id        int          block ID of this node, fixed at creation
//	keys      [b]entry     left-packed sorted keys, unused slots empty
//	children  [b+1]int     child block IDs, NoBlock where absent
//
// children[i] holds the keys strictly between keys[i-1] and keys[i]. A node
// is a leaf iff children[0] is NoBlock. b is odd and every non-root node
// keeps at least b/2-1 keys once an operation completes.
//
// Every operation reads the nodes it touches out of the store, mutates its
// private copies and writes them back, so nothing is shared between
// operations except the store itself. A BTree is not safe for concurrent use.
package btree
