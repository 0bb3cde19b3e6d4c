package btree

import (
	"cmp"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/dbms/blockstore"
	"github.com/btree-query-bench/blocktree/dbms/index"
)

// MinOrder is the smallest branching factor New accepts. Below it the
// minimum fill b/2-1 drops to zero and empty leaves could survive a delete.
const MinOrder = 5

var _ index.SSet[int64] = (*BTree[int64])(nil)

// ─── BTree ────────────────────────────────────────────────────────────────────

// BTree is an ordered set of distinct keys stored in a block store.
type BTree[T any] struct {
	b    int // max keys per node, odd
	half int // b/2; non-root nodes keep at least half-1 keys
	n    int // number of keys in the tree
	ri   int // block ID of the root
	bs   *blockstore.Store[node[T]]
	cmp  func(a, b T) int
	log  *zap.Logger
}

// Option configures a BTree.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger that receives structural events (root growth
// and shrink, merges) at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns an empty tree ordered by cmp.Compare holding at most b keys
// per node. b is rounded up to an odd number no smaller than MinOrder.
func New[T cmp.Ordered](b int, opts ...Option) *BTree[T] {
	return NewFunc[T](b, cmp.Compare[T], opts...)
}

// NewFunc is like New but orders keys with compare, which must return a
// negative, zero or positive result as in cmp.Compare.
func NewFunc[T any](b int, compare func(a, b T) int, opts ...Option) *BTree[T] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	b = max(b|1, MinOrder)
	t := &BTree[T]{
		b:    b,
		half: b / 2,
		bs:   blockstore.New[node[T]](),
		cmp:  compare,
		log:  o.logger.With(zap.Int("order", b)),
	}
	t.ri = t.newNode().id
	return t
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Order returns the maximum number of keys per node.
func (t *BTree[T]) Order() int {
	return t.b
}

// Size returns the number of keys in the tree.
func (t *BTree[T]) Size() int {
	return t.n
}

// Find returns the smallest key >= x, or false if every key is smaller.
func (t *BTree[T]) Find(x T) (T, bool) {
	var z T
	found := false
	for ui := t.ri; ui != blockstore.NoBlock; {
		u := t.read(ui)
		i := t.findIt(u.keys, x)
		if i < 0 {
			return u.keys[-(i + 1)].key, true
		}
		if i < len(u.keys) && u.keys[i].ok {
			z, found = u.keys[i].key, true
		}
		ui = u.children[i]
	}
	return z, found
}

// Contains reports whether x is stored in the tree.
func (t *BTree[T]) Contains(x T) bool {
	y, ok := t.Find(x)
	return ok && t.cmp(x, y) == 0
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// read fetches a copy of node id. A missing node means the tree links to a
// block it does not own.
func (t *BTree[T]) read(id int) node[T] {
	u, ok := t.bs.Read(id)
	if !ok {
		panic(t.assertf("dangling block %d", id))
	}
	return u
}

func (t *BTree[T]) write(u *node[T]) {
	t.bs.Write(u.id, *u)
}

func (t *BTree[T]) assertf(format string, args ...interface{}) error {
	return errors.AssertionFailedf("btree: "+format, args...)
}
