package btree_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/blocktree/dbms/index"
	"github.com/btree-query-bench/blocktree/dbms/index/btree"
	"github.com/btree-query-bench/blocktree/dbms/index/gbtree"
	"github.com/btree-query-bench/blocktree/dbms/index/lsm"
)

func TestCrossCheckGoogleBTree(t *testing.T) {
	for _, b := range []int{5, 11, 31} {
		rng := rand.New(rand.NewPCG(uint64(b), 11))
		tr := btree.New[int64](b)
		require.NoError(t, index.CrossCheck(rng, index.DefaultCrossCheck, gbtree.New[int64](8), tr), "b=%d", b)
		require.NoError(t, tr.Check())
	}
}

func TestCrossCheckPebble(t *testing.T) {
	ref, err := lsm.Open()
	require.NoError(t, err)
	defer func() { require.NoError(t, ref.Close()) }()

	tr := btree.New[int64](11)
	cfg := index.CrossCheckConfig{Rounds: 3, Ops: 300, KeySpace: 600}
	require.NoError(t, index.CrossCheck(rand.New(rand.NewPCG(42, 0)), cfg, ref, tr))
	require.NoError(t, tr.Check())
}
