package index_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btree-query-bench/blocktree/dbms/index"
	"github.com/btree-query-bench/blocktree/dbms/index/gbtree"
)

// offByOne finds the successor of x instead of its ceiling.
type offByOne struct{ *gbtree.Set[int64] }

func (s offByOne) Find(x int64) (int64, bool) { return s.Set.Find(x + 1) }

func TestCrossCheckAgrees(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	require.NoError(t, index.CrossCheck(rng, index.DefaultCrossCheck, gbtree.New[int64](2), gbtree.New[int64](16)))
}

func TestCrossCheckReportsDivergence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	err := index.CrossCheck(rng, index.DefaultCrossCheck, gbtree.New[int64](4), offByOne{gbtree.New[int64](4)})
	require.ErrorContains(t, err, "find(")
}

func TestCrossCheckRejectsEmptyConfig(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	err := index.CrossCheck(rng, index.CrossCheckConfig{}, gbtree.New[int64](4), gbtree.New[int64](4))
	require.Error(t, err)
}
