package bench

import (
	"bytes"
	"context"
	"encoding/csv"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/dbms/index"
	"github.com/btree-query-bench/blocktree/dbms/index/gbtree"
)

func testStructures() []Structure {
	return []Structure{BlockTree(5, zap.NewNop()), GoogleBTree(8), Pebble()}
}

func TestRunAndReport(t *testing.T) {
	r := &Runner{Scale: 500, Seed: 1, Log: zap.NewNop()}
	results, err := r.Run(context.Background(), testStructures())
	require.NoError(t, err)
	require.Len(t, results, 3*(1+len(Workloads)))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(results)+1)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, "BlockTree", rows[1][0])
	require.Equal(t, "Footprint_SteadyState", rows[1][2])

	path := filepath.Join(t.TempDir(), "latency.png")
	require.NoError(t, Plot(path, results))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Scale: 10, Seed: 1, Log: zap.NewNop()}
	_, err := r.Run(ctx, testStructures())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsEmptyScale(t *testing.T) {
	_, err := (&Runner{Log: zap.NewNop()}).Run(context.Background(), testStructures())
	require.Error(t, err)
}

func TestPlotNeedsWorkloads(t *testing.T) {
	err := Plot(filepath.Join(t.TempDir(), "x.png"), []BenchResult{{Name: "a", Operation: "Footprint_SteadyState"}})
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	cfg := index.CrossCheckConfig{Rounds: 2, Ops: 100, KeySpace: 300}
	for _, s := range testStructures() {
		require.NoError(t, Verify(7, cfg, s), s.Name)
	}
}

func TestExecuteWorkloadChurnKeepsKeysInRange(t *testing.T) {
	s := gbtree.New[int64](4)
	ExecuteWorkload(rand.New(rand.NewPCG(1, 2)), s, Churn, 1000, 50)
	require.LessOrEqual(t, s.Size(), 50)
	y, ok := s.Find(0)
	if ok {
		require.Less(t, y, int64(50))
	}
}
