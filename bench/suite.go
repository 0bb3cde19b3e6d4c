// Package bench measures ordered-set implementations under mixed workloads
// and reports per-operation latency and memory footprint.
package bench

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/dbms/index"
	"github.com/btree-query-bench/blocktree/dbms/index/btree"
	"github.com/btree-query-bench/blocktree/dbms/index/gbtree"
	"github.com/btree-query-bench/blocktree/dbms/index/lsm"
)

// Structure names an implementation and how to open a fresh instance.
type Structure struct {
	Name   string
	Config string
	Open   func() (set index.SSet[int64], closeFn func() error, err error)
}

func noClose() error { return nil }

// BlockTree is the block-store B-tree with order b.
func BlockTree(b int, log *zap.Logger) Structure {
	return Structure{
		Name:   "BlockTree",
		Config: strconv.Itoa(b),
		Open: func() (index.SSet[int64], func() error, error) {
			return btree.New[int64](b, btree.WithLogger(log)), noClose, nil
		},
	}
}

// GoogleBTree is github.com/google/btree with the given degree.
func GoogleBTree(degree int) Structure {
	return Structure{
		Name:   "GoogleBTree",
		Config: strconv.Itoa(degree),
		Open: func() (index.SSet[int64], func() error, error) {
			return gbtree.New[int64](degree), noClose, nil
		},
	}
}

// Pebble is an in-memory Pebble LSM.
func Pebble() Structure {
	return Structure{
		Name:   "Pebble",
		Config: "mem",
		Open: func() (index.SSet[int64], func() error, error) {
			s, err := lsm.Open()
			if err != nil {
				return nil, nil, err
			}
			return s, s.Close, nil
		},
	}
}

// Runner drives every workload against a list of structures.
type Runner struct {
	Scale int    // keys loaded before the workloads run
	Seed  uint64 // workload RNG seed, shared by all structures
	Log   *zap.Logger
}

// Run benchmarks each structure in turn. It stops early if ctx is done.
func (r *Runner) Run(ctx context.Context, structures []Structure) ([]BenchResult, error) {
	if r.Scale <= 0 {
		return nil, errors.Newf("bench: scale must be positive, got %d", r.Scale)
	}
	var results []BenchResult
	for _, s := range structures {
		res, err := r.runSuite(ctx, s)
		if err != nil {
			return results, errors.Wrapf(err, "bench: %s(%s)", s.Name, s.Config)
		}
		results = append(results, res...)
	}
	return results, nil
}

func (r *Runner) runSuite(ctx context.Context, s Structure) (_ []BenchResult, err error) {
	r.Log.Info("testing structure", zap.String("name", s.Name), zap.String("config", s.Config))
	set, closeFn, err := s.Open()
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.CombineErrors(err, closeFn()) }()

	rng := rand.New(rand.NewPCG(r.Seed, r.Seed))
	n := r.Scale
	var out []BenchResult

	// 1. Pure insert (initial load)
	start := time.Now()
	for k := 0; k < n; k++ {
		set.Add(int64(k))
	}
	insertLatency := time.Since(start).Nanoseconds() / int64(n)

	// Measure memory immediately after load but before workloads.
	stats := GetDetailedMem()
	out = append(out, BenchResult{
		Name:      s.Name,
		Config:    s.Config,
		Operation: "Footprint_SteadyState",
		LatencyNs: insertLatency,
		MemMB:     stats.AllocMB,
		Objects:   stats.HeapObjects,
	})

	// 2. Mixed workloads
	ops := max(n/2, 1)
	for _, w := range Workloads {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		start = time.Now()
		ExecuteWorkload(rng, set, w, ops, 2*n)
		out = append(out, BenchResult{
			Name:      s.Name,
			Config:    s.Config,
			Operation: "Workload_" + string(w),
			LatencyNs: time.Since(start).Nanoseconds() / int64(ops),
			MemMB:     GetDetailedMem().AllocMB,
		})
	}
	r.Log.Info("structure done", zap.String("name", s.Name), zap.Int("final_size", set.Size()))
	return out, nil
}

// Verify cross-checks s against an in-memory Pebble set.
func Verify(seed uint64, cfg index.CrossCheckConfig, s Structure) (err error) {
	ref, err := lsm.Open()
	if err != nil {
		return err
	}
	defer func() { err = errors.CombineErrors(err, ref.Close()) }()

	sut, closeFn, err := s.Open()
	if err != nil {
		return err
	}
	defer func() { err = errors.CombineErrors(err, closeFn()) }()

	if err := index.CrossCheck(rand.New(rand.NewPCG(seed, seed)), cfg, ref, sut); err != nil {
		return errors.Wrapf(err, "bench: verify %s(%s)", s.Name, s.Config)
	}
	if c, ok := sut.(interface{ Check() error }); ok {
		return c.Check()
	}
	return nil
}
