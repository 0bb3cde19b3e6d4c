package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/bench"
	"github.com/btree-query-bench/blocktree/dbms/index"
)

var (
	scale   = flag.Int("scale", 1000000, "Number of keys loaded before the workloads run.")
	orders  = flag.String("orders", "9,33,129", "Comma-separated B-tree orders (max keys per node).")
	outPath = flag.String("out", "results.csv", "CSV report path.")
	plotOut = flag.String("plot", "", "Optional latency chart path (.png, .svg, .pdf).")
	verify  = flag.Bool("verify", false, "Cross-check each B-tree order against Pebble before benchmarking.")
	seed    = flag.Uint64("seed", 1, "Workload RNG seed.")
	verbose = flag.Bool("v", false, "Verbose (development) logging.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "\nBlock-store B-tree benchmark\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.Logger) error {
	bs, err := parseOrders(*orders)
	if err != nil {
		return err
	}

	var structures []bench.Structure
	for _, b := range bs {
		structures = append(structures, bench.BlockTree(b, log.Named("btree")))
		// google/btree holds up to 2*degree-1 items per node.
		structures = append(structures, bench.GoogleBTree((b+1)/2))
	}
	structures = append(structures, bench.Pebble())

	if *verify {
		for _, b := range bs {
			if err := bench.Verify(*seed, index.DefaultCrossCheck, bench.BlockTree(b, log.Named("verify"))); err != nil {
				return err
			}
			log.Info("cross-check passed", zap.Int("order", b))
		}
	}

	r := &bench.Runner{Scale: *scale, Seed: *seed, Log: log}
	results, err := r.Run(ctx, structures)
	if err != nil {
		return err
	}

	f, err := os.Create(*outPath)
	if err != nil {
		return errors.Wrap(err, "create report")
	}
	defer f.Close()
	if err := bench.WriteCSV(f, results); err != nil {
		return err
	}
	log.Info("report written", zap.String("path", *outPath), zap.Int("rows", len(results)))

	if *plotOut != "" {
		if err := bench.Plot(*plotOut, results); err != nil {
			return err
		}
		log.Info("chart written", zap.String("path", *plotOut))
	}
	return nil
}

func parseOrders(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		b, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, errors.Wrapf(err, "bad order %q", f)
		}
		out = append(out, b)
	}
	return out, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
