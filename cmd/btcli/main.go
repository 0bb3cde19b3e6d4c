package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/cli"
	"github.com/btree-query-bench/blocktree/dbms/index/btree"
)

var (
	order          = flag.Int("b", 5, "Max keys per node (rounded up to an odd number >= 5).")
	seedNumRecords = flag.Int("seed", 0, "Insert this many faker-generated words on startup.")
	noColor        = flag.Bool("no-color", false, "Disable coloured output.")
	verbose        = flag.Bool("v", false, "Log structural events (splits, merges) to stderr.")
)

func main() {
	flag.Usage = func() {
		fmt.Println("\nB-Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer func() { _ = log.Sync() }()

	tree := btree.New[string](*order, btree.WithLogger(log.Named("btree")))
	demo := cli.NewCli(os.Stdin, os.Stdout, tree, cli.Options{NoColor: *noColor, Logger: log})
	if *seedNumRecords > 0 {
		demo.Exec(fmt.Sprintf("SEED %d", *seedNumRecords))
	}
	if err := demo.Start(); err != nil {
		log.Error("input error", zap.Error(err))
		os.Exit(1)
	}
}
