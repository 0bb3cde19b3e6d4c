// Package cli is an interactive shell over a string-keyed block-store B-tree.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"go.uber.org/zap"

	"github.com/btree-query-bench/blocktree/dbms/index/btree"
)

type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    *btree.BTree[string]
	log     *zap.Logger

	ok   *color.Color
	warn *color.Color
	dim  *color.Color
}

// Options configures a Cli.
type Options struct {
	// NoColor disables ANSI colours regardless of the terminal.
	NoColor bool
	Logger  *zap.Logger
}

func NewCli(in io.Reader, out io.Writer, t *btree.BTree[string], opts Options) *Cli {
	c := &Cli{
		scanner: bufio.NewScanner(in),
		out:     out,
		tree:    t,
		log:     opts.Logger,
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgRed),
		dim:     color.New(color.FgHiBlack),
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.NoColor {
		for _, col := range []*color.Color{c.ok, c.warn, c.dim} {
			col.DisableColor()
		}
	}
	return c
}

// Start runs the read-eval-print loop until EXIT or end of input.
func (c *Cli) Start() error {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

// Exec runs a single command line and reports whether the session continues.
func (c *Cli) Exec(line string) bool {
	return c.processInput(line)
}

func (c *Cli) printHelp() {
	fmt.Fprintln(c.out, `
B-Tree CLI

Available Commands:
  ADD <key>...    Insert keys into the B-Tree
  DEL <key>...    Remove keys from the B-Tree
  FIND <key>      Smallest stored key >= key
  HAS <key>       Exact membership test
  SIZE            Number of stored keys
  LIST            All keys in order
  STATS           Order, node count, height, free blocks
  CHECK           Verify every structural invariant
  DOT <file>      Write a Graphviz rendering of the tree
  SEED <n>        Insert n random words
  HELP            Show this text
  EXIT            Terminate this session`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

// processInput executes one line and reports whether the session continues.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]
	switch command {
	default:
		c.warn.Fprintf(c.out, "Unknown command %q\n", command)
	case "add":
		c.processAddCommand(args)
	case "del":
		c.processDeleteCommand(args)
	case "find":
		c.processFindCommand(args)
	case "has":
		c.processHasCommand(args)
	case "size":
		fmt.Fprintln(c.out, c.tree.Size())
	case "list":
		fmt.Fprintln(c.out, strings.Join(c.tree.Keys(), " "))
	case "stats":
		s := c.tree.Stats()
		fmt.Fprintf(c.out, "order=%d keys=%d nodes=%d height=%d free=%d\n",
			s.Order, s.Keys, s.Nodes, s.Height, s.FreeBlocks)
	case "check":
		if err := c.tree.Check(); err != nil {
			c.warn.Fprintf(c.out, "%v\n", err)
			return true
		}
		c.ok.Fprintln(c.out, "ok")
	case "dot":
		c.processDotCommand(args)
	case "seed":
		c.processSeedCommand(args)
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processAddCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: ADD <key>...")
		return
	}
	for _, k := range args {
		if c.tree.Add(k) {
			c.ok.Fprintf(c.out, "added %s\n", k)
		} else {
			c.dim.Fprintf(c.out, "%s already present\n", k)
		}
	}
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Usage: DEL <key>...")
		return
	}
	for _, k := range args {
		if _, ok := c.tree.Remove(k); ok {
			c.ok.Fprintf(c.out, "removed %s\n", k)
		} else {
			c.warn.Fprintf(c.out, "%s not found\n", k)
		}
	}
}

func (c *Cli) processFindCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: FIND <key>")
		return
	}
	y, ok := c.tree.Find(args[0])
	if !ok {
		c.warn.Fprintln(c.out, "No key at or after", args[0])
		return
	}
	fmt.Fprintln(c.out, y)
}

func (c *Cli) processHasCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: HAS <key>")
		return
	}
	fmt.Fprintln(c.out, c.tree.Contains(args[0]))
}

func (c *Cli) processDotCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DOT <file>")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		c.warn.Fprintf(c.out, "%v\n", err)
		return
	}
	defer f.Close()
	if err := c.tree.WriteDOT(f); err != nil {
		c.warn.Fprintf(c.out, "%v\n", err)
		return
	}
	c.ok.Fprintf(c.out, "wrote %s (render with: dot -Tpng %s -o tree.png)\n", args[0], args[0])
}

func (c *Cli) processSeedCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: SEED <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		c.warn.Fprintf(c.out, "bad count %q\n", args[0])
		return
	}
	added := 0
	for i := 0; i < n; i++ {
		if c.tree.Add(faker.Word() + faker.Word()) {
			added++
		}
	}
	c.log.Info("seeded tree", zap.Int("requested", n), zap.Int("added", added), zap.Int("size", c.tree.Size()))
	c.ok.Fprintf(c.out, "seeded %d keys\n", added)
}
