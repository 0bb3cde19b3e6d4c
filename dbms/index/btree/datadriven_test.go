package btree

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// TestDataDriven replays the scenarios under testdata/. Commands:
//
//	new b=<order>     start a fresh tree
//	add               insert the whitespace-separated keys in the input
//	remove            remove each key in the input
//	find              ceiling-search each key in the input
//	keys | size | stats | check
func TestDataDriven(t *testing.T) {
	var tr *BTree[int]

	datadriven.RunTest(t, "testdata/scenarios", func(t *testing.T, d *datadriven.TestData) string {
		if d.Cmd != "new" && tr == nil {
			d.Fatalf(t, "%s before new", d.Cmd)
		}
		switch d.Cmd {
		case "new":
			var b int
			d.ScanArgs(t, "b", &b)
			tr = New[int](b)
			return "ok"

		case "add":
			xs := parseKeys(t, d)
			added := 0
			for _, x := range xs {
				if tr.Add(x) {
					added++
				}
			}
			return fmt.Sprintf("added %d of %d; size=%d", added, len(xs), tr.Size())

		case "remove":
			var buf strings.Builder
			for _, x := range parseKeys(t, d) {
				y, ok := tr.Remove(x)
				fmt.Fprintf(&buf, "remove(%d) = %s\n", x, optString(y, ok))
			}
			return buf.String()

		case "find":
			var buf strings.Builder
			for _, x := range parseKeys(t, d) {
				y, ok := tr.Find(x)
				fmt.Fprintf(&buf, "find(%d) = %s\n", x, optString(y, ok))
			}
			return buf.String()

		case "keys":
			return fmt.Sprint(tr.Keys())

		case "size":
			return strconv.Itoa(tr.Size())

		case "stats":
			s := tr.Stats()
			return fmt.Sprintf("order=%d keys=%d nodes=%d height=%d free=%d",
				s.Order, s.Keys, s.Nodes, s.Height, s.FreeBlocks)

		case "check":
			if err := tr.Check(); err != nil {
				return err.Error()
			}
			return "ok"

		default:
			d.Fatalf(t, "unknown command %q", d.Cmd)
			return ""
		}
	})
}

func parseKeys(t *testing.T, d *datadriven.TestData) []int {
	var xs []int
	for _, f := range strings.Fields(d.Input) {
		x, err := strconv.Atoi(f)
		if err != nil {
			d.Fatalf(t, "bad key %q: %v", f, err)
		}
		xs = append(xs, x)
	}
	return xs
}

func optString(y int, ok bool) string {
	if !ok {
		return "absent"
	}
	return strconv.Itoa(y)
}
