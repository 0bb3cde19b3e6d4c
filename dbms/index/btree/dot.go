package btree

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/btree-query-bench/blocktree/dbms/blockstore"
)

// WriteDOT renders the block graph as a Graphviz digraph. Each node shows its
// block ID and fill; edges are labelled by child slot.
func (t *BTree[T]) WriteDOT(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "digraph BTree {")
	fmt.Fprintln(bw, "  graph [ranksep=0.8, nodesep=0.5, bgcolor=\"#ffffff\", rankdir=TB];")
	fmt.Fprintln(bw, "  node [shape=none, fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(bw, "  edge [arrowsize=0.8, color=\"#444444\"];")

	var export func(id int)
	export = func(id int) {
		u := t.read(id)
		n := u.size()
		fill := float64(n) / float64(t.b) * 100

		header, colour := "LEAF", "#D5E8D4"
		if !u.isLeaf() {
			header, colour = "INTERNAL", "#DAE8FC"
		}
		if id == t.ri {
			header = "ROOT " + header
		}

		label := fmt.Sprintf(`<<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0" CELLPADDING="4">
    <TR><TD COLSPAN="%d" BGCOLOR="%s"><B>BLOCK %d (%s)</B><BR/><FONT POINT-SIZE="8">Fill: %.1f%%</FONT></TD></TR><TR>`,
			2*n+1, colour, id, header, fill)
		for i := 0; i < n; i++ {
			label += fmt.Sprintf(`<TD PORT="f%d" BGCOLOR="#E1F5FE"> </TD><TD BGCOLOR="#FFFFFF"><B>%s</B></TD>`,
				i, html.EscapeString(fmt.Sprint(u.keys[i].key)))
		}
		label += fmt.Sprintf(`<TD PORT="f%d" BGCOLOR="#E1F5FE"> </TD></TR></TABLE>>`, n)
		fmt.Fprintf(bw, "  b%d [label=%s];\n", id, label)

		if u.isLeaf() {
			return
		}
		for i := 0; i <= n; i++ {
			ci := u.children[i]
			if ci == blockstore.NoBlock {
				continue
			}
			fmt.Fprintf(bw, "  b%d:f%d -> b%d;\n", id, i, ci)
			export(ci)
		}
	}
	export(t.ri)

	fmt.Fprintln(bw, "}")
	return errors.Wrap(bw.Flush(), "btree: write dot")
}
