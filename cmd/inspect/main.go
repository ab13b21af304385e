// Command inspect is a read-only diagnostic for a database file: it
// memory-maps the file and prints the root page's leaf header without
// going through the pager, so it can be run safely against a file a db
// process already has open.
package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/oda/kvrepl/internal/mmap"

	"kv/leaf"
	"kv/pager"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <filename>")
		os.Exit(1)
	}
	filename := os.Args[1]

	m, err := mmap.OpenReadOnly(filename)
	if err != nil {
		fatal(pkgerrors.Wrapf(err, "failed to open %s for inspection", filename))
	}
	defer m.Close()

	if m.Size() == 0 {
		fmt.Println("empty database file")
		return
	}
	if m.Size()%pager.Size != 0 {
		fatal(pkgerrors.Errorf("file size %d is not a whole number of %d-byte pages", m.Size(), pager.Size))
	}

	root := m.Slice(0, pager.Size)
	if root == nil {
		fatal(pkgerrors.New("failed to read root page"))
	}

	fmt.Printf("pages:      %d\n", m.Size()/pager.Size)
	fmt.Printf("node_type:  %d\n", leaf.GetNodeType(root))
	fmt.Printf("is_root:    %t\n", leaf.IsRoot(root))
	fmt.Printf("parent:     %d\n", leaf.Parent(root))
	fmt.Printf("num_cells:  %d\n", leaf.NumCells(root))

	if leaf.GetNodeType(root) == leaf.Leaf {
		if err := leaf.PrintLeaf(os.Stdout, root); err != nil {
			fatal(pkgerrors.Wrap(err, "failed to print leaf"))
		}
	}
}

// fatal reports a wrapped error to stderr and exits 1. inspect has no
// long-running loop to keep alive, so unlike cmd/db's logrus-backed
// reporting, printing the pkg/errors chain directly is enough.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "inspect: %+v\n", err)
	os.Exit(1)
}
