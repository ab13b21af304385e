// Package table owns the pager and the root page number, and is the
// entry point for locating cursors.
package table

import (
	"fmt"

	"kv/cursor"
	"kv/leaf"
	"kv/pager"
)

// RootPageNum is fixed at 0 in this scope; the design anticipates a
// B-tree where the root could move, but only the single-leaf-root case
// is implemented.
const RootPageNum = 0

// Table owns the pager for one open database file.
type Table struct {
	pager *pager.Pager
}

// Open opens filename, initializing page 0 as an empty leaf if the file
// is new.
func Open(filename string) (*Table, error) {
	p, err := pager.Open(filename)
	if err != nil {
		return nil, err
	}

	t := &Table{pager: p}

	if p.NumPages() == 0 {
		page, err := p.GetPage(RootPageNum)
		if err != nil {
			return nil, err
		}
		leaf.Init(page)
		leaf.SetIsRoot(page, true)
	}

	return t, nil
}

// Find returns a cursor positioned at the slot where key is, or where it
// would be inserted. Only a leaf root is supported; an internal root
// means node-splitting has happened, which this scope never performs,
// so reaching one here is a fatal, unreachable-in-practice error.
func (t *Table) Find(key uint32) (*cursor.Cursor, error) {
	page, err := t.pager.GetPage(RootPageNum)
	if err != nil {
		return nil, err
	}

	switch leaf.GetNodeType(page) {
	case leaf.Leaf:
		return cursor.Find(t.pager, RootPageNum, key)
	default:
		return nil, fmt.Errorf("table find: internal node traversal is not implemented")
	}
}

// Begin returns a cursor positioned at the first cell of the root leaf.
func (t *Table) Begin() (*cursor.Cursor, error) {
	return cursor.Begin(t.pager, RootPageNum)
}

// RootPage returns the raw bytes of the root page, for callers (.btree,
// the insert executor's full and duplicate checks) that need to inspect
// the leaf directly.
func (t *Table) RootPage() ([]byte, error) {
	return t.pager.GetPage(RootPageNum)
}

// Close flushes every populated page and closes the underlying file.
func (t *Table) Close() error {
	return t.pager.Close()
}
