// Package cursor implements the navigation primitive used for both
// table scans and positioned inserts. A Cursor is a position
// (page number, cell number) plus an end-of-table flag; it is the sole
// means by which higher layers read or write leaf cells.
package cursor

import (
	"fmt"

	"kv/leaf"
	"kv/row"
)

// PageSource is the minimal pager surface a Cursor needs: resolving a
// page number to its backing bytes. Table satisfies this by passing its
// own *pager.Pager.
type PageSource interface {
	GetPage(pageNum uint32) ([]byte, error)
}

// Cursor positions at a single cell within a single leaf page. Only the
// single-leaf-root case is supported; a multi-leaf design would chain to
// a sibling page here, but that is not implemented in this scope.
type Cursor struct {
	pages      PageSource
	PageNum    uint32
	CellNum    uint32
	EndOfTable bool
}

// Begin positions a cursor at the first cell of the leaf at pageNum.
func Begin(pages PageSource, pageNum uint32) (*Cursor, error) {
	page, err := pages.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	return &Cursor{
		pages:      pages,
		PageNum:    pageNum,
		CellNum:    0,
		EndOfTable: leaf.NumCells(page) == 0,
	}, nil
}

// Find performs a binary search for key within the leaf at pageNum. The
// invariant maintained between iterations is that the target lies in
// [lo, hi). On equality the cursor lands exactly on the matching cell
// (the caller detects the duplicate); otherwise it lands on the first
// index whose key is >= key, the correct insertion point.
func Find(pages PageSource, pageNum uint32, key uint32) (*Cursor, error) {
	page, err := pages.GetPage(pageNum)
	if err != nil {
		return nil, err
	}

	lo, hi := uint32(0), leaf.NumCells(page)
	for lo < hi {
		mid := (lo + hi) / 2
		midKey := leaf.Key(page, mid)
		switch {
		case midKey == key:
			return &Cursor{pages: pages, PageNum: pageNum, CellNum: mid}, nil
		case midKey > key:
			hi = mid
		default:
			lo = mid + 1
		}
	}

	return &Cursor{pages: pages, PageNum: pageNum, CellNum: lo}, nil
}

// Value returns the row.Size-byte region at the cursor's current cell.
func (c *Cursor) Value() ([]byte, error) {
	page, err := c.pages.GetPage(c.PageNum)
	if err != nil {
		return nil, err
	}
	return leaf.Value(page, c.CellNum), nil
}

// Advance moves to the next cell, setting EndOfTable once the cells in
// this leaf are exhausted.
func (c *Cursor) Advance() error {
	page, err := c.pages.GetPage(c.PageNum)
	if err != nil {
		return err
	}

	c.CellNum++
	if c.CellNum >= leaf.NumCells(page) {
		c.EndOfTable = true
	}
	return nil
}

// Insert writes a new (key, row) cell at the cursor's current position,
// shifting later cells right to make room. It is a fatal error to call
// Insert on a full leaf; callers are expected to check first (the
// statement executor returns TABLE_FULL before it ever reaches here).
func (c *Cursor) Insert(key uint32, r row.Row) error {
	page, err := c.pages.GetPage(c.PageNum)
	if err != nil {
		return err
	}

	if leaf.IsFull(page) {
		return fmt.Errorf("cursor insert: %w", leaf.ErrFull)
	}

	leaf.ShiftCellsRight(page, c.CellNum)
	leaf.SetNumCells(page, leaf.NumCells(page)+1)

	leaf.SetKey(page, c.CellNum, key)
	row.Serialize(r, leaf.Value(page, c.CellNum))

	return nil
}
