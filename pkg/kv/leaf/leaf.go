// Package leaf provides a typed view over a raw page buffer laid out as
// a B-tree leaf node. A leaf node is never a separate allocation; it is
// always a reinterpretation of bytes the pager already owns.
//
// Layout (PageSize = 4096 bytes):
//
//	common header   6 bytes   node_type(1) is_root(1) parent(4)
//	num_cells       4 bytes
//	cells           num_cells * CellSize, sorted ascending by key
//
// Only the single-leaf-root case is exercised today; the parent field
// and the node_type/Internal distinction are reserved for a future
// tree with splitting and internal-node descent, neither of which
// this package implements.
package leaf

import (
	"encoding/binary"
	"fmt"
	"io"

	"kv/row"
)

// NodeType distinguishes an internal node from a leaf. Only Leaf is ever
// produced by this package; Internal is reserved for the traversal code
// this scope does not implement.
type NodeType uint8

const (
	Internal NodeType = 0
	Leaf     NodeType = 1
)

const (
	commonHeaderSize = 6 // node_type(1) + is_root(1) + parent(4)

	nodeTypeOffset = 0
	isRootOffset   = 1
	parentOffset   = 2

	numCellsOffset = commonHeaderSize
	// HeaderSize is the leaf node's header width: common header plus
	// num_cells.
	HeaderSize = commonHeaderSize + 4

	keySize = 4
	// CellSize is the width of one (key, value) cell: LEAF_NODE_CELL_SIZE.
	CellSize = keySize + row.Size

	// MaxCells is the maximum number of cells a leaf can hold:
	// LEAF_NODE_MAX_CELLS.
	MaxCells = (pageSize - HeaderSize) / CellSize

	pageSize = 4096
)

// ErrFull is returned by callers that attempt to insert into a leaf that
// already holds MaxCells cells.
var ErrFull = fmt.Errorf("leaf node is full")

// Init writes a fresh, empty leaf header: node_type = Leaf, num_cells =
// 0. It must be called exactly once, on a newly created page.
func Init(page []byte) {
	SetNodeType(page, Leaf)
	SetNumCells(page, 0)
}

// GetNodeType reads the common header's node_type byte.
func GetNodeType(page []byte) NodeType {
	return NodeType(page[nodeTypeOffset])
}

// SetNodeType writes the common header's node_type byte.
func SetNodeType(page []byte, t NodeType) {
	page[nodeTypeOffset] = byte(t)
}

// IsRoot reports the common header's is_root flag.
func IsRoot(page []byte) bool {
	return page[isRootOffset] != 0
}

// SetIsRoot writes the common header's is_root flag.
func SetIsRoot(page []byte, v bool) {
	if v {
		page[isRootOffset] = 1
	} else {
		page[isRootOffset] = 0
	}
}

// Parent reads the common header's reserved parent page number.
func Parent(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[parentOffset : parentOffset+4])
}

// SetParent writes the common header's reserved parent page number.
func SetParent(page []byte, id uint32) {
	binary.LittleEndian.PutUint32(page[parentOffset:parentOffset+4], id)
}

// NumCells reads the number of live cells.
func NumCells(page []byte) uint32 {
	return binary.LittleEndian.Uint32(page[numCellsOffset : numCellsOffset+4])
}

// SetNumCells writes the number of live cells.
func SetNumCells(page []byte, n uint32) {
	binary.LittleEndian.PutUint32(page[numCellsOffset:numCellsOffset+4], n)
}

// cellOffset returns the byte offset of cell i. i may be NumCells(page),
// the one-past-end address used by shift operations.
func cellOffset(i uint32) int {
	return HeaderSize + int(i)*CellSize
}

// Cell returns the CellSize-byte region for cell i.
func Cell(page []byte, i uint32) []byte {
	off := cellOffset(i)
	return page[off : off+CellSize]
}

// Key returns the key stored in cell i.
func Key(page []byte, i uint32) uint32 {
	c := Cell(page, i)
	return binary.LittleEndian.Uint32(c[:keySize])
}

// SetKey writes the key of cell i.
func SetKey(page []byte, i uint32, key uint32) {
	c := Cell(page, i)
	binary.LittleEndian.PutUint32(c[:keySize], key)
}

// Value returns the row.Size-byte region backing cell i's value.
func Value(page []byte, i uint32) []byte {
	c := Cell(page, i)
	return c[keySize:]
}

// IsFull reports whether the leaf already holds MaxCells cells.
func IsFull(page []byte) bool {
	return NumCells(page) >= MaxCells
}

// ShiftCellsRight moves cells [from, NumCells(page)) one cell to the
// right, opening a gap at index from for a new cell. The source and
// destination ranges overlap by design, so the copy proceeds back to
// front (highest index first) to avoid clobbering data it hasn't copied
// yet.
func ShiftCellsRight(page []byte, from uint32) {
	n := NumCells(page)
	for i := n; i > from; i-- {
		copy(Cell(page, i), Cell(page, i-1))
	}
}

// PrintLeaf writes the §4.3 diagnostic representation: "leaf (size N)"
// followed by one "  - i : key" line per live cell.
func PrintLeaf(w io.Writer, page []byte) error {
	n := NumCells(page)
	if _, err := fmt.Fprintf(w, "leaf (size %d)\n", n); err != nil {
		return err
	}
	for i := uint32(0); i < n; i++ {
		if _, err := fmt.Fprintf(w, "  - %d : %d\n", i, Key(page, i)); err != nil {
			return err
		}
	}
	return nil
}
