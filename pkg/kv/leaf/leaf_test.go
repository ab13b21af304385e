package leaf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPage() []byte {
	p := make([]byte, pageSize)
	Init(p)
	return p
}

func TestMaxCellsConstant(t *testing.T) {
	require.Equal(t, 13, MaxCells)
}

func TestInit(t *testing.T) {
	p := newPage()
	require.Equal(t, Leaf, GetNodeType(p))
	require.Equal(t, uint32(0), NumCells(p))
}

func TestKeyValueRoundTrip(t *testing.T) {
	p := newPage()
	SetNumCells(p, 1)
	SetKey(p, 0, 42)
	copy(Value(p, 0), bytes.Repeat([]byte{0x7}, len(Value(p, 0))))

	require.Equal(t, uint32(42), Key(p, 0))
	for _, b := range Value(p, 0) {
		require.Equal(t, byte(0x7), b)
	}
}

func TestShiftCellsRightOpensGap(t *testing.T) {
	p := newPage()
	SetNumCells(p, 3)
	SetKey(p, 0, 1)
	SetKey(p, 1, 2)
	SetKey(p, 2, 3)

	// Shift [1, NumCells) right by one *before* the count is bumped,
	// opening a gap at index 1 for the new cell.
	ShiftCellsRight(p, 1)
	SetNumCells(p, 4)
	SetKey(p, 1, 99)

	require.Equal(t, uint32(1), Key(p, 0))
	require.Equal(t, uint32(99), Key(p, 1))
	require.Equal(t, uint32(2), Key(p, 2))
	require.Equal(t, uint32(3), Key(p, 3))
}

func TestIsFull(t *testing.T) {
	p := newPage()
	require.False(t, IsFull(p))
	SetNumCells(p, MaxCells)
	require.True(t, IsFull(p))
}

func TestPrintLeaf(t *testing.T) {
	p := newPage()
	SetNumCells(p, 2)
	SetKey(p, 0, 5)
	SetKey(p, 1, 7)

	var buf bytes.Buffer
	require.NoError(t, PrintLeaf(&buf, p))
	require.Equal(t, "leaf (size 2)\n  - 0 : 5\n  - 1 : 7\n", buf.String())
}

func TestIsRootAndParent(t *testing.T) {
	p := newPage()
	require.False(t, IsRoot(p))
	SetIsRoot(p, true)
	require.True(t, IsRoot(p))

	SetParent(p, 7)
	require.Equal(t, uint32(7), Parent(p))
}
