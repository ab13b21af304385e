package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kv/leaf"
	"kv/row"
)

type fakePager struct {
	page []byte
}

func newFakePager() *fakePager {
	p := &fakePager{page: make([]byte, 4096)}
	leaf.Init(p.page)
	return p
}

func (f *fakePager) GetPage(pageNum uint32) ([]byte, error) {
	return f.page, nil
}

func mustRow(t *testing.T, id uint32, username, email string) row.Row {
	r, err := row.New(id, username, email)
	require.NoError(t, err)
	return r
}

func TestBeginOnEmptyLeafIsEndOfTable(t *testing.T) {
	p := newFakePager()
	c, err := Begin(p, 0)
	require.NoError(t, err)
	require.True(t, c.EndOfTable)
	require.Equal(t, uint32(0), c.CellNum)
}

func TestInsertThenScan(t *testing.T) {
	p := newFakePager()

	for _, id := range []uint32{3, 1, 2} {
		c, err := Find(p, 0, id)
		require.NoError(t, err)
		require.NoError(t, c.Insert(id, mustRow(t, id, "u", "e@x")))
	}

	c, err := Begin(p, 0)
	require.NoError(t, err)

	var ids []uint32
	for !c.EndOfTable {
		val, err := c.Value()
		require.NoError(t, err)
		ids = append(ids, row.Deserialize(val).ID)
		require.NoError(t, c.Advance())
	}

	require.Equal(t, []uint32{1, 2, 3}, ids)
}

func TestFindLandsOnDuplicate(t *testing.T) {
	p := newFakePager()
	c, err := Find(p, 0, 5)
	require.NoError(t, err)
	require.NoError(t, c.Insert(5, mustRow(t, 5, "a", "a@b")))

	dup, err := Find(p, 0, 5)
	require.NoError(t, err)
	require.Equal(t, uint32(5), leaf.Key(p.page, dup.CellNum))
}

func TestInsertOnFullLeafFails(t *testing.T) {
	p := newFakePager()
	for i := uint32(0); i < leaf.MaxCells; i++ {
		c, err := Find(p, 0, i)
		require.NoError(t, err)
		require.NoError(t, c.Insert(i, mustRow(t, i, "u", "e@x")))
	}

	c, err := Find(p, 0, leaf.MaxCells)
	require.NoError(t, err)
	err = c.Insert(leaf.MaxCells, mustRow(t, leaf.MaxCells, "u", "e@x"))
	require.ErrorIs(t, err, leaf.ErrFull)
}
