package statement

import (
	"fmt"
	"io"

	"kv/leaf"
	"kv/row"
	"kv/table"
)

// Execute errors.
var (
	ErrTableFull    = executeError("table full")
	ErrDuplicateKey = executeError("duplicate key")
)

type executeError string

func (e executeError) Error() string { return string(e) }

// Execute runs stmt against t, writing any row output from a select to
// out. The executor owns the cursor it creates for the duration of this
// single call.
func Execute(t *table.Table, stmt Statement, out io.Writer) error {
	switch stmt.Kind {
	case Insert:
		return executeInsert(t, stmt)
	case Select:
		return executeSelect(t, out)
	default:
		return fmt.Errorf("statement: unknown kind %d", stmt.Kind)
	}
}

func executeInsert(t *table.Table, stmt Statement) error {
	page, err := t.RootPage()
	if err != nil {
		return err
	}

	if leaf.NumCells(page) >= leaf.MaxCells {
		return ErrTableFull
	}

	c, err := t.Find(stmt.Row.ID)
	if err != nil {
		return err
	}

	if c.CellNum < leaf.NumCells(page) && leaf.Key(page, c.CellNum) == stmt.Row.ID {
		return ErrDuplicateKey
	}

	return c.Insert(stmt.Row.ID, stmt.Row)
}

func executeSelect(t *table.Table, out io.Writer) error {
	c, err := t.Begin()
	if err != nil {
		return err
	}

	for !c.EndOfTable {
		val, err := c.Value()
		if err != nil {
			return err
		}
		r := row.Deserialize(val)
		if _, err := fmt.Fprintf(out, "(%d, %s, %s)\n", r.ID, r.Username, r.Email); err != nil {
			return err
		}
		if err := c.Advance(); err != nil {
			return err
		}
	}

	return nil
}
