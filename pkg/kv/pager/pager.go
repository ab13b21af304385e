// Package pager implements the fixed-capacity page cache that mediates
// every access between page numbers and bytes on the backing file.
//
// A Pager owns the file descriptor and a fixed-size array of page slots.
// Each slot is either nil (not cached) or a 4096-byte buffer whose
// contents mirror the file if clean, or supersede it if dirty. Once a
// slot is populated it stays populated until Close; the pager never
// evicts.
package pager

import (
	"fmt"
	"io"
	"os"
)

const (
	// Size is the fixed size, in bytes, of every page: PAGE_SIZE.
	Size = 4096

	// MaxPages is the fixed capacity of the pager's slot array:
	// TABLE_MAX_PAGES.
	MaxPages = 100
)

// ID identifies a page by its position in the file.
type ID = uint32

// ErrCorruptFile is returned by Open when the backing file's length is
// not a whole multiple of Size.
var ErrCorruptFile = fmt.Errorf("db file is not a whole number of pages")

// ErrPageOutOfBounds is returned by GetPage when the requested page
// number is MaxPages or greater.
var ErrPageOutOfBounds = fmt.Errorf("page number out of bounds")

// Pager is a fixed-capacity page cache over a single backing file.
type Pager struct {
	file     *os.File
	fileLen  int64
	numPages uint32
	pages    [MaxPages][]byte
}

// Open opens filename for read-write, creating it if it does not exist.
// The file length must be a whole multiple of Size; any other length
// means the database is corrupt and ErrCorruptFile is returned.
func Open(filename string) (*Pager, error) {
	f, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening db file: %w", err)
	}

	length, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("seeking db file: %w", err)
	}

	if length%Size != 0 {
		f.Close()
		return nil, ErrCorruptFile
	}

	return &Pager{
		file:     f,
		fileLen:  length,
		numPages: uint32(length / Size),
	}, nil
}

// NumPages reports how many page slots are in use, i.e. one past the
// highest page number ever fetched or allocated.
func (p *Pager) NumPages() uint32 {
	return p.numPages
}

// GetPage returns the buffer for the given page number, loading it from
// disk on first access. If the page lies beyond the current file, a
// zeroed buffer is installed and NumPages grows to cover it. A short
// read of the trailing partial page of a legacy file is tolerated; the
// bytes past EOF remain zero.
func (p *Pager) GetPage(pageNum ID) ([]byte, error) {
	if pageNum >= MaxPages {
		return nil, fmt.Errorf("%w: %d >= %d", ErrPageOutOfBounds, pageNum, MaxPages)
	}

	if p.pages[pageNum] == nil {
		buf := make([]byte, Size)

		numPagesOnDisk := uint32((p.fileLen + Size - 1) / Size)
		if pageNum < numPagesOnDisk {
			if _, err := p.file.Seek(int64(pageNum)*Size, io.SeekStart); err != nil {
				return nil, fmt.Errorf("seeking to page %d: %w", pageNum, err)
			}
			if _, err := io.ReadFull(p.file, buf); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
				return nil, fmt.Errorf("reading page %d: %w", pageNum, err)
			}
		}

		p.pages[pageNum] = buf
	}

	if pageNum >= p.numPages {
		p.numPages = pageNum + 1
	}

	return p.pages[pageNum], nil
}

// Flush writes the full page back to disk at its canonical offset.
// Always writing the whole Size-byte page, never a partial tail, is what
// keeps the file-is-a-whole-number-of-pages invariant self-healing
// across open/close cycles.
func (p *Pager) Flush(pageNum ID) error {
	if p.pages[pageNum] == nil {
		return fmt.Errorf("tried to flush unpopulated page %d", pageNum)
	}

	if _, err := p.file.WriteAt(p.pages[pageNum], int64(pageNum)*Size); err != nil {
		return fmt.Errorf("writing page %d: %w", pageNum, err)
	}

	end := (int64(pageNum) + 1) * Size
	if end > p.fileLen {
		p.fileLen = end
	}

	return nil
}

// Close flushes every populated page in [0, NumPages), frees all
// buffers, and closes the file descriptor. A defensive second pass over
// [NumPages, MaxPages) frees any slot that should not exist under the
// pager's invariants but was left populated regardless.
func (p *Pager) Close() error {
	for i := ID(0); i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
		p.pages[i] = nil
	}

	for i := p.numPages; i < MaxPages; i++ {
		p.pages[i] = nil
	}

	if err := p.file.Close(); err != nil {
		return fmt.Errorf("closing db file: %w", err)
	}
	return nil
}
