// Package mmap memory-maps a database file read-only for the
// cmd/inspect diagnostic tool. It never opens the file for writing, so
// it cannot touch the pager's single-writer path; it is a second,
// independent way to look at bytes the pager already owns.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MMap is a read-only memory mapping of an existing file.
type MMap struct {
	file *os.File
	data []byte
	size int64
}

// OpenReadOnly maps path into memory for reading. It never creates or
// extends the file; an empty file maps to a zero-length, still-valid
// MMap.
func OpenReadOnly(path string) (*MMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := info.Size()
	if size == 0 {
		return &MMap{file: file, data: nil, size: 0}, nil
	}

	data, err := unix.Mmap(int(file.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to mmap: %w", err)
	}

	return &MMap{file: file, data: data, size: size}, nil
}

// Close unmaps and closes the file.
func (m *MMap) Close() error {
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
		m.data = nil
	}
	if m.file != nil {
		if err := m.file.Close(); err != nil {
			return fmt.Errorf("failed to close file: %w", err)
		}
		m.file = nil
	}
	return nil
}

// Size returns the mapped file's size in bytes.
func (m *MMap) Size() int64 {
	return m.size
}

// Slice returns a read-only view of [offset, offset+length). It returns
// nil if the range falls outside the mapped file.
func (m *MMap) Slice(offset, length int64) []byte {
	if m.data == nil {
		return nil
	}
	if offset < 0 || length < 0 || offset+length > m.size {
		return nil
	}
	return m.data[offset : offset+length]
}
