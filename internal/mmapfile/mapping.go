// Package mmapfile maps input files into memory for byte-slice sources.
package mmapfile

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotRegular is returned by Open for directories, pipes and devices.
var ErrNotRegular = errors.New("not a regular file")

// Mapping is a read-only view of a whole file.
type Mapping struct {
	f    *os.File
	data []byte
}

// Open maps name read-only. On platforms without mmap the file is read into
// memory instead. The mapping must be closed, and its bytes must not be used
// after Close.
//
//	m, err := mmapfile.Open("stops.csv")
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	reader := dsv.NewReader(dsv.NewBytesSource(m.Bytes()), ',')
func Open(name string) (*Mapping, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNotRegular)
	}

	m := &Mapping{f: f}
	// Zero-length mappings are rejected by mmap.
	if size := info.Size(); size > 0 {
		if int64(int(size)) != size {
			f.Close()
			return nil, fmt.Errorf("%s: file too large to map", name)
		}
		if m.data, err = mapFile(f, int(size)); err != nil {
			f.Close()
			return nil, fmt.Errorf("map %s: %w", name, err)
		}
	}
	return m, nil
}

// Bytes returns the file contents, or nil once the mapping is closed.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// Len returns the file size.
func (m *Mapping) Len() int {
	return len(m.data)
}

// Close releases the mapping and the file. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.f == nil {
		return nil
	}
	var err error
	if m.data != nil {
		err = unmapFile(m.data)
	}
	err = errors.Join(err, m.f.Close())
	m.f, m.data = nil, nil
	return err
}
