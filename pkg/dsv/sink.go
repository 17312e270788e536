package dsv

import (
	"bufio"
	"io"
	"strings"
)

const defaultBufferSize = 4 << 10

// Sink accepts characters from a Writer.
//
// Put appends a single character; Write appends a contiguous buffer.
// A non-nil error from either means the sink refused the data.
type Sink interface {
	Put(ch rune) error
	Write(p []byte) (int, error)
}

// StringSink is an in-memory Sink.
type StringSink struct {
	sb strings.Builder
}

var _ Sink = (*StringSink)(nil)

// NewStringSink creates an empty in-memory Sink.
func NewStringSink() *StringSink {
	return &StringSink{}
}

// Put implements Sink.
func (s *StringSink) Put(ch rune) error {
	_, err := s.sb.WriteRune(ch)
	return err
}

// Write implements Sink.
func (s *StringSink) Write(p []byte) (int, error) {
	return s.sb.Write(p)
}

// String returns everything written so far.
func (s *StringSink) String() string {
	return s.sb.String()
}

// Reset discards everything written so far.
func (s *StringSink) Reset() {
	s.sb.Reset()
}

// WriterSink is a buffered Sink over an io.Writer.
//
// The first error from the underlying writer is sticky: every later Put, Write
// and Flush returns it. Call Flush when done writing.
type WriterSink struct {
	dst *bufio.Writer
	err error
}

var _ Sink = (*WriterSink)(nil)

// NewWriterSink creates a buffered Sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		panic("dsv: writer destination cannot be nil")
	}
	return &WriterSink{dst: bufio.NewWriterSize(w, defaultBufferSize)}
}

// Put implements Sink.
func (s *WriterSink) Put(ch rune) error {
	if s.err != nil {
		return s.err
	}
	if _, err := s.dst.WriteRune(ch); err != nil {
		s.err = err
	}
	return s.err
}

// Write implements Sink.
func (s *WriterSink) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.dst.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

// Flush writes any buffered data to the underlying writer.
func (s *WriterSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	if err := s.dst.Flush(); err != nil {
		s.err = err
	}
	return s.err
}

// Err reports the first error encountered by the sink.
func (s *WriterSink) Err() error {
	return s.err
}
