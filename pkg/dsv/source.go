package dsv

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Source supplies characters to a Reader.
//
// Peek inspects the next character without consuming it and Get consumes it;
// both report false at end of input. End reports whether no characters remain.
// A Source is referenced, not owned, by the Reader built on it.
type Source interface {
	Peek() (rune, bool)
	Get() (rune, bool)
	End() bool
}

// StreamSource adapts a shape-core tokenizer.Stream into a Source.
type StreamSource struct {
	stream tokenizer.Stream
}

var _ Source = (*StreamSource)(nil)

// NewStreamSource wraps an existing shape-core stream.
func NewStreamSource(stream tokenizer.Stream) *StreamSource {
	if stream == nil {
		panic("dsv: stream cannot be nil")
	}
	return &StreamSource{stream: stream}
}

// NewStringSource creates a Source reading from an in-memory string.
//
// Example:
//
//	r := dsv.NewReader(dsv.NewStringSource("a,b\nc,d"), ',')
func NewStringSource(s string) *StreamSource {
	return &StreamSource{stream: tokenizer.NewStream(s)}
}

// Peek implements Source.
func (s *StreamSource) Peek() (rune, bool) {
	return s.stream.PeekChar()
}

// Get implements Source.
func (s *StreamSource) Get() (rune, bool) {
	return s.stream.NextChar()
}

// End implements Source.
func (s *StreamSource) End() bool {
	_, ok := s.stream.PeekChar()
	return !ok
}

// readerChunkSize is how many bytes a ReaderSource decodes at a time.
const readerChunkSize = 64 << 10

// maxEmptyReads is how many consecutive empty reads a ReaderSource tolerates
// before failing with io.ErrNoProgress.
const maxEmptyReads = 100

// ReaderSource is a Source over an io.Reader.
//
// Input is read in chunks that always end on a whole UTF-8 sequence; each
// chunk is decoded by a shape-core stream. Invalid UTF-8 decodes to
// utf8.RuneError. A failing reader ends the input and the failure is kept for
// Err.
type ReaderSource struct {
	r     io.Reader
	buf   []byte
	n     int // undecoded bytes at the start of buf
	chunk tokenizer.Stream
	err   error
	eof   bool
}

var _ Source = (*ReaderSource)(nil)

// NewReaderSource creates a Source reading from r in chunks, so large files
// are never loaded whole.
//
// Example:
//
//	file, err := os.Open("stops.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//	src := dsv.NewReaderSource(file)
//	r := dsv.NewReader(src, ',')
//	rows := r.ReadAll()
//	if err := r.Err(); err != nil {
//	    // handle error
//	}
func NewReaderSource(r io.Reader) *ReaderSource {
	if r == nil {
		panic("dsv: reader cannot be nil")
	}
	return &ReaderSource{r: r, buf: make([]byte, readerChunkSize)}
}

// Peek implements Source.
func (s *ReaderSource) Peek() (rune, bool) {
	for {
		if s.chunk != nil {
			if ch, ok := s.chunk.PeekChar(); ok {
				return ch, true
			}
		}
		if !s.fill() {
			return 0, false
		}
	}
}

// Get implements Source.
func (s *ReaderSource) Get() (rune, bool) {
	for {
		if s.chunk != nil {
			if ch, ok := s.chunk.NextChar(); ok {
				return ch, true
			}
		}
		if !s.fill() {
			return 0, false
		}
	}
}

// End implements Source.
func (s *ReaderSource) End() bool {
	_, ok := s.Peek()
	return !ok
}

// Err returns the first error returned by the underlying reader, other than
// io.EOF.
func (s *ReaderSource) Err() error {
	return s.err
}

// fill decodes the next chunk. It returns false once the reader is exhausted
// or has failed.
func (s *ReaderSource) fill() bool {
	empty := 0
	for !s.eof {
		m, err := s.r.Read(s.buf[s.n:])
		s.n += m
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			s.eof = true
		}

		cut := s.n
		if !s.eof {
			cut = wholeRunes(s.buf[:s.n])
		}
		if cut == 0 {
			if m == 0 {
				if empty++; empty >= maxEmptyReads {
					s.err, s.eof = io.ErrNoProgress, true
				}
			}
			continue
		}

		s.chunk = tokenizer.NewStream(string(s.buf[:cut]))
		s.n = copy(s.buf, s.buf[cut:s.n])
		return true
	}
	return false
}

// wholeRunes returns the length of the longest prefix of b that does not end
// inside a UTF-8 sequence.
func wholeRunes(b []byte) int {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}
	return len(b)
}

// errSource is implemented by sources that can fail, like ReaderSource.
type errSource interface {
	Err() error
}

// BytesSource is a Source over a byte slice, such as a memory-mapped file.
// Invalid UTF-8 decodes to utf8.RuneError one byte at a time.
type BytesSource struct {
	data []byte
	pos  int
}

var _ Source = (*BytesSource)(nil)

// NewBytesSource creates a Source reading data. The slice is not copied.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Peek implements Source.
func (s *BytesSource) Peek() (rune, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	r, _ := utf8.DecodeRune(s.data[s.pos:])
	return r, true
}

// Get implements Source.
func (s *BytesSource) Get() (rune, bool) {
	if s.pos >= len(s.data) {
		return 0, false
	}
	r, size := utf8.DecodeRune(s.data[s.pos:])
	s.pos += size
	return r, true
}

// End implements Source.
func (s *BytesSource) End() bool {
	return s.pos >= len(s.data)
}
