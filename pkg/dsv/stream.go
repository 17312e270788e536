package dsv

// Scanner reads records one at a time from a Reader, optionally treating the
// first row as column headers.
//
// Example usage:
//
//	file, _ := os.Open("stops.csv")
//	defer file.Close()
//
//	scanner := dsv.NewScanner(dsv.NewReader(dsv.NewReaderSource(file), ',')).SetHasHeaders(true)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    id, _ := record.GetByName("stop_id")
//	    fmt.Println(id)
//	}
type Scanner struct {
	reader     *Reader
	hasHeaders bool
	headers    []string
	current    Record
	row        int
	started    bool
	done       bool
}

// NewScanner creates a Scanner reading from r. By default the scanner assumes
// no headers.
func NewScanner(r *Reader) *Scanner {
	if r == nil {
		panic("dsv: scanner reader cannot be nil")
	}
	return &Scanner{reader: r}
}

// SetHasHeaders sets whether the first row holds column names.
// It must be called before the first Scan. Returns the Scanner for chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	s.hasHeaders = hasHeaders
	return s
}

// Scan advances to the next record. It returns false when no rows remain.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		if s.hasHeaders {
			headers, ok := s.reader.ReadRow()
			if !ok {
				s.done = true
				return false
			}
			s.headers = headers
			s.row++
		}
	}

	fields, ok := s.reader.ReadRow()
	if !ok {
		s.done = true
		s.current = Record{}
		return false
	}
	s.row++
	s.current = Record{fields: fields, headers: s.headers}
	return true
}

// Record returns the current record.
// This should only be called after Scan returns true.
func (s *Scanner) Record() Record {
	return s.current
}

// Row returns the 1-indexed document row of the current record, counting the
// header row.
func (s *Scanner) Row() int {
	return s.row
}

// Headers returns the column headers, or nil when headers are disabled or the
// document is empty. Available after the first call to Scan.
func (s *Scanner) Headers() []string {
	return s.headers
}

// HeaderIndex returns the column index of name, or -1 when it is absent.
func (s *Scanner) HeaderIndex(name string) int {
	return HeaderIndex(s.headers, name)
}

// HeaderIndex returns the index of the first header equal to name, or -1.
// Names are matched exactly, without trimming or case folding.
func HeaderIndex(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Record is a single row with access by index or by header name.
type Record struct {
	fields  []string
	headers []string
}

// Get returns the field at index, or (value, false) when out of bounds.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName returns the field under the header name.
// Returns ("", false) if the header is unknown, no headers are set, or the
// row is too short to hold that column.
func (r Record) GetByName(name string) (string, bool) {
	i := HeaderIndex(r.headers, name)
	if i < 0 {
		return "", false
	}
	return r.Get(i)
}

// Fields returns a copy of the field values.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}
