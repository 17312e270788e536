package dsv

import (
	"io"
	"strconv"
	"strings"
	"testing"
)

func benchmarkDocument(rows int) string {
	var sb strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(`,name,"quoted, with comma","say ""hi""",42.5`)
	}
	return sb.String()
}

func BenchmarkReader_ReadAll(b *testing.B) {
	doc := benchmarkDocument(1000)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		rows := NewReader(NewStringSource(doc), ',').ReadAll()
		if len(rows) != 1000 {
			b.Fatalf("got %d rows", len(rows))
		}
	}
}

func BenchmarkReader_ReaderSource(b *testing.B) {
	doc := benchmarkDocument(1000)
	b.SetBytes(int64(len(doc)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		r := NewReader(NewReaderSource(strings.NewReader(doc)), ',')
		for range r.Rows() {
		}
	}
}

func BenchmarkWriter_WriteAll(b *testing.B) {
	rows := NewReader(NewStringSource(benchmarkDocument(1000)), ',').ReadAll()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		w := NewWriter(NewWriterSink(io.Discard), ',', false)
		if err := w.WriteAll(rows); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDetectDelimiter(b *testing.B) {
	sample := benchmarkDocument(10)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		DetectDelimiter(sample)
	}
}
