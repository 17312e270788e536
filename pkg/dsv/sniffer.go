package dsv

// candidateDelimiters are the delimiters DetectDelimiter chooses from, in
// order of preference when scores tie.
var candidateDelimiters = []rune{',', '\t', ';', '|'}

// DetectDelimiter guesses the delimiter of a sample document.
//
// Each candidate splits the sample into rows with a Reader, so delimiters
// inside quoted fields are ignored. A candidate scores the number of extra
// fields on the first row, times ten when every non-empty row agrees on the
// field count. Returns DefaultDelimiter when nothing scores.
//
// For best results, provide at least 2-3 lines of data.
func DetectDelimiter(sample string) rune {
	best := rune(DefaultDelimiter)
	bestScore := 0

	for _, delim := range candidateDelimiters {
		if score := scoreDelimiter(sample, delim); score > bestScore {
			best = delim
			bestScore = score
		}
	}
	return best
}

func scoreDelimiter(sample string, delim rune) int {
	r := NewReader(NewStringSource(sample), delim)

	var counts []int
	for row := range r.Rows() {
		if len(row) == 1 && row[0] == "" {
			continue
		}
		counts = append(counts, len(row)-1)
	}
	if len(counts) == 0 || counts[0] == 0 {
		return 0
	}

	for _, c := range counts[1:] {
		if c != counts[0] {
			return counts[0]
		}
	}
	return counts[0] * 10
}
