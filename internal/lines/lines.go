// Package lines implements the Source Lines Index (spec §4.A): byte-offset
// to (line, column) conversion over a text buffer, plus a logical-line and
// block-range finder used by the locator, parser diagnostics, and the
// extract/wrap-line refactoring consumers.
package lines

import "sort"

// Index maps byte offsets to 1-based line numbers in O(log L) and back.
// Grounded on rope's SourceLinesAdapter (rope/codeanalyze.py): a sorted
// vector of line-start offsets, binary-searched.
type Index struct {
	text       string
	lineStarts []int // lineStarts[i] is the byte offset of line i+1
}

// New builds an Index over text.
func New(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// Length returns the number of lines in the buffer.
func (ix *Index) Length() int { return len(ix.lineStarts) }

// LineStart returns the byte offset of the first character of line n (1-based).
func (ix *Index) LineStart(n int) int {
	if n < 1 {
		n = 1
	}
	if n > len(ix.lineStarts) {
		return len(ix.text)
	}
	return ix.lineStarts[n-1]
}

// LineEnd returns the byte offset one past the last character of line n,
// excluding its trailing newline.
func (ix *Index) LineEnd(n int) int {
	start := ix.LineStart(n)
	idx := indexByteFrom(ix.text, start, '\n')
	if idx < 0 {
		return len(ix.text)
	}
	return idx
}

// GetLine returns the text of line n (1-based), without its newline.
func (ix *Index) GetLine(n int) string {
	return ix.text[ix.LineStart(n):ix.LineEnd(n)]
}

// LineNumber returns the 1-based line number containing offset.
func (ix *Index) LineNumber(offset int) int {
	// sort.Search finds the first lineStarts[i] > offset; the containing
	// line is the one before it.
	i := sort.Search(len(ix.lineStarts), func(i int) bool { return ix.lineStarts[i] > offset })
	if i == 0 {
		return 1
	}
	return i
}

// Column returns the 0-based column of offset on its line.
func (ix *Index) Column(offset int) int {
	return offset - ix.LineStart(ix.LineNumber(offset))
}

func indexByteFrom(s string, from int, b byte) int {
	for i := from; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
