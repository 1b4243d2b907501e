package refactor

import (
	"strings"

	"github.com/corerope/corerope/internal/lines"
)

// WrapPlan is the proposed reformatting of one overlong logical line into
// several physical lines joined by backslash continuations.
type WrapPlan struct {
	StartOffset int
	EndOffset   int
	Replacement string
}

// WrapLine finds the logical line containing physical line n and, if it
// exceeds maxWidth, proposes a backslash-continued rewrite broken at its
// outermost (bracket-depth-0) commas — a purely textual helper grounded
// on rope's refactor/wrap_line.py, narrowed here to the comma-boundary
// case (SPEC_FULL.md §4: "added...for completeness of the
// refactoring-consumer layer", no new core invariants). Returns ok=false
// when the line already fits or has no depth-0 comma to break at.
func WrapLine(src string, n, maxWidth int) (plan *WrapPlan, ok bool) {
	ix := lines.New(src)
	llf := lines.NewLogicalLineFinder(ix)
	start, end := llf.LogicalLineRange(n)

	startOffset := ix.LineStart(start)
	endOffset := ix.LineEnd(end)
	if endOffset > len(src) {
		endOffset = len(src)
	}
	text := src[startOffset:endOffset]
	if maxLineWidth(text) <= maxWidth {
		return nil, false
	}

	indent := leadingWhitespace(ix.GetLine(start))
	breaks := topLevelCommaBreaks(text)
	if len(breaks) == 0 {
		return nil, false
	}

	var b strings.Builder
	prev := 0
	for _, pos := range breaks {
		b.WriteString(text[prev:pos])
		b.WriteString(" \\\n")
		b.WriteString(indent)
		b.WriteString("    ")
		prev = pos
		for prev < len(text) && text[prev] == ' ' {
			prev++
		}
	}
	b.WriteString(text[prev:])

	return &WrapPlan{StartOffset: startOffset, EndOffset: endOffset, Replacement: b.String()}, true
}

func maxLineWidth(text string) int {
	max := 0
	for _, l := range strings.Split(text, "\n") {
		if len(l) > max {
			max = len(l)
		}
	}
	return max
}

func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// topLevelCommaBreaks returns the offset just after each comma that sits
// at bracket depth 0 and outside any string literal, skipping the final
// trailing comma (there is nothing left to wrap after it).
func topLevelCommaBreaks(text string) []int {
	var breaks []int
	depth := 0
	inString := byte(0)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString != 0 {
			if c == '\\' {
				i++
			} else if c == inString {
				inString = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			inString = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 && i+1 < len(text) {
				breaks = append(breaks, i+1)
			}
		}
	}
	return breaks
}
