// Package locator classifies the syntactic role of a byte offset in source
// text without running a full tokenizer (spec §4.B). It operates directly on
// the text so that it stays usable even when the file does not parse.
package locator

import "fmt"

// OutOfRangeError is returned when an offset falls outside [0, length].
type OutOfRangeError struct {
	Offset int
	Length int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("offset %d out of range [0, %d]", e.Offset, e.Length)
}

// Locator answers questions about the syntactic role of an offset in a
// single source text.
type Locator struct {
	src string
}

// New creates a Locator over src.
func New(src string) *Locator {
	return &Locator{src: src}
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80 // treat non-ASCII bytes as word-constituent (UTF-8 identifiers)
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// WordRange returns the [start, end) byte range of the identifier
// containing offset. offset may point anywhere inside, or one past, the
// word.
func (l *Locator) WordRange(offset int) (int, int, error) {
	if offset < 0 || offset > len(l.src) {
		return 0, 0, &OutOfRangeError{Offset: offset, Length: len(l.src)}
	}
	start := l.findWordStart(offset - 1)
	end := l.findWordEnd(offset-1) + 1
	return start, end, nil
}

// WordAt returns the identifier text containing offset.
func (l *Locator) WordAt(offset int) (string, error) {
	start, end, err := l.WordRange(offset)
	if err != nil {
		return "", err
	}
	if start > end || end > len(l.src) {
		return "", nil
	}
	return l.src[start:end], nil
}

func (l *Locator) findWordStart(offset int) int {
	for offset >= 0 && offset < len(l.src) && isWordByte(l.src[offset]) {
		offset--
	}
	return offset + 1
}

func (l *Locator) findWordEnd(offset int) int {
	offset++
	for offset < len(l.src) && isWordByte(l.src[offset]) {
		offset++
	}
	return offset - 1
}

// findLastNonSpaceChar walks backward over whitespace, honoring a trailing
// backslash line continuation (the newline and the backslash before it are
// also skipped).
func (l *Locator) findLastNonSpaceChar(offset int) int {
	if offset <= 0 {
		return 0
	}
	for offset >= 0 && offset < len(l.src) && isSpaceByte(l.src[offset]) {
		for offset >= 0 && (l.src[offset] == ' ' || l.src[offset] == '\t') {
			offset--
		}
		if offset >= 0 && offset < len(l.src) && l.src[offset] == '\n' {
			offset--
			if offset >= 0 && l.src[offset] == '\\' {
				offset--
			}
		}
	}
	return offset
}

func (l *Locator) findFirstNonSpaceChar(offset int) int {
	if offset >= len(l.src) {
		return len(l.src)
	}
	for offset < len(l.src) && isSpaceByte(l.src[offset]) {
		for offset < len(l.src) && isSpaceByte(l.src[offset]) {
			offset++
		}
		if offset+1 < len(l.src) && l.src[offset] == '\\' {
			offset += 2
		}
	}
	return offset
}

// findStringStart walks backward from a closing quote byte at offset to its
// matching opener. Degrades gracefully (returns 0) on malformed/unterminated
// strings rather than running off the start of the text.
func (l *Locator) findStringStart(offset int) int {
	if offset < 0 || offset >= len(l.src) {
		return 0
	}
	kind := l.src[offset]
	offset--
	for offset >= 0 && l.src[offset] != kind {
		offset--
	}
	if offset < 0 {
		return 0
	}
	return offset
}

func isOpenParen(c byte) bool  { return c == '(' || c == '[' || c == '{' }
func isCloseParen(c byte) bool { return c == ')' || c == ']' || c == '}' }

func (l *Locator) findParensStart(offset int) int {
	current := l.findLastNonSpaceChar(offset - 1)
	for current >= 0 && current < len(l.src) && !isOpenParen(l.src[current]) {
		if l.src[current] == ':' || l.src[current] == ',' {
			// leave as-is; still walk back over the separator below
		} else {
			current = l.findPrimaryStart(current)
		}
		current = l.findLastNonSpaceChar(current - 1)
	}
	return current
}

func (l *Locator) findAtomStart(offset int) int {
	old := offset
	if offset < 0 || offset >= len(l.src) {
		return old
	}
	if l.src[offset] == '\n' || l.src[offset] == '\t' || l.src[offset] == ' ' {
		offset = l.findLastNonSpaceChar(offset)
	}
	if offset < 0 || offset >= len(l.src) {
		return old
	}
	switch {
	case l.src[offset] == '\'' || l.src[offset] == '"':
		return l.findStringStart(offset)
	case isCloseParen(l.src[offset]):
		return l.findParensStart(offset)
	case isWordByte(l.src[offset]):
		return l.findWordStart(offset)
	}
	return old
}

func (l *Locator) findPrimaryWithoutDotStart(offset int) int {
	lastParens := offset
	current := l.findLastNonSpaceChar(offset)
	for current > 0 && current < len(l.src) && isCloseParen(l.src[current]) {
		lastParens = l.findParensStart(current)
		current = lastParens
		current = l.findLastNonSpaceChar(current - 1)
	}
	if current > 0 && current < len(l.src) && (l.src[current] == '\'' || l.src[current] == '"') {
		return l.findStringStart(current)
	}
	if current > 0 && current < len(l.src) && isWordByte(l.src[current]) {
		return l.findWordStart(current)
	}
	return lastParens
}

func (l *Locator) findPrimaryStart(offset int) int {
	if offset < 0 {
		return 0
	}
	current := offset + 1
	if offset >= len(l.src) || l.src[offset] != '.' {
		current = l.findPrimaryWithoutDotStart(offset)
	}
	for current > 0 {
		dotPos := l.findLastNonSpaceChar(current - 1)
		if dotPos < 0 || dotPos >= len(l.src) || l.src[dotPos] != '.' {
			break
		}
		current = l.findPrimaryWithoutDotStart(dotPos - 1)
		if current < 0 || current >= len(l.src) {
			break
		}
		first := l.src[current]
		if first != '_' && !isWordByte(first) {
			break
		}
	}
	return current
}

// PrimaryRange returns the [start, end) range of the longest dotted
// attribute/subscript/call chain ending at offset (spec glossary "Primary").
func (l *Locator) PrimaryRange(offset int) (int, int, error) {
	if offset < 0 || offset > len(l.src) {
		return 0, 0, &OutOfRangeError{Offset: offset, Length: len(l.src)}
	}
	start := l.findPrimaryStart(offset - 1)
	end := l.findWordEnd(offset-1) + 1
	if start < 0 {
		start = 0
	}
	if end > len(l.src) {
		end = len(l.src)
	}
	if start > end {
		start = end
	}
	return start, end, nil
}

// PrimaryAt returns the primary chain text ending at offset, trimmed.
func (l *Locator) PrimaryAt(offset int) (string, error) {
	start, end, err := l.PrimaryRange(offset)
	if err != nil {
		return "", err
	}
	return trimSpace(l.src[start:end]), nil
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpaceByte(s[i]) {
		i++
	}
	for j > i && isSpaceByte(s[j-1]) {
		j--
	}
	return s[i:j]
}

func (l *Locator) getLineStart(offset int) int {
	for offset > 0 && offset < len(l.src) && l.src[offset] != '\n' {
		offset--
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (l *Locator) getLineEnd(offset int) int {
	for offset < len(l.src) && l.src[offset] != '\n' {
		offset++
	}
	return offset
}

func (l *Locator) isFollowedByEquals(offset int) bool {
	for offset < len(l.src) && (l.src[offset] == ' ' || l.src[offset] == '\\') {
		if l.src[offset] == '\\' {
			offset = l.getLineEnd(offset)
		}
		offset++
	}
	if offset+1 < len(l.src) && l.src[offset] == '=' && l.src[offset+1] != '=' {
		return true
	}
	return false
}

// IsAssignmentTarget reports whether the word at offset sits alone at the
// start of its line and is followed (ignoring continuations) by a single
// `=` — the raw-text heuristic for "is on the target of an assignment".
func (l *Locator) IsAssignmentTarget(offset int) bool {
	start, end, err := l.WordRange(offset)
	if err != nil {
		return false
	}
	if end <= len(l.src) && containsByte(l.src[start:end], '.') {
		return false
	}
	lineStart := l.getLineStart(start)
	before := trimSpace(l.src[lineStart:start])
	return before == "" && l.isFollowedByEquals(end)
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// IsClassOrFunctionHeaderName reports whether the word at offset is the
// name in a `def NAME` or `class NAME` header.
func (l *Locator) IsClassOrFunctionHeaderName(offset int) bool {
	start, _, err := l.WordRange(offset)
	if err != nil {
		return false
	}
	lineStart := l.getLineStart(start)
	prevWord := trimSpace(l.src[lineStart:start])
	return prevWord == "def" || prevWord == "class"
}

// IsFunctionCall reports whether the word at offset is followed by `(`
// (whitespace and backslash continuations in between are skipped), and is
// not itself a def/class header name.
func (l *Locator) IsFunctionCall(offset int) bool {
	_, end, err := l.WordRange(offset)
	if err != nil {
		return false
	}
	next := l.findFirstNonSpaceChar(end)
	return !l.IsClassOrFunctionHeaderName(offset) && next < len(l.src) && l.src[next] == '('
}

// IsFromImportModule reports whether offset is inside the module clause of
// a `from MODULE import ...` statement.
func (l *Locator) IsFromImportModule(offset int) bool {
	stmtStart := l.findPrimaryStart(offset)
	lineStart := l.getLineStart(stmtStart)
	prevWord := trimSpace(l.src[lineStart:stmtStart])
	return prevWord == "from"
}

// IsFromImportName reports whether offset is one of the names being
// imported in a `from MODULE import NAME[, NAME...]` statement.
func (l *Locator) IsFromImportName(offset int) bool {
	stmtStart := l.findPrimaryStart(offset)
	if stmtStart < 2 {
		return false
	}
	prevWordStart := l.findWordStart(stmtStart - 2)
	prevWord := trimSpace(l.src[prevWordStart:stmtStart])
	if prevWord != "import" {
		return false
	}
	if prevWordStart < 2 {
		return false
	}
	prevWordStart2 := l.findPrimaryStart(prevWordStart - 2)
	if prevWordStart2 < 2 {
		return false
	}
	prevWordStart3 := l.findPrimaryStart(prevWordStart2 - 2)
	prevWord3 := trimSpace(l.src[prevWordStart3:prevWordStart2])
	lineStart := l.getLineStart(prevWordStart3)
	tillLineStart := trimSpace(l.src[lineStart:prevWordStart3])
	return prevWord3 == "from" && tillLineStart == ""
}
