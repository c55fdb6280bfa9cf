package convert

import (
	"strings"
	"unicode/utf8"
)

// lineCol converts the byte offset of a failure into a 1-based line and column.
// An offset at the end of text points just past the last character.
func lineCol(text string, offset int64) (int, int) {
	pos := int(offset)
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		pos = len(text)
	}

	prefix := text[:pos]
	line := strings.Count(prefix, "\n") + 1
	start := strings.LastIndexByte(prefix, '\n') + 1
	col := utf8.RuneCountInString(prefix[start:]) + 1
	return line, col
}

// snippet returns the given source line, followed by a caret under column
// when the column is known. It returns "" when line is out of range.
func snippet(text string, line, col int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return ""
	}

	src := strings.TrimRight(lines[line-1], "\r")
	if col < 1 {
		return src
	}

	var pad strings.Builder
	for i, r := range []rune(src) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return src + "\n" + pad.String() + "^"
}
