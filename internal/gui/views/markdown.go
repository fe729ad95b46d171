package views

import (
	"strings"
	"unicode/utf8"
)

// Text positions below are rune offsets into the whole document, matching
// how the entry counts columns.

// blockPrefixes are the line markers SetLinePrefix replaces, longest first.
var blockPrefixes = []string{"###### ", "##### ", "#### ", "### ", "## ", "# ", "- ", "1. ", "> "}

// WrapSelection surrounds text[start:end] with marker. An empty selection
// inserts placeholder between the markers. It returns the new text and the
// cursor offset after the closing marker.
func WrapSelection(text string, start, end int, marker, placeholder string) (string, int) {
	r := []rune(text)
	start, end = clampRange(len(r), start, end)

	inner := string(r[start:end])
	if inner == "" {
		inner = placeholder
	}
	wrapped := marker + inner + marker
	return string(r[:start]) + wrapped + string(r[end:]), start + utf8.RuneCountInString(wrapped)
}

// InsertLink turns text[start:end] into a link label, or inserts a link
// template when nothing is selected.
func InsertLink(text string, start, end int) (string, int) {
	r := []rune(text)
	start, end = clampRange(len(r), start, end)

	label := string(r[start:end])
	if label == "" {
		label = "link text"
	}
	link := "[" + label + "](https://)"
	return string(r[:start]) + link + string(r[end:]), start + utf8.RuneCountInString(link)
}

// SetLinePrefix gives the line containing pos the block marker prefix,
// replacing any heading, list or quote marker already there. Applying the
// marker a line already has removes it.
func SetLinePrefix(text string, pos int, prefix string) (string, int) {
	r := []rune(text)
	pos, _ = clampRange(len(r), pos, pos)

	lineStart := pos
	for lineStart > 0 && r[lineStart-1] != '\n' {
		lineStart--
	}
	rest := string(r[lineStart:])

	current := ""
	for _, p := range blockPrefixes {
		if strings.HasPrefix(rest, p) {
			current = p
			break
		}
	}
	next := prefix
	if current == prefix {
		next = ""
	}

	rest = next + strings.TrimPrefix(rest, current)
	pos += utf8.RuneCountInString(next) - utf8.RuneCountInString(current)
	if pos < lineStart {
		pos = lineStart
	}
	return string(r[:lineStart]) + rest, pos
}

// InsertBlock inserts block at pos as its own paragraph, separated from the
// surrounding text by blank lines. It returns the new text and the cursor
// offset after the block.
func InsertBlock(text string, pos int, block string) (string, int) {
	r := []rune(text)
	pos, _ = clampRange(len(r), pos, pos)
	before, after := string(r[:pos]), string(r[pos:])

	lead := ""
	switch {
	case before == "" || strings.HasSuffix(before, "\n\n"):
	case strings.HasSuffix(before, "\n"):
		lead = "\n"
	default:
		lead = "\n\n"
	}
	trail := "\n\n"
	switch {
	case strings.HasPrefix(after, "\n\n"):
		trail = ""
	case after == "" || strings.HasPrefix(after, "\n"):
		trail = "\n"
	}

	inserted := lead + block + trail
	return before + inserted + after, pos + utf8.RuneCountInString(inserted)
}

// Offset converts an entry cursor position to a rune offset.
func Offset(text string, row, col int) int {
	lines := strings.Split(text, "\n")
	if row >= len(lines) {
		return utf8.RuneCountInString(text)
	}
	offset := 0
	for _, line := range lines[:row] {
		offset += utf8.RuneCountInString(line) + 1
	}
	if n := utf8.RuneCountInString(lines[row]); col > n {
		col = n
	}
	return offset + col
}

// RowCol converts a rune offset to an entry cursor position.
func RowCol(text string, offset int) (row, col int) {
	for i, c := range []rune(text) {
		if i >= offset {
			break
		}
		if c == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}

func clampRange(n, start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}
