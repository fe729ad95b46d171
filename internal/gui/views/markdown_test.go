package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapSelection(t *testing.T) {
	text, pos := WrapSelection("say hello now", 4, 9, "**", "bold text")
	assert.Equal(t, "say **hello** now", text)
	assert.Equal(t, 13, pos)

	text, pos = WrapSelection("ab", 1, 1, "_", "italic text")
	assert.Equal(t, "a_italic text_b", text)
	assert.Equal(t, 14, pos)

	// Reversed and out of range offsets are clamped.
	text, _ = WrapSelection("héllo", 9, 1, "**", "")
	assert.Equal(t, "h**éllo**", text)
}

func TestInsertLink(t *testing.T) {
	text, pos := InsertLink("see docs", 4, 8)
	assert.Equal(t, "see [docs](https://)", text)
	assert.Equal(t, 20, pos)

	text, _ = InsertLink("", 0, 0)
	assert.Equal(t, "[link text](https://)", text)
}

func TestSetLinePrefix(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		pos    int
		prefix string
		want   string
		cursor int
	}{
		{"adds", "one\ntwo", 5, "# ", "one\n# two", 7},
		{"replaces", "one\n### two", 10, "- ", "one\n- two", 8},
		{"toggles off", "- one\ntwo", 3, "- ", "one\ntwo", 1},
		{"cursor in removed marker", "## one", 1, "## ", "one", 0},
		{"empty line", "", 0, "> ", "> ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor := SetLinePrefix(tt.text, tt.pos, tt.prefix)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cursor, cursor)
		})
	}
}

func TestInsertBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		want string
	}{
		{"empty", "", 0, "---\n"},
		{"end of line", "intro", 5, "intro\n\n---\n"},
		{"after newline", "intro\n", 6, "intro\n\n---\n"},
		{"after paragraph", "intro\n\n", 7, "intro\n\n---\n"},
		{"between paragraphs", "a\n\nb", 1, "a\n\n---\n\nb"},
		{"before text", "title", 0, "---\n\ntitle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := InsertBlock(tt.text, tt.pos, "---")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetRowCol(t *testing.T) {
	text := "ab\nçd\n"
	assert.Equal(t, 0, Offset(text, 0, 0))
	assert.Equal(t, 4, Offset(text, 1, 1))
	assert.Equal(t, 5, Offset(text, 1, 9))
	assert.Equal(t, 6, Offset(text, 7, 0))

	row, col := RowCol(text, 4)
	assert.Equal(t, []int{1, 1}, []int{row, col})
	row, col = RowCol(text, 6)
	assert.Equal(t, []int{2, 0}, []int{row, col})
}
