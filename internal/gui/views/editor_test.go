package views

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestBoldWrapsSelectedText(t *testing.T) {
	test.NewApp()
	v := NewEditorView(EditorActions{}, true)

	var changed string
	v.actions.OnChanged = func(markdown string) { changed = markdown }

	v.SetMarkdown("hello world")
	v.editor.TypedShortcut(&fyne.ShortcutSelectAll{})
	v.Bold()
	assert.Equal(t, "**hello world**", v.Markdown())
	assert.Equal(t, "**hello world**", changed)
	assert.Equal(t, 15, v.editor.CursorColumn)
}

func TestTogglePreviewReportsVisibility(t *testing.T) {
	test.NewApp()
	var seen []bool
	v := NewEditorView(EditorActions{
		OnPreviewToggled: func(visible bool) { seen = append(seen, visible) },
	}, false)

	assert.False(t, v.PreviewVisible())
	v.TogglePreview()
	v.TogglePreview()
	assert.Equal(t, []bool{true, false}, seen)
}
