package views

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// EditorActions are the callbacks the view fires on user input.
type EditorActions struct {
	OnOpen    func()
	OnSave    func()
	OnSaveAs  func()
	OnChanged func(markdown string)

	OnPreviewToggled func(visible bool)
}

// EditorView is the editor window layout: a header with file info and
// actions, the markdown source on the left and its rendered preview on the
// right.
type EditorView struct {
	// UI components
	editor    *widget.Entry
	preview   *widget.RichText
	split     *container.Split
	fileName  *widget.Label
	unsaved   *widget.Label
	statusBar *widget.Label
	toolbar   *widget.Toolbar
	formatBar *fyne.Container
	content   fyne.CanvasObject

	actions     EditorActions
	showPreview bool
}

// NewEditorView creates the view. showPreview controls whether the rendered
// pane is visible initially.
func NewEditorView(actions EditorActions, showPreview bool) *EditorView {
	v := &EditorView{actions: actions, showPreview: showPreview}
	v.createUI()
	return v
}

func (v *EditorView) createUI() {
	v.editor = widget.NewMultiLineEntry()
	v.editor.Wrapping = fyne.TextWrapWord
	v.editor.OnChanged = func(text string) {
		if v.showPreview {
			v.preview.ParseMarkdown(text)
		}
		if v.actions.OnChanged != nil {
			v.actions.OnChanged(text)
		}
	}

	v.preview = widget.NewRichTextFromMarkdown("")
	v.preview.Wrapping = fyne.TextWrapWord

	v.fileName = widget.NewLabel("")
	v.fileName.TextStyle = fyne.TextStyle{Italic: true}
	v.unsaved = widget.NewLabel("")
	v.statusBar = widget.NewLabel("Ready")

	v.createToolbar()
	v.createFormatBar()

	header := container.NewHBox(
		widget.NewLabelWithStyle("Markdown Editor", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layout.NewSpacer(),
		v.fileName,
		v.unsaved,
		layout.NewSpacer(),
		widget.NewButton("Open File", v.fire(v.actions.OnOpen)),
		widget.NewButton("Save", v.fire(v.actions.OnSave)),
		widget.NewButton("Save As", v.fire(v.actions.OnSaveAs)),
	)

	v.split = container.NewHSplit(v.editor, container.NewVScroll(v.preview))
	v.split.SetOffset(0.5)
	if !v.showPreview {
		v.split.SetOffset(1)
	}

	v.content = container.NewBorder(
		container.NewVBox(header, v.toolbar, v.formatBar), // top
		v.statusBar,                                       // bottom
		nil,                                               // left
		nil,                                               // right
		v.split,                                           // center
	)
}

func (v *EditorView) createToolbar() {
	v.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), v.fire(v.actions.OnOpen)),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), v.fire(v.actions.OnSave)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.VisibilityIcon(), v.TogglePreview),
	)
}

func (v *EditorView) createFormatBar() {
	button := func(label string, fn func()) *widget.Button {
		b := widget.NewButton(label, fn)
		b.Importance = widget.LowImportance
		return b
	}
	v.formatBar = container.NewHBox(
		button("B", v.Bold),
		button("I", v.Italic),
		widget.NewSeparator(),
		button("H1", func() { v.Heading(1) }),
		button("H2", func() { v.Heading(2) }),
		button("H3", func() { v.Heading(3) }),
		widget.NewSeparator(),
		button("•", v.BulletList),
		button("1.", v.NumberedList),
		button(">", v.Quote),
		widget.NewSeparator(),
		button("Link", v.InsertLink),
		button("Table", v.InsertTable),
		button("Rule", v.InsertRule),
	)
}

func (v *EditorView) fire(fn func()) func() {
	return func() {
		if fn != nil {
			fn()
		}
	}
}

// Content returns the root canvas object.
func (v *EditorView) Content() fyne.CanvasObject {
	return v.content
}

// Markdown returns the editor text.
func (v *EditorView) Markdown() string {
	return v.editor.Text
}

// SetMarkdown replaces the editor text, which also refreshes the preview.
func (v *EditorView) SetMarkdown(text string) {
	v.editor.SetText(text)
	v.editor.CursorRow, v.editor.CursorColumn = 0, 0
	v.editor.Refresh()
	v.preview.ParseMarkdown(text)
}

// SetFileInfo shows the current file and the unsaved indicator.
func (v *EditorView) SetFileInfo(path string, saved bool) {
	v.fileName.SetText(path)
	if saved {
		v.unsaved.SetText("")
	} else {
		v.unsaved.SetText("●")
	}
}

// SetStatus updates the status bar.
func (v *EditorView) SetStatus(status string) {
	v.statusBar.SetText(status)
}

// Status returns the status bar text.
func (v *EditorView) Status() string {
	return v.statusBar.Text
}

// TogglePreview shows or hides the rendered pane.
func (v *EditorView) TogglePreview() {
	v.showPreview = !v.showPreview
	if v.showPreview {
		v.preview.ParseMarkdown(v.editor.Text)
		v.split.SetOffset(0.5)
	} else {
		v.split.SetOffset(1)
	}
	if v.actions.OnPreviewToggled != nil {
		v.actions.OnPreviewToggled(v.showPreview)
	}
}

// PreviewVisible reports whether the rendered pane is shown.
func (v *EditorView) PreviewVisible() bool {
	return v.showPreview
}

// FocusEditor moves keyboard focus to the source pane.
func (v *EditorView) FocusEditor(c fyne.Canvas) {
	c.Focus(v.editor)
}

const (
	tableTemplate = "| Column | Column |\n| --- | --- |\n| Cell | Cell |"
	ruleTemplate  = "---"
)

// Bold wraps the selection in **.
func (v *EditorView) Bold() {
	start, end := v.selection()
	v.apply(WrapSelection(v.editor.Text, start, end, "**", "bold text"))
}

// Italic wraps the selection in _.
func (v *EditorView) Italic() {
	start, end := v.selection()
	v.apply(WrapSelection(v.editor.Text, start, end, "_", "italic text"))
}

// Heading makes the cursor line a heading of the given level, or a plain
// paragraph if it already is one.
func (v *EditorView) Heading(level int) {
	level = min(max(level, 1), 6)
	v.linePrefix(strings.Repeat("#", level) + " ")
}

func (v *EditorView) BulletList()   { v.linePrefix("- ") }
func (v *EditorView) NumberedList() { v.linePrefix("1. ") }
func (v *EditorView) Quote()        { v.linePrefix("> ") }

// InsertLink links the selection, or inserts a link template.
func (v *EditorView) InsertLink() {
	start, end := v.selection()
	v.apply(InsertLink(v.editor.Text, start, end))
}

func (v *EditorView) InsertTable() { v.block(tableTemplate) }
func (v *EditorView) InsertRule()  { v.block(ruleTemplate) }

func (v *EditorView) linePrefix(prefix string) {
	v.apply(SetLinePrefix(v.editor.Text, v.cursor(), prefix))
}

func (v *EditorView) block(markdown string) {
	v.apply(InsertBlock(v.editor.Text, v.cursor(), markdown))
}

func (v *EditorView) cursor() int {
	return Offset(v.editor.Text, v.editor.CursorRow, v.editor.CursorColumn)
}

// selection returns the selected range, or an empty range at the cursor. The
// cursor sits at either end of a selection depending on how it was made.
func (v *EditorView) selection() (start, end int) {
	cursor := v.cursor()
	selected := []rune(v.editor.SelectedText())
	if len(selected) == 0 {
		return cursor, cursor
	}
	text := []rune(v.editor.Text)
	if from := cursor - len(selected); from >= 0 && string(text[from:cursor]) == string(selected) {
		return from, cursor
	}
	return cursor, cursor + len(selected)
}

// apply replaces the editor text and moves the cursor to offset. The change
// reaches the preview and OnChanged like typed input.
func (v *EditorView) apply(text string, offset int) {
	v.editor.SetText(text)
	v.editor.CursorRow, v.editor.CursorColumn = RowCol(text, offset)
	v.editor.Refresh()
}
