package gui

import (
	"path/filepath"
)

const appTitle = "Markdown Editor"

// Document tracks the buffer being edited and where it lives on disk.
type Document struct {
	path    string
	content string
	saved   bool
}

// NewDocument creates an unsaved-to-disk buffer with initial content. It
// starts clean so closing a fresh window does not prompt.
func NewDocument(content string) *Document {
	return &Document{content: content, saved: true}
}

// Path returns the file backing the document, or "" if there is none yet.
func (d *Document) Path() string { return d.path }

// Content returns the current buffer.
func (d *Document) Content() string { return d.content }

// Saved reports whether the buffer matches what was last loaded or written.
func (d *Document) Saved() bool { return d.saved }

// HasPath reports whether Save can write without asking for a location.
func (d *Document) HasPath() bool { return d.path != "" }

// Edit replaces the buffer. Editing with identical content keeps the saved
// state.
func (d *Document) Edit(content string) {
	if content == d.content {
		return
	}
	d.content = content
	d.saved = false
}

// Loaded records that content was read from path.
func (d *Document) Loaded(path, content string) {
	d.path = path
	d.content = content
	d.saved = true
}

// SavedAs records that the buffer was written to path.
func (d *Document) SavedAs(path string) {
	d.path = path
	d.saved = true
}

// Title is the window title for the document.
func (d *Document) Title() string {
	title := appTitle
	if d.path != "" {
		title = filepath.Base(d.path) + " - " + appTitle
	}
	if !d.saved {
		title = "● " + title
	}
	return title
}
