package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentLifecycle(t *testing.T) {
	doc := NewDocument("# Welcome")
	assert.True(t, doc.Saved())
	assert.False(t, doc.HasPath())
	assert.Equal(t, "Markdown Editor", doc.Title())

	doc.Edit("# Welcome")
	assert.True(t, doc.Saved(), "identical content keeps the saved state")

	doc.Edit("# Changed")
	assert.False(t, doc.Saved())
	assert.Equal(t, "● Markdown Editor", doc.Title())

	doc.SavedAs("/home/ann/notes.md")
	assert.True(t, doc.Saved())
	assert.True(t, doc.HasPath())
	assert.Equal(t, "notes.md - Markdown Editor", doc.Title())
	assert.Equal(t, "# Changed", doc.Content())

	doc.Loaded("/home/ann/other.md", "other")
	assert.Equal(t, "/home/ann/other.md", doc.Path())
	assert.Equal(t, "other", doc.Content())
	assert.True(t, doc.Saved())
}
