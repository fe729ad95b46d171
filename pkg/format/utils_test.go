package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-time.Minute), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"one day", now.Add(-25 * time.Hour), "1 day ago"},
		{"old", now.Add(-30 * 24 * time.Hour), "Feb 9, 2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelative(tt.t, now))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "/a/b.md", TruncatePath("/a/b.md", 20))
	assert.Equal(t, ".../notes.md", TruncatePath("/home/user/docs/notes.md", 12))
	assert.Equal(t, ".md", TruncatePath("/home/user/docs/notes.md", 3))
}
