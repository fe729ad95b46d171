package format

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// FormatRelativeTime formats a time as a human-readable relative string
func FormatRelativeTime(t time.Time) string {
	return formatRelative(t, time.Now())
}

func formatRelative(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day") + " ago"
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// TruncatePath shortens a path to maxLen runes by dropping leading
// characters, keeping the file name visible.
func TruncatePath(path string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(path) <= maxLen {
		return path
	}

	runes := []rune(path)
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}
