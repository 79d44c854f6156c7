package comment

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// UnknownAuthor is shown when an author id has no display name.
const UnknownAuthor = "Unknown User"

// AuthorName looks up the display name of c's author.
func AuthorName(dir Directory, c Comment) string {
	if dir == nil {
		return UnknownAuthor
	}
	if name, ok := dir.DisplayName(c.AuthorID); ok {
		return name
	}
	return UnknownAuthor
}

// Initial returns the upper-cased first letter of name for avatars, or "?"
// when name is empty or unknown.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == UnknownAuthor {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// Ago formats t relative to now: "just now", "N minutes ago", "N hours ago",
// "N days ago" for the past week, and an absolute date after that.
func Ago(now, t time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)

	switch {
	case minutes < 1:
		return "just now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%d days ago", days)
	}

	return t.Local().Format("Jan 2, 2006 15:04")
}
