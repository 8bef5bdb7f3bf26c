package utils

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from an event title: lowercase, runs of
// non-alphanumeric characters collapsed to a single dash, dashes trimmed
// from both ends. "Team Lunch!! 2024" -> "team-lunch-2024".
func Slugify(title string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
