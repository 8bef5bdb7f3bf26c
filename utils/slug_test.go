package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Team Lunch!! 2024", "team-lunch-2024"},
		{"Goa Trip", "goa-trip"},
		{"  padded  ", "padded"},
		{"Already-Slugged", "already-slugged"},
		{"CAPS AND 123", "caps-and-123"},
		{"a__b..c", "a-b-c"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
