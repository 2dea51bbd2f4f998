package normalize_test

import (
	"testing"

	"github.com/tnorman/wayfarer/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ada@Example.COM", "ada@example.com"},
		{"  spaced@example.com  ", "spaced@example.com"},
		{"already@example.com", "already@example.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalize.Email(tc.in); got != tc.want {
			t.Errorf("Email(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Ada Lovelace  ", "Ada Lovelace"},
		{"Ada", "Ada"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalize.Name(tc.in); got != tc.want {
			t.Errorf("Name(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"moe szyslak", "Moe Szyslak"},
		{"MOE SZYSLAK", "Moe Szyslak"},
		{"  mixed CASE name ", "Mixed Case Name"},
		{"single", "Single"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalize.TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"physics", "Physics"},
		{"PHYSICS", "Physics"},
		{"two words", "Two words"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalize.Capitalize(tc.in); got != tc.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
