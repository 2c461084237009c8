// AngelaMos | 2026
// entity_test.go

package profile

import (
	"testing"
)

func TestAvatarInitials(t *testing.T) {
	cases := []struct {
		name     string
		fullName string
		want     string
	}{
		{"two tokens", "Ana Silva", "AS"},
		{"single token", "Ana", "A"},
		{"more than two tokens uses the first two", "Ana Maria Silva", "AM"},
		{"lowercase input is uppercased", "ana silva", "AS"},
		{"accented initials survive", "Érica costa", "ÉC"},
		{"extra whitespace between tokens", "Ana   Silva", "AS"},
		{"empty name", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AvatarInitials(tc.fullName)
			if got != tc.want {
				t.Errorf("AvatarInitials(%q) = %q, want %q",
					tc.fullName, got, tc.want)
			}
		})
	}
}
