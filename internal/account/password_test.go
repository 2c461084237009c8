// AngelaMos | 2026
// password_test.go

package account

import (
	"testing"
)

func TestDerivePassword(t *testing.T) {
	cases := []struct {
		name       string
		enrollment string
		want       string
	}{
		{"short enrollment is left-padded", "1001", "001001"},
		{"six characters pass through", "123456", "123456"},
		{"longer than six passes through", "12345678", "12345678"},
		{"empty becomes all zeros", "", "000000"},
		{"single digit", "7", "000007"},
		{"surrounding whitespace is trimmed first", "  123  ", "000123"},
		{"non-numeric enrollments are padded too", "AB1", "000AB1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DerivePassword(tc.enrollment)
			if got != tc.want {
				t.Errorf("DerivePassword(%q) = %q, want %q",
					tc.enrollment, got, tc.want)
			}
		})
	}
}
