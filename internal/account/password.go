// AngelaMos | 2026
// password.go

package account

import (
	"strings"
)

const minPasswordLength = 6

// DerivePassword returns the standardized initial/reset credential for an
// enrollment number: trimmed and left-padded with '0' up to six characters
// ("1001" becomes "001001"). Account creation and password reset both go
// through this function so the two can never diverge.
func DerivePassword(enrollmentNumber string) string {
	password := strings.TrimSpace(enrollmentNumber)

	if len(password) < minPasswordLength {
		password = strings.Repeat("0", minPasswordLength-len(password)) + password
	}

	return password
}
