// AngelaMos | 2026
// entity.go

package profile

import (
	"strings"
	"time"
	"unicode"
)

// Profile is the application-level record for an account. The ID is the
// account ID; EnrollmentNumber is unique across all profiles.
type Profile struct {
	ID               string    `db:"id"`
	FullName         string    `db:"full_name"`
	EnrollmentNumber string    `db:"enrollment_number"`
	StoreID          *string   `db:"store_id"`
	RegionalID       *string   `db:"regional_id"`
	Store            *string   `db:"store"`
	Regional         *string   `db:"regional"`
	AvatarInitials   string    `db:"avatar_initials"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// AvatarInitials derives the display initials for a name: the first letter
// of each of the first two tokens, uppercased ("Ana Silva" -> "AS").
func AvatarInitials(fullName string) string {
	tokens := strings.Fields(fullName)

	var initials []rune
	for _, token := range tokens {
		if len(initials) == 2 {
			break
		}
		runes := []rune(token)
		initials = append(initials, unicode.ToUpper(runes[0]))
	}

	return string(initials)
}
