// AngelaMos | 2026
// entity.go

package account

import (
	"time"
)

// Account is the identity record behind a Profile. Passwords are stored as
// argon2id hashes; Confirmed mirrors whether the email was verified (always
// true for accounts created through the privileged path).
type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Confirmed    bool      `db:"confirmed"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
