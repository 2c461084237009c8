// AngelaMos | 2026
// role.go

package role

import (
	"strings"
)

const (
	Admin  = "admin"
	Leader = "leader"
	User   = "user"
)

// synonyms maps localized role spellings from CSV exports onto the canonical
// enum. Anything not in the table is left untouched and rejected by IsValid.
var synonyms = map[string]string{
	"admin":         Admin,
	"administrador": Admin,
	"administrator": Admin,
	"leader":        Leader,
	"líder":         Leader,
	"lider":         Leader,
	"user":          User,
	"usuário":       User,
	"usuario":       User,
}

// Normalize lowercases and trims a raw role value and resolves known
// synonyms to the canonical role name.
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	if canonical, ok := synonyms[normalized]; ok {
		return canonical
	}

	return normalized
}

func IsValid(role string) bool {
	return role == Admin || role == Leader || role == User
}

// All returns the closed role set.
func All() []string {
	return []string{Admin, Leader, User}
}
