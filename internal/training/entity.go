// AngelaMos | 2026
// entity.go

package training

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	ScopeStore    = "store"
	ScopeRegional = "regional"
	ScopeCompany  = "company"
)

const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

const (
	AssignmentPending   = "pending"
	AssignmentCompleted = "completed"
)

func ValidScope(scope string) bool {
	return scope == ScopeStore || scope == ScopeRegional || scope == ScopeCompany
}

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusActive, StatusCompleted, StatusArchived:
		return true
	}
	return false
}

// Training is a course targeted at a slice of the workforce. Scope picks
// the organizational cut, Roles narrows it further, and activation turns
// the pair into concrete assignments.
type Training struct {
	ID          string    `db:"id"          json:"id"`
	Title       string    `db:"title"       json:"title"`
	Description string    `db:"description" json:"description"`
	Scope       string    `db:"scope"       json:"scope"`
	ScopeID     *string   `db:"scope_id"    json:"scope_id,omitempty"`
	Status      string    `db:"status"      json:"status"`
	CreatedBy   string    `db:"created_by"  json:"created_by"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`

	Quizzes []Quiz   `db:"-" json:"quizzes,omitempty"`
	Roles   []string `db:"-" json:"roles,omitempty"`
}

// Quiz is one question attached to a training. Options is a JSON array
// of answer texts and CorrectIndex points into it.
type Quiz struct {
	ID           string         `db:"id"            json:"id"`
	TrainingID   string         `db:"training_id"   json:"training_id"`
	Question     string         `db:"question"      json:"question"`
	Options      types.JSONText `db:"options"       json:"options"`
	CorrectIndex int            `db:"correct_index" json:"correct_index"`
	Position     int            `db:"position"      json:"position"`
}

// Assignment links an eligible user to an active training.
type Assignment struct {
	ID          string     `db:"id"           json:"id"`
	TrainingID  string     `db:"training_id"  json:"training_id"`
	UserID      string     `db:"user_id"      json:"user_id"`
	Status      string     `db:"status"       json:"status"`
	AssignedAt  time.Time  `db:"assigned_at"  json:"assigned_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
