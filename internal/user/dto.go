// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/carterperez-dev/gerenciador/internal/performance"
)

// CreateUserRequest carries no password: the initial credential always
// comes from the enrollment number.
type CreateUserRequest struct {
	Email            string  `json:"email"             validate:"required,email"`
	FullName         string  `json:"full_name"         validate:"required,min=2,max=120"`
	EnrollmentNumber string  `json:"enrollment_number" validate:"required,max=20"`
	Role             string  `json:"role"              validate:"required"`
	StoreID          *string `json:"store_id"          validate:"omitempty,max=50"`
	RegionalID       *string `json:"regional_id"       validate:"omitempty,max=50"`
	Store            *string `json:"store"             validate:"omitempty,max=120"`
	Regional         *string `json:"regional"          validate:"omitempty,max=120"`
}

type UpdateUserRequest struct {
	FullName   *string `json:"full_name"   validate:"omitempty,min=2,max=120"`
	StoreID    *string `json:"store_id"    validate:"omitempty,max=50"`
	RegionalID *string `json:"regional_id" validate:"omitempty,max=50"`
	Store      *string `json:"store"       validate:"omitempty,max=120"`
	Regional   *string `json:"regional"    validate:"omitempty,max=120"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UserResponse flattens account, profile, role, and the latest metrics
// into the shape the dashboard consumes.
type UserResponse struct {
	ID               string                         `json:"id"`
	Email            string                         `json:"email"`
	FullName         string                         `json:"full_name"`
	EnrollmentNumber string                         `json:"enrollment_number"`
	Role             string                         `json:"role"`
	AvatarInitials   string                         `json:"avatar_initials"`
	StoreID          *string                        `json:"store_id,omitempty"`
	RegionalID       *string                        `json:"regional_id,omitempty"`
	Store            *string                        `json:"store,omitempty"`
	Regional         *string                        `json:"regional,omitempty"`
	Confirmed        bool                           `json:"confirmed"`
	CreatedAt        time.Time                      `json:"created_at"`
	Performance      *performance.RecordResponse    `json:"performance,omitempty"`
}
