// AngelaMos | 2026
// repository.go

package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

type Repository interface {
	Replace(ctx context.Context, userID string, role string) error
	GetForUser(ctx context.Context, userID string) (string, error)
	ListUserIDsWithRoles(ctx context.Context, roles []string) ([]string, error)
	DeleteForUser(ctx context.Context, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Replace removes every role row for the user and inserts the single given
// role. Each user holds exactly one role at a time.
func (r *repository) Replace(ctx context.Context, userID string, role string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("replace role delete: %w", err)
	}

	query := `
		INSERT INTO user_roles (id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query,
		uuid.NewString(), userID, role, time.Now().UTC()); err != nil {
		return fmt.Errorf("replace role insert: %w", err)
	}

	return nil
}

func (r *repository) GetForUser(ctx context.Context, userID string) (string, error) {
	var role string

	query := `SELECT role FROM user_roles WHERE user_id = $1 LIMIT 1`

	err := r.db.GetContext(ctx, &role, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("get role for user %s: %w", userID, core.ErrNotFound)
		}
		return "", fmt.Errorf("get role for user: %w", err)
	}

	return role, nil
}

// ListUserIDsWithRoles returns the IDs of every user holding one of the
// given roles. An empty filter matches nobody.
func (r *repository) ListUserIDsWithRoles(ctx context.Context, roles []string) ([]string, error) {
	if len(roles) == 0 {
		return []string{}, nil
	}

	query := `SELECT user_id FROM user_roles WHERE role = ANY($1)`

	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, roles); err != nil {
		return nil, fmt.Errorf("list user ids with roles: %w", err)
	}

	return ids, nil
}

func (r *repository) DeleteForUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete roles for user: %w", err)
	}

	return nil
}
