// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, prof *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEnrollment(
		ctx context.Context,
		enrollmentNumber string,
	) (*Profile, error)
	Update(ctx context.Context, prof *Profile) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Profile, error)
	ListIDsByScope(ctx context.Context, scope, scopeID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, prof *Profile) error {
	query := `
		INSERT INTO profiles (
			id, full_name, enrollment_number, store_id, regional_id,
			store, regional, avatar_initials
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, prof, query,
		prof.ID,
		prof.FullName,
		prof.EnrollmentNumber,
		prof.StoreID,
		prof.RegionalID,
		prof.Store,
		prof.Regional,
		prof.AvatarInitials,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("insert profile: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert profile: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, full_name, enrollment_number, store_id, regional_id,
		       store, regional, avatar_initials, created_at, updated_at
		FROM profiles
		WHERE id = $1`

	var prof Profile
	err := r.db.GetContext(ctx, &prof, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &prof, nil
}

func (r *repository) GetByEnrollment(
	ctx context.Context,
	enrollmentNumber string,
) (*Profile, error) {
	query := `
		SELECT id, full_name, enrollment_number, store_id, regional_id,
		       store, regional, avatar_initials, created_at, updated_at
		FROM profiles
		WHERE enrollment_number = $1`

	var prof Profile
	err := r.db.GetContext(ctx, &prof, query, enrollmentNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile by enrollment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile by enrollment: %w", err)
	}

	return &prof, nil
}

func (r *repository) Update(ctx context.Context, prof *Profile) error {
	query := `
		UPDATE profiles
		SET full_name = $2, store_id = $3, regional_id = $4,
		    store = $5, regional = $6, avatar_initials = $7,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &prof.UpdatedAt, query,
		prof.ID,
		prof.FullName,
		prof.StoreID,
		prof.RegionalID,
		prof.Store,
		prof.Regional,
		prof.AvatarInitials,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM profiles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete profile: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Profile, error) {
	query := `
		SELECT id, full_name, enrollment_number, store_id, regional_id,
		       store, regional, avatar_initials, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC`

	var profiles []Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

// ListIDsByScope returns profile IDs filtered by training scope: store and
// regional filter on the matching column, company returns everyone.
func (r *repository) ListIDsByScope(
	ctx context.Context,
	scope, scopeID string,
) ([]string, error) {
	var query string
	var args []any

	switch scope {
	case "store":
		query = `SELECT id FROM profiles WHERE store_id = $1 ORDER BY created_at`
		args = []any{scopeID}
	case "regional":
		query = `SELECT id FROM profiles WHERE regional_id = $1 ORDER BY created_at`
		args = []any{scopeID}
	default:
		query = `SELECT id FROM profiles ORDER BY created_at`
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles by scope: %w", err)
	}

	return ids, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM profiles`)
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}

	return count, nil
}
