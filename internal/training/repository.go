// AngelaMos | 2026
// repository.go

package training

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

type Repository interface {
	Create(ctx context.Context, t *Training) error
	GetByID(ctx context.Context, id string) (*Training, error)
	List(ctx context.Context) ([]Training, error)
	Update(ctx context.Context, t *Training) error
	UpdateStatus(ctx context.Context, id, status string) error
	ReplaceRoles(ctx context.Context, trainingID string, roles []string) error
	Delete(ctx context.Context, id string) error
	ReplaceAssignments(ctx context.Context, trainingID string, userIDs []string) error
	ListAssignments(ctx context.Context, trainingID string) ([]Assignment, error)
	ListAssignmentsForUser(ctx context.Context, userID string) ([]Assignment, error)
	CompleteAssignment(ctx context.Context, trainingID, userID string) error
	Count(ctx context.Context) (int, error)
}

// repository holds the *sqlx.DB rather than core.DBTX because training
// writes span several tables and need their own transactions.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts the training with its quizzes and role filter in one
// transaction.
func (r *repository) Create(ctx context.Context, t *Training) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO trainings (
				id, title, description, scope, scope_id, status, created_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at`

		if err := tx.GetContext(ctx, t, query,
			t.ID, t.Title, t.Description, t.Scope, t.ScopeID, t.Status, t.CreatedBy,
		); err != nil {
			return fmt.Errorf("insert training: %w", err)
		}

		for i := range t.Quizzes {
			quiz := &t.Quizzes[i]
			if quiz.ID == "" {
				quiz.ID = uuid.NewString()
			}
			quiz.TrainingID = t.ID

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO training_quizzes (
					id, training_id, question, options, correct_index, position
				)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				quiz.ID, quiz.TrainingID, quiz.Question,
				quiz.Options, quiz.CorrectIndex, quiz.Position,
			); err != nil {
				return fmt.Errorf("insert quiz: %w", err)
			}
		}

		return insertRoles(ctx, tx, t.ID, t.Roles)
	})
	if err != nil {
		return fmt.Errorf("create training: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Training, error) {
	t := &Training{}

	query := `
		SELECT id, title, description, scope, scope_id, status,
		       created_by, created_at, updated_at
		FROM trainings
		WHERE id = $1`

	err := r.db.GetContext(ctx, t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("training %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get training: %w", err)
	}

	t.Quizzes = []Quiz{}
	if err := r.db.SelectContext(ctx, &t.Quizzes, `
		SELECT id, training_id, question, options, correct_index, position
		FROM training_quizzes
		WHERE training_id = $1
		ORDER BY position`, id,
	); err != nil {
		return nil, fmt.Errorf("get training quizzes: %w", err)
	}

	t.Roles = []string{}
	if err := r.db.SelectContext(ctx, &t.Roles, `
		SELECT role FROM training_roles WHERE training_id = $1 ORDER BY role`, id,
	); err != nil {
		return nil, fmt.Errorf("get training roles: %w", err)
	}

	return t, nil
}

func (r *repository) List(ctx context.Context) ([]Training, error) {
	trainings := []Training{}

	query := `
		SELECT id, title, description, scope, scope_id, status,
		       created_by, created_at, updated_at
		FROM trainings
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &trainings, query); err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}

	return trainings, nil
}

func (r *repository) Update(ctx context.Context, t *Training) error {
	query := `
		UPDATE trainings
		SET title = $2, description = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, t.ID, t.Title, t.Description)
	if err != nil {
		return fmt.Errorf("update training: %w", err)
	}

	return requireRow(result, t.ID)
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE trainings
		SET status = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update training status: %w", err)
	}

	return requireRow(result, id)
}

func (r *repository) ReplaceRoles(
	ctx context.Context,
	trainingID string,
	roles []string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM training_roles WHERE training_id = $1`, trainingID,
		); err != nil {
			return fmt.Errorf("clear training roles: %w", err)
		}

		return insertRoles(ctx, tx, trainingID, roles)
	})
	if err != nil {
		return fmt.Errorf("replace training roles: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trainings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}

	return requireRow(result, id)
}

// ReplaceAssignments rebuilds the assignment set for a training while
// keeping completion state for users that remain eligible.
func (r *repository) ReplaceAssignments(
	ctx context.Context,
	trainingID string,
	userIDs []string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		completed := []string{}
		if err := tx.SelectContext(ctx, &completed, `
			SELECT user_id FROM training_assignments
			WHERE training_id = $1 AND status = $2`,
			trainingID, AssignmentCompleted,
		); err != nil {
			return fmt.Errorf("load completed assignments: %w", err)
		}

		completedSet := make(map[string]bool, len(completed))
		for _, userID := range completed {
			completedSet[userID] = true
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM training_assignments WHERE training_id = $1`, trainingID,
		); err != nil {
			return fmt.Errorf("clear assignments: %w", err)
		}

		now := time.Now().UTC()
		for _, userID := range userIDs {
			status := AssignmentPending
			var completedAt *time.Time
			if completedSet[userID] {
				status = AssignmentCompleted
				completedAt = &now
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO training_assignments (
					id, training_id, user_id, status, assigned_at, completed_at
				)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				uuid.NewString(), trainingID, userID, status, now, completedAt,
			); err != nil {
				return fmt.Errorf("insert assignment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("replace assignments: %w", err)
	}

	return nil
}

func (r *repository) ListAssignments(
	ctx context.Context,
	trainingID string,
) ([]Assignment, error) {
	assignments := []Assignment{}

	query := `
		SELECT id, training_id, user_id, status, assigned_at, completed_at
		FROM training_assignments
		WHERE training_id = $1
		ORDER BY assigned_at`

	if err := r.db.SelectContext(ctx, &assignments, query, trainingID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	return assignments, nil
}

func (r *repository) ListAssignmentsForUser(
	ctx context.Context,
	userID string,
) ([]Assignment, error) {
	assignments := []Assignment{}

	query := `
		SELECT id, training_id, user_id, status, assigned_at, completed_at
		FROM training_assignments
		WHERE user_id = $1
		ORDER BY assigned_at DESC`

	if err := r.db.SelectContext(ctx, &assignments, query, userID); err != nil {
		return nil, fmt.Errorf("list assignments for user: %w", err)
	}

	return assignments, nil
}

func (r *repository) CompleteAssignment(
	ctx context.Context,
	trainingID, userID string,
) error {
	query := `
		UPDATE training_assignments
		SET status = $3, completed_at = NOW()
		WHERE training_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query,
		trainingID, userID, AssignmentCompleted)
	if err != nil {
		return fmt.Errorf("complete assignment: %w", err)
	}

	return requireRow(result, trainingID)
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM trainings`); err != nil {
		return 0, fmt.Errorf("count trainings: %w", err)
	}
	return count, nil
}

func insertRoles(
	ctx context.Context,
	tx *sqlx.Tx,
	trainingID string,
	roles []string,
) error {
	for _, role := range roles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO training_roles (training_id, role)
			VALUES ($1, $2)`,
			trainingID, role,
		); err != nil {
			return fmt.Errorf("insert training role: %w", err)
		}
	}
	return nil
}

func requireRow(result sql.Result, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("training %s: %w", id, core.ErrNotFound)
	}
	return nil
}
