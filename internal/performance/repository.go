// AngelaMos | 2026
// repository.go

package performance

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
	Upsert(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	GetLatestForUser(ctx context.Context, userID string) (*Record, error)
	ListForUser(ctx context.Context, userID string) ([]Record, error)
	Update(ctx context.Context, record *Record) error
	Delete(ctx context.Context, id string) error
	DeleteForUser(ctx context.Context, userID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert inserts a record or, when a row already exists for the same
// (user_id, record_date), overwrites its metric columns in place.
func (r *repository) Upsert(ctx context.Context, record *Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO performance_records (
			id, user_id, record_date,
			sales_target, sales_current, average_ticket, nps, conversion_rate,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (user_id, record_date) DO UPDATE SET
			sales_target    = EXCLUDED.sales_target,
			sales_current   = EXCLUDED.sales_current,
			average_ticket  = EXCLUDED.average_ticket,
			nps             = EXCLUDED.nps,
			conversion_rate = EXCLUDED.conversion_rate,
			updated_at      = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, record, query,
		record.ID,
		record.UserID,
		record.RecordDate,
		record.SalesTarget,
		record.SalesCurrent,
		record.AverageTicket,
		record.NPS,
		record.ConversionRate,
	)
	if err != nil {
		return fmt.Errorf("upsert performance record: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Record, error) {
	record := &Record{}

	query := `SELECT * FROM performance_records WHERE id = $1`

	err := r.db.GetContext(ctx, record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("performance record %s: %w", id, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get performance record: %w", err)
	}

	return record, nil
}

func (r *repository) GetLatestForUser(ctx context.Context, userID string) (*Record, error) {
	record := &Record{}

	query := `
		SELECT * FROM performance_records
		WHERE user_id = $1
		ORDER BY record_date DESC
		LIMIT 1`

	err := r.db.GetContext(ctx, record, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("latest record for user %s: %w", userID, core.ErrNotFound)
		}
		return nil, fmt.Errorf("get latest performance record: %w", err)
	}

	return record, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]Record, error) {
	records := []Record{}

	query := `
		SELECT * FROM performance_records
		WHERE user_id = $1
		ORDER BY record_date DESC`

	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("list performance records: %w", err)
	}

	return records, nil
}

func (r *repository) Update(ctx context.Context, record *Record) error {
	query := `
		UPDATE performance_records SET
			sales_target    = $2,
			sales_current   = $3,
			average_ticket  = $4,
			nps             = $5,
			conversion_rate = $6,
			updated_at      = $7
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.SalesTarget,
		record.SalesCurrent,
		record.AverageTicket,
		record.NPS,
		record.ConversionRate,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update performance record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update performance record rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("performance record %s: %w", record.ID, core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM performance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete performance record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete performance record rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("performance record %s: %w", id, core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteForUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM performance_records WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete performance records for user: %w", err)
	}

	return nil
}
