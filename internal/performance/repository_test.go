// AngelaMos | 2026
// repository_test.go

package performance

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestUpsertInsertsAndOverwrites(t *testing.T) {
	repo, mock := newMockRepo(t)

	recordDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	record := &Record{
		UserID:         "user-1",
		RecordDate:     recordDate,
		SalesTarget:    50000,
		SalesCurrent:   42000,
		AverageTicket:  350.5,
		NPS:            72,
		ConversionRate: 18.4,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO performance_records")).
		WithArgs(
			sqlmock.AnyArg(),
			"user-1",
			recordDate,
			50000.0,
			42000.0,
			350.5,
			72,
			18.4,
		).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("rec-1", now, now),
		)

	if err := repo.Upsert(context.Background(), record); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if record.ID != "rec-1" {
		t.Errorf("record.ID = %q, want %q", record.ID, "rec-1")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetLatestForUserNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM performance_records")).
		WithArgs("user-missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetLatestForUser(context.Background(), "user-missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetLatestForUser error = %v, want core.ErrNotFound", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeleteMissingRecord(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM performance_records WHERE id = $1")).
		WithArgs("rec-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "rec-missing")
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Delete error = %v, want core.ErrNotFound", err)
	}
}
