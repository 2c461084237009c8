// AngelaMos | 2026
// service.go

package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) UpsertForUser(
	ctx context.Context,
	userID string,
	req UpsertRecordRequest,
) (*Record, error) {
	recordDate, err := time.Parse(time.DateOnly, req.RecordDate)
	if err != nil {
		return nil, fmt.Errorf(
			"upsert record: invalid date %q: %w",
			req.RecordDate,
			core.ErrInvalidInput,
		)
	}

	record := &Record{
		UserID:         userID,
		RecordDate:     recordDate,
		SalesTarget:    req.SalesTarget,
		SalesCurrent:   req.SalesCurrent,
		AverageTicket:  req.AverageTicket,
		NPS:            req.NPS,
		ConversionRate: req.ConversionRate,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *Service) LatestForUser(ctx context.Context, userID string) (*Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("latest record: %w", core.ErrUnauthorized)
	}

	return s.repo.GetLatestForUser(ctx, userID)
}

func (s *Service) HistoryForUser(ctx context.Context, userID string) ([]Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("record history: %w", core.ErrUnauthorized)
	}

	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) UpdateRecord(
	ctx context.Context,
	recordID string,
	req UpsertRecordRequest,
) (*Record, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	record.SalesTarget = req.SalesTarget
	record.SalesCurrent = req.SalesCurrent
	record.AverageTicket = req.AverageTicket
	record.NPS = req.NPS
	record.ConversionRate = req.ConversionRate

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *Service) DeleteRecord(ctx context.Context, recordID string) error {
	return s.repo.Delete(ctx, recordID)
}
