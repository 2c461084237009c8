// AngelaMos | 2026
// performance.go

package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/gerenciador/internal/account"
	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/performance"
	"github.com/carterperez-dev/gerenciador/internal/profile"
)

const (
	msgMissingPerformanceColumns = "CSV deve conter as colunas obrigatórias: " +
		"email, nome, data, meta_vendas, vendas_atuais, ticket_medio, nps, taxa_conversao"

	msgEmailDateRequired = "Email e data são obrigatórios"
	msgDateInvalid       = "Data inválida. Use o formato AAAA-MM-DD"
	msgUserNotFound      = "Usuário não encontrado"
	msgProfileNotFound   = "Perfil não encontrado"
	msgUpsertFailure     = "Erro interno ao salvar indicadores"
)

var performanceColumns = []string{
	"email", "nome", "data",
	"meta_vendas", "vendas_atuais", "ticket_medio", "nps", "taxa_conversao",
}

// PerformanceIngestor loads daily performance metrics from CSV rows onto
// already provisioned users. Rows with malformed numbers are rejected
// rather than silently zeroed.
type PerformanceIngestor struct {
	accounts account.Repository
	profiles profile.Repository
	records  performance.Repository
	notifier Notifier
	logger   *slog.Logger
}

func NewPerformanceIngestor(
	accounts account.Repository,
	profiles profile.Repository,
	records performance.Repository,
	notifier Notifier,
	logger *slog.Logger,
) *PerformanceIngestor {
	return &PerformanceIngestor{
		accounts: accounts,
		profiles: profiles,
		records:  records,
		notifier: notifier,
		logger:   logger,
	}
}

func (ing *PerformanceIngestor) Import(ctx context.Context, csvText string) (*Report, error) {
	lines := SplitRecords(csvText)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%s: %w", msgTooFewLines, core.ErrInvalidInput)
	}

	header := parseHeader(lines[0])
	if !header.has(performanceColumns...) {
		return nil, fmt.Errorf("%s: %w", msgMissingPerformanceColumns, core.ErrInvalidInput)
	}

	report := NewReport()

	for i, line := range lines[1:] {
		lineNum := i + 2
		row := ParseLine(line)

		email := strings.ToLower(header.field(row, "email"))

		if msg := ing.importRow(ctx, header, row, email); msg != "" {
			report.AddRowError(lineNum, email, msg)
			continue
		}

		report.Success++
	}

	ing.notifier.ImportCompleted(ctx, "performance", report)

	return report, nil
}

// importRow validates, resolves, and upserts a single metric row. It
// returns a localized message on failure and empty on success.
func (ing *PerformanceIngestor) importRow(
	ctx context.Context,
	header headerIndex,
	row []string,
	email string,
) string {
	rawDate := header.field(row, "data")
	if email == "" || rawDate == "" {
		return msgEmailDateRequired
	}

	recordDate, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return msgDateInvalid
	}

	salesTarget, msg := parseMetric(header, row, "meta_vendas")
	if msg != "" {
		return msg
	}
	salesCurrent, msg := parseMetric(header, row, "vendas_atuais")
	if msg != "" {
		return msg
	}
	averageTicket, msg := parseMetric(header, row, "ticket_medio")
	if msg != "" {
		return msg
	}
	nps, msg := parseIntMetric(header, row, "nps")
	if msg != "" {
		return msg
	}
	conversionRate, msg := parseMetric(header, row, "taxa_conversao")
	if msg != "" {
		return msg
	}

	acct, err := ing.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return msgUserNotFound
		}
		ing.logger.ErrorContext(ctx, "account lookup failed",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return fmt.Sprintf("%s: %v", msgUpsertFailure, err)
	}

	if _, err := ing.profiles.GetByID(ctx, acct.ID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return msgProfileNotFound
		}
		ing.logger.ErrorContext(ctx, "profile lookup failed",
			slog.String("user_id", acct.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Sprintf("%s: %v", msgUpsertFailure, err)
	}

	record := &performance.Record{
		UserID:         acct.ID,
		RecordDate:     recordDate,
		SalesTarget:    salesTarget,
		SalesCurrent:   salesCurrent,
		AverageTicket:  averageTicket,
		NPS:            nps,
		ConversionRate: conversionRate,
	}

	if err := ing.records.Upsert(ctx, record); err != nil {
		ing.logger.ErrorContext(ctx, "performance upsert failed",
			slog.String("user_id", acct.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Sprintf("%s: %v", msgUpsertFailure, err)
	}

	return ""
}

func parseMetric(header headerIndex, row []string, column string) (float64, string) {
	raw := header.field(row, column)
	if raw == "" {
		return 0, fmt.Sprintf("Valor obrigatório para %s", column)
	}

	// accept brazilian decimal commas from spreadsheet exports
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return 0, fmt.Sprintf("Valor numérico inválido para %s", column)
	}

	return value, ""
}

func parseIntMetric(header headerIndex, row []string, column string) (int, string) {
	raw := header.field(row, column)
	if raw == "" {
		return 0, fmt.Sprintf("Valor obrigatório para %s", column)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Sprintf("Valor numérico inválido para %s", column)
	}

	return value, ""
}
