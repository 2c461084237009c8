// AngelaMos | 2026
// performance_test.go

package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

const performanceHeader = "email,nome,data,meta_vendas,vendas_atuais,ticket_medio,nps,taxa_conversao"

func seedAna(t *testing.T, fx *ingestFixture) string {
	t.Helper()

	csvText := strings.Join([]string{
		"email,senha,nome_completo,matricula,cargo",
		"ana@empresa.com,001001,Ana Silva,1001,user",
	}, "\n")

	if _, err := fx.userIngestor().Import(context.Background(), csvText); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	acct, err := fx.accounts.GetByEmail(context.Background(), "ana@empresa.com")
	if err != nil {
		t.Fatalf("seeded account lookup: %v", err)
	}
	return acct.ID
}

func TestPerformanceImportUpsertsRows(t *testing.T) {
	fx := newIngestFixture()
	userID := seedAna(t, fx)

	csvText := strings.Join([]string{
		performanceHeader,
		`ana@empresa.com,Ana Silva,2026-03-15,50000,42000,"350,50",72,"18,4"`,
	}, "\n")

	report, err := fx.performanceIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 1 || len(report.Errors) != 0 {
		t.Fatalf("report = %+v, want 1 success and no errors", report)
	}

	record, err := fx.records.GetLatestForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("record missing: %v", err)
	}

	if record.SalesTarget != 50000 || record.SalesCurrent != 42000 {
		t.Errorf("sales = %v/%v, want 50000/42000", record.SalesTarget, record.SalesCurrent)
	}
	if record.AverageTicket != 350.50 {
		t.Errorf("average ticket = %v, want 350.50", record.AverageTicket)
	}
	if record.NPS != 72 {
		t.Errorf("nps = %d, want 72", record.NPS)
	}
	if record.ConversionRate != 18.4 {
		t.Errorf("conversion rate = %v, want 18.4", record.ConversionRate)
	}
}

func TestPerformanceImportOverwritesSameDay(t *testing.T) {
	fx := newIngestFixture()
	userID := seedAna(t, fx)

	first := performanceHeader + "\nana@empresa.com,Ana,2026-03-15,100,10,5,50,1"
	second := performanceHeader + "\nana@empresa.com,Ana,2026-03-15,100,90,6,60,2"

	for _, csvText := range []string{first, second} {
		report, err := fx.performanceIngestor().Import(context.Background(), csvText)
		if err != nil || report.Success != 1 {
			t.Fatalf("Import: %v (report %+v)", err, report)
		}
	}

	records, err := fx.records.ListForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1 after same-day overwrite", len(records))
	}
	if records[0].SalesCurrent != 90 {
		t.Errorf("sales current = %v, want 90 from the second import", records[0].SalesCurrent)
	}
}

func TestPerformanceImportRowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{
			"missing email and date",
			",Ana,,100,10,5,50,1",
			"Linha 2: Email e data são obrigatórios",
		},
		{
			"bad date",
			"ana@empresa.com,Ana,15/03/2026,100,10,5,50,1",
			"Linha 2 (ana@empresa.com): Data inválida. Use o formato AAAA-MM-DD",
		},
		{
			"bad number",
			"ana@empresa.com,Ana,2026-03-15,abc,10,5,50,1",
			"Linha 2 (ana@empresa.com): Valor numérico inválido para meta_vendas",
		},
		{
			"bad nps",
			"ana@empresa.com,Ana,2026-03-15,100,10,5,alto,1",
			"Linha 2 (ana@empresa.com): Valor numérico inválido para nps",
		},
		{
			"unknown user",
			"ninguem@empresa.com,X,2026-03-15,100,10,5,50,1",
			"Linha 2 (ninguem@empresa.com): Usuário não encontrado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newIngestFixture()
			seedAna(t, fx)

			csvText := performanceHeader + "\n" + tt.row

			report, err := fx.performanceIngestor().Import(context.Background(), csvText)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}

			if report.Success != 0 {
				t.Errorf("Success = %d, want 0", report.Success)
			}
			if len(report.Errors) != 1 || report.Errors[0] != tt.want {
				t.Errorf("Errors = %v, want [%q]", report.Errors, tt.want)
			}
		})
	}
}

func TestPerformanceImportPassesBackendErrorThrough(t *testing.T) {
	fx := newIngestFixture()
	seedAna(t, fx)
	fx.records.upsertErr = errors.New("deadlock detected")

	csvText := performanceHeader + "\nana@empresa.com,Ana,2026-03-15,100,10,5,50,1"

	report, err := fx.performanceIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 0 || len(report.Errors) != 1 {
		t.Fatalf("report = %+v, want a single row error", report)
	}
	if !strings.Contains(report.Errors[0], "Erro interno ao salvar indicadores") ||
		!strings.Contains(report.Errors[0], "deadlock detected") {
		t.Errorf("error = %q, want the backend message appended", report.Errors[0])
	}
}

func TestPerformanceImportStructuralErrors(t *testing.T) {
	fx := newIngestFixture()

	_, err := fx.performanceIngestor().Import(
		context.Background(),
		"email,data\nana@empresa.com,2026-03-15",
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("missing-columns import error = %v, want ErrInvalidInput", err)
	}
}
