// AngelaMos | 2026
// users_test.go

package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

func TestUserImportProvisionsRows(t *testing.T) {
	fx := newIngestFixture()

	csvText := strings.Join([]string{
		"email,senha,nome_completo,matricula,cargo,loja",
		"ana@empresa.com,001001,Ana Silva,1001,Usuário,Loja Centro",
		"bruno@empresa.com,002002,Bruno Costa,2002,Líder,",
	}, "\n")

	report, err := fx.userIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 2 {
		t.Errorf("Success = %d, want 2", report.Success)
	}
	if len(report.Errors) != 0 {
		t.Errorf("Errors = %v, want none", report.Errors)
	}

	acct, err := fx.accounts.GetByEmail(context.Background(), "ana@empresa.com")
	if err != nil {
		t.Fatalf("ana missing: %v", err)
	}

	prof, err := fx.profiles.GetByID(context.Background(), acct.ID)
	if err != nil {
		t.Fatalf("ana profile missing: %v", err)
	}
	if prof.Store == nil || *prof.Store != "Loja Centro" {
		t.Errorf("ana store = %v, want Loja Centro", prof.Store)
	}

	bruno, err := fx.accounts.GetByEmail(context.Background(), "bruno@empresa.com")
	if err != nil {
		t.Fatalf("bruno missing: %v", err)
	}

	brunoRole, err := fx.roles.GetForUser(context.Background(), bruno.ID)
	if err != nil || brunoRole != "leader" {
		t.Errorf("bruno role = %q (err %v), want leader", brunoRole, err)
	}
}

func TestUserImportIgnoresSuppliedPassword(t *testing.T) {
	fx := newIngestFixture()

	csvText := strings.Join([]string{
		"email,senha,nome_completo,matricula,cargo",
		"ana@empresa.com,anything,Ana Silva,1001,user",
	}, "\n")

	report, err := fx.userIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 1 || len(report.Errors) != 0 {
		t.Fatalf("report = %+v, want 1 success and no errors", report)
	}

	acct, err := fx.accounts.GetByEmail(context.Background(), "ana@empresa.com")
	if err != nil {
		t.Fatalf("ana missing: %v", err)
	}
	if acct.PasswordHash != "hashed:001001" {
		t.Errorf("password hash = %q, want %q (derived from enrollment)",
			acct.PasswordHash, "hashed:001001")
	}
}

func TestUserImportAcceptsIntranetEmail(t *testing.T) {
	fx := newIngestFixture()

	csvText := strings.Join([]string{
		"email,senha,nome_completo,matricula,cargo",
		"ana@intranet,001001,Ana Silva,1001,user",
	}, "\n")

	report, err := fx.userIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 1 || len(report.Errors) != 0 {
		t.Errorf("report = %+v, want the dotless domain accepted", report)
	}
}

func TestUserImportPassesBackendErrorThrough(t *testing.T) {
	fx := newIngestFixture()
	fx.roles.replaceErr = errors.New("connection refused")

	csvText := strings.Join([]string{
		"email,senha,nome_completo,matricula,cargo",
		"ana@empresa.com,001001,Ana Silva,1001,user",
	}, "\n")

	report, err := fx.userIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 0 || len(report.Errors) != 1 {
		t.Fatalf("report = %+v, want a single row error", report)
	}
	if !strings.Contains(report.Errors[0], "Erro interno ao criar usuário") ||
		!strings.Contains(report.Errors[0], "connection refused") {
		t.Errorf("error = %q, want the backend message appended", report.Errors[0])
	}
}

func TestUserImportReportsDuplicateEnrollment(t *testing.T) {
	fx := newIngestFixture()

	csvText := strings.Join([]string{
		"email,senha,nome_completo,matricula,cargo",
		"ana@empresa.com,001001,Ana Silva,1001,user",
		"outra@empresa.com,001001,Outra Pessoa,1001,user",
	}, "\n")

	report, err := fx.userIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 1 {
		t.Errorf("Success = %d, want 1", report.Success)
	}

	want := "Linha 3 (outra@empresa.com): Matrícula já cadastrada"
	if len(report.Errors) != 1 || report.Errors[0] != want {
		t.Errorf("Errors = %v, want [%q]", report.Errors, want)
	}
}

func TestUserImportValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{
			"missing email",
			",001001,Ana Silva,1001,user",
			"Linha 2: Email é obrigatório",
		},
		{
			"invalid email",
			"not-an-email,001001,Ana Silva,1001,user",
			"Linha 2 (not-an-email): Email inválido",
		},
		{
			"missing password",
			"ana@empresa.com,,Ana Silva,1001,user",
			"Linha 2 (ana@empresa.com): Senha é obrigatória",
		},
		{
			"short password",
			"ana@empresa.com,123,Ana Silva,1001,user",
			"Linha 2 (ana@empresa.com): Senha deve ter no mínimo 6 caracteres",
		},
		{
			"missing name",
			"ana@empresa.com,001001,,1001,user",
			"Linha 2 (ana@empresa.com): Nome completo é obrigatório",
		},
		{
			"missing enrollment",
			"ana@empresa.com,001001,Ana Silva,,user",
			"Linha 2 (ana@empresa.com): Matrícula é obrigatória",
		},
		{
			"missing role",
			"ana@empresa.com,001001,Ana Silva,1001,",
			"Linha 2 (ana@empresa.com): Cargo é obrigatório",
		},
		{
			"invalid role",
			"ana@empresa.com,001001,Ana Silva,1001,gerente",
			"Linha 2 (ana@empresa.com): Cargo inválido. Use: admin, leader ou user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newIngestFixture()

			csvText := "email,senha,nome_completo,matricula,cargo\n" + tt.row

			report, err := fx.userIngestor().Import(context.Background(), csvText)
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

func TestUserImportStructuralErrors(t *testing.T) {
	fx := newIngestFixture()

	_, err := fx.userIngestor().Import(context.Background(), "email,senha,nome_completo")
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("header-only import error = %v, want ErrInvalidInput", err)
	}

	_, err = fx.userIngestor().Import(
		context.Background(),
		"email,nome\nana@empresa.com,Ana",
	)
	if !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("missing-columns import error = %v, want ErrInvalidInput", err)
	}
	if err != nil && !strings.Contains(err.Error(), "colunas obrigatórias") {
		t.Errorf("missing-columns message = %q", err.Error())
	}
}

func TestUserImportHeaderCaseInsensitive(t *testing.T) {
	fx := newIngestFixture()

	csvText := strings.Join([]string{
		"EMAIL,Senha,NOME_COMPLETO,Matricula,CARGO",
		"ana@empresa.com,001001,Ana Silva,1001,user",
	}, "\n")

	report, err := fx.userIngestor().Import(context.Background(), csvText)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if report.Success != 1 || len(report.Errors) != 0 {
		t.Errorf("report = %+v, want 1 success and no errors", report)
	}
}
