// AngelaMos | 2026
// users.go

package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/provision"
	"github.com/carterperez-dev/gerenciador/internal/role"
)

const (
	msgMissingUserColumns = "CSV deve conter as colunas obrigatórias: email, senha, nome_completo"
	msgTooFewLines        = "CSV deve ter pelo menos um cabeçalho e uma linha de dados"

	msgEmailRequired      = "Email é obrigatório"
	msgEmailInvalid       = "Email inválido"
	msgPasswordRequired   = "Senha é obrigatória"
	msgPasswordTooShort   = "Senha deve ter no mínimo 6 caracteres"
	msgFullNameRequired   = "Nome completo é obrigatório"
	msgEnrollmentRequired = "Matrícula é obrigatória"
	msgRoleRequired       = "Cargo é obrigatório"
	msgRoleInvalid        = "Cargo inválido. Use: admin, leader ou user"

	msgEnrollmentTaken     = "Matrícula já cadastrada"
	msgAlreadyRegistered   = "Usuário já cadastrado completamente no sistema"
	msgProvisioningFailure = "Erro interno ao criar usuário"
)

// UserIngestor turns a user CSV into provisioned accounts. Rows are
// processed independently and one bad row never aborts the batch.
type UserIngestor struct {
	provisioner *provision.Service
	notifier    Notifier
	logger      *slog.Logger
}

func NewUserIngestor(
	provisioner *provision.Service,
	notifier Notifier,
	logger *slog.Logger,
) *UserIngestor {
	return &UserIngestor{
		provisioner: provisioner,
		notifier:    notifier,
		logger:      logger,
	}
}

// Import validates and provisions every data row of the CSV. Structural
// problems with the file itself come back as an error; per-row failures
// land in the report.
func (ing *UserIngestor) Import(ctx context.Context, csvText string) (*Report, error) {
	lines := SplitRecords(csvText)
	if len(lines) < 2 {
		return nil, fmt.Errorf("%s: %w", msgTooFewLines, core.ErrInvalidInput)
	}

	header := parseHeader(lines[0])
	if !header.has("email", "senha", "nome_completo") {
		return nil, fmt.Errorf("%s: %w", msgMissingUserColumns, core.ErrInvalidInput)
	}

	report := NewReport()

	for i, line := range lines[1:] {
		lineNum := i + 2
		row := ParseLine(line)

		email := strings.ToLower(header.field(row, "email"))

		input, msg := ing.buildInput(header, row, email)
		if msg != "" {
			report.AddRowError(lineNum, email, msg)
			continue
		}

		if _, err := ing.provisioner.Create(ctx, *input); err != nil {
			report.AddRowError(lineNum, email, provisionErrorMessage(err))
			if !errors.Is(err, provision.ErrDuplicateEnrollment) &&
				!errors.Is(err, provision.ErrAlreadyRegistered) {
				ing.logger.ErrorContext(ctx, "user provisioning failed",
					slog.Int("line", lineNum),
					slog.String("error", err.Error()),
				)
			}
			continue
		}

		report.Success++
	}

	ing.notifier.ImportCompleted(ctx, "users", report)

	return report, nil
}

// buildInput validates one row in column order and assembles the
// provisioning input. The first failing check wins.
func (ing *UserIngestor) buildInput(
	header headerIndex,
	row []string,
	email string,
) (*provision.Input, string) {
	if email == "" {
		return nil, msgEmailRequired
	}
	// intranet addresses without a dotted domain are valid here
	if !strings.Contains(email, "@") {
		return nil, msgEmailInvalid
	}

	// senha is only checked syntactically: the stored credential is
	// always derived from the enrollment number.
	password := header.field(row, "senha")
	if password == "" {
		return nil, msgPasswordRequired
	}
	if len(password) < 6 {
		return nil, msgPasswordTooShort
	}

	fullName := header.field(row, "nome_completo")
	if fullName == "" {
		return nil, msgFullNameRequired
	}

	enrollment := header.field(row, "matricula")
	if enrollment == "" {
		return nil, msgEnrollmentRequired
	}

	rawRole := header.field(row, "cargo")
	if rawRole == "" {
		return nil, msgRoleRequired
	}

	normalizedRole := role.Normalize(rawRole)
	if !role.IsValid(normalizedRole) {
		return nil, msgRoleInvalid
	}

	return &provision.Input{
		Email:            email,
		FullName:         fullName,
		EnrollmentNumber: enrollment,
		Role:             normalizedRole,
		StoreID:          optionalField(header, row, "loja_id"),
		RegionalID:       optionalField(header, row, "regional_id"),
		Store:            optionalField(header, row, "loja"),
		Regional:         optionalField(header, row, "regional"),
	}, ""
}

func optionalField(header headerIndex, row []string, column string) *string {
	value := header.field(row, column)
	if value == "" {
		return nil
	}
	return &value
}

// provisionErrorMessage maps the two business errors to their fixed
// operator messages; anything else keeps the backend's own message so
// the operator can act on it.
func provisionErrorMessage(err error) string {
	switch {
	case errors.Is(err, provision.ErrDuplicateEnrollment):
		return msgEnrollmentTaken
	case errors.Is(err, provision.ErrAlreadyRegistered):
		return msgAlreadyRegistered
	default:
		return fmt.Sprintf("%s: %v", msgProvisioningFailure, err)
	}
}
