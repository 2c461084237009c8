// AngelaMos | 2026
// creator.go

package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/gerenciador/internal/config"
	"github.com/carterperez-dev/gerenciador/internal/core"
)

// Creator is the capability used to create new accounts during provisioning.
// The privileged implementation creates accounts with the email already
// confirmed; the self-service one leaves confirmation pending. Which one is
// wired is decided once at startup from configuration, never per call.
type Creator interface {
	CreateAccount(ctx context.Context, email, password, fullName string) (*Account, error)
}

func NewCreator(mode string, repo Repository) (Creator, error) {
	switch mode {
	case config.ProvisionModePrivileged:
		return &PrivilegedCreator{repo: repo}, nil
	case config.ProvisionModeSelfService:
		return &SelfServiceCreator{repo: repo}, nil
	default:
		return nil, fmt.Errorf("unknown provision mode %q", mode)
	}
}

type PrivilegedCreator struct {
	repo Repository
}

func (c *PrivilegedCreator) CreateAccount(
	ctx context.Context,
	email, password, fullName string,
) (*Account, error) {
	return createAccount(ctx, c.repo, email, password, fullName, true)
}

type SelfServiceCreator struct {
	repo Repository
}

func (c *SelfServiceCreator) CreateAccount(
	ctx context.Context,
	email, password, fullName string,
) (*Account, error) {
	return createAccount(ctx, c.repo, email, password, fullName, false)
}

func createAccount(
	ctx context.Context,
	repo Repository,
	email, password, fullName string,
	confirmed bool,
) (*Account, error) {
	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acct := &Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Confirmed:    confirmed,
	}

	if err := repo.Create(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}
