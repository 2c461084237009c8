// AngelaMos | 2026
// service.go

package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/gerenciador/internal/account"
	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/profile"
	"github.com/carterperez-dev/gerenciador/internal/role"
)

// PerformancePurger removes a user's performance records during
// deprovisioning. Satisfied by performance.Repository.
type PerformancePurger interface {
	DeleteForUser(ctx context.Context, userID string) error
}

var (
	// ErrDuplicateEnrollment means another profile already holds the
	// enrollment number.
	ErrDuplicateEnrollment = errors.New("enrollment number already registered")

	// ErrAlreadyRegistered means an account and its profile both exist
	// for the email, so there is nothing left to provision.
	ErrAlreadyRegistered = errors.New("user already fully registered")
)

// Input carries everything needed to provision one user end to end.
// There is no password field: the initial credential is always derived
// from the enrollment number, the same rule ResetPassword applies.
type Input struct {
	Email            string
	FullName         string
	EnrollmentNumber string
	Role             string
	StoreID          *string
	RegionalID       *string
	Store            *string
	Regional         *string
}

// Result reports the provisioned user. Reused is true when an existing
// account without a profile was completed instead of a new one created.
type Result struct {
	UserID string
	Reused bool
}

type Service struct {
	accounts    account.Repository
	profiles    profile.Repository
	roles       role.Repository
	performance PerformancePurger
	creator     account.Creator
	logger      *slog.Logger
}

func NewService(
	accounts account.Repository,
	profiles profile.Repository,
	roles role.Repository,
	perf PerformancePurger,
	creator account.Creator,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:    accounts,
		profiles:    profiles,
		roles:       roles,
		performance: perf,
		creator:     creator,
		logger:      logger,
	}
}

// Create provisions account, profile, and role for one user. The steps
// form a saga: when a later step fails, every earlier step is undone so
// no half-registered user remains.
func (s *Service) Create(ctx context.Context, input Input) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.profiles.GetByEnrollment(ctx, input.EnrollmentNumber); err == nil {
		return nil, fmt.Errorf("provision %s: %w", email, ErrDuplicateEnrollment)
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("provision %s: %w", email, err)
	}

	sg := newSaga(s.logger)

	acct, reused, err := s.resolveAccount(ctx, sg, email, input)
	if err != nil {
		return nil, err
	}

	prof := &profile.Profile{
		ID:               acct.ID,
		FullName:         input.FullName,
		EnrollmentNumber: input.EnrollmentNumber,
		StoreID:          input.StoreID,
		RegionalID:       input.RegionalID,
		Store:            input.Store,
		Regional:         input.Regional,
		AvatarInitials:   profile.AvatarInitials(input.FullName),
	}

	if err := s.profiles.Insert(ctx, prof); err != nil {
		sg.compensate(ctx)
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("provision %s: %w", email, ErrDuplicateEnrollment)
		}
		return nil, fmt.Errorf("provision %s: %w", email, err)
	}

	sg.register(func(ctx context.Context) error {
		return s.profiles.Delete(ctx, prof.ID)
	})

	if err := s.roles.Replace(ctx, acct.ID, input.Role); err != nil {
		sg.compensate(ctx)
		return nil, fmt.Errorf("provision %s: %w", email, err)
	}

	s.logger.InfoContext(ctx, "user provisioned",
		slog.String("user_id", acct.ID),
		slog.String("role", input.Role),
		slog.Bool("reused_account", reused),
	)

	return &Result{UserID: acct.ID, Reused: reused}, nil
}

// resolveAccount finds or creates the account for the email. An existing
// account that already has a profile means the user is fully registered.
func (s *Service) resolveAccount(
	ctx context.Context,
	sg *saga,
	email string,
	input Input,
) (*account.Account, bool, error) {
	acct, err := s.accounts.GetByEmail(ctx, email)

	switch {
	case err == nil:
		if _, perr := s.profiles.GetByID(ctx, acct.ID); perr == nil {
			return nil, false, fmt.Errorf("provision %s: %w", email, ErrAlreadyRegistered)
		} else if !errors.Is(perr, core.ErrNotFound) {
			return nil, false, fmt.Errorf("provision %s: %w", email, perr)
		}
		return acct, true, nil

	case errors.Is(err, core.ErrNotFound):
		password := account.DerivePassword(input.EnrollmentNumber)
		created, cerr := s.creator.CreateAccount(ctx, email, password, input.FullName)
		if cerr != nil {
			if errors.Is(cerr, core.ErrDuplicateKey) {
				// lost a race with a concurrent import, reuse the winner
				existing, gerr := s.accounts.GetByEmail(ctx, email)
				if gerr != nil {
					return nil, false, fmt.Errorf("provision %s: %w", email, gerr)
				}
				return existing, true, nil
			}
			return nil, false, fmt.Errorf("provision %s: %w", email, cerr)
		}

		sg.register(func(ctx context.Context) error {
			return s.accounts.Delete(ctx, created.ID)
		})
		return created, false, nil

	default:
		return nil, false, fmt.Errorf("provision %s: %w", email, err)
	}
}

// ResetPassword restores a user's password to the one derived from the
// enrollment number.
func (s *Service) ResetPassword(ctx context.Context, userID string) error {
	prof, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := core.HashPassword(account.DerivePassword(prof.EnrollmentNumber))
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	if err := s.accounts.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset", slog.String("user_id", userID))

	return nil
}

// SyncReport summarizes a bulk password synchronization run.
type SyncReport struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

// SyncPasswords walks every profile and resets each password to the
// enrollment-derived credential. Failures are collected per user so one
// broken account never aborts the run.
func (s *Service) SyncPasswords(ctx context.Context) (*SyncReport, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("sync passwords: %w", err)
	}

	report := &SyncReport{Total: len(profiles), Errors: []string{}}

	for i := range profiles {
		prof := &profiles[i]

		if err := s.ResetPassword(ctx, prof.ID); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf(
				"%s (matrícula %s): %v",
				prof.FullName, prof.EnrollmentNumber, err,
			))
			continue
		}

		report.Success++
	}

	s.logger.InfoContext(ctx, "password synchronization finished",
		slog.Int("total", report.Total),
		slog.Int("success", report.Success),
		slog.Int("failures", len(report.Errors)),
	)

	return report, nil
}

// Delete removes a user and everything hanging off the account.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := s.performance.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("deprovision %s: %w", userID, err)
	}

	if err := s.roles.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("deprovision %s: %w", userID, err)
	}

	if err := s.profiles.Delete(ctx, userID); err != nil && !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("deprovision %s: %w", userID, err)
	}

	if err := s.accounts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deprovision %s: %w", userID, err)
	}

	return nil
}
