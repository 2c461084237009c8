// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/gerenciador/internal/account"
	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/performance"
	"github.com/carterperez-dev/gerenciador/internal/profile"
	"github.com/carterperez-dev/gerenciador/internal/provision"
	"github.com/carterperez-dev/gerenciador/internal/role"
)

// Service composes account, profile, role, and performance state into
// the user views the admin dashboard works with. Mutations that span
// tables go through the provisioning saga.
type Service struct {
	accounts    account.Repository
	profiles    profile.Repository
	roles       role.Repository
	records     performance.Repository
	provisioner *provision.Service
}

func NewService(
	accounts account.Repository,
	profiles profile.Repository,
	roles role.Repository,
	records performance.Repository,
	provisioner *provision.Service,
) *Service {
	return &Service{
		accounts:    accounts,
		profiles:    profiles,
		roles:       roles,
		records:     records,
		provisioner: provisioner,
	}
}

func (s *Service) List(ctx context.Context) ([]UserResponse, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(profiles))
	for i := range profiles {
		resp, err := s.compose(ctx, &profiles[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*UserResponse, error) {
	prof, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.compose(ctx, prof)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateUserRequest,
) (*UserResponse, error) {
	normalizedRole := role.Normalize(req.Role)
	if !role.IsValid(normalizedRole) {
		return nil, fmt.Errorf(
			"create user: invalid role %q: %w",
			req.Role,
			core.ErrInvalidInput,
		)
	}

	result, err := s.provisioner.Create(ctx, provision.Input{
		Email:            req.Email,
		FullName:         req.FullName,
		EnrollmentNumber: req.EnrollmentNumber,
		Role:             normalizedRole,
		StoreID:          req.StoreID,
		RegionalID:       req.RegionalID,
		Store:            req.Store,
		Regional:         req.Regional,
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, result.UserID)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateUserRequest,
) (*UserResponse, error) {
	prof, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		prof.FullName = *req.FullName
		prof.AvatarInitials = profile.AvatarInitials(*req.FullName)
	}
	if req.StoreID != nil {
		prof.StoreID = req.StoreID
	}
	if req.RegionalID != nil {
		prof.RegionalID = req.RegionalID
	}
	if req.Store != nil {
		prof.Store = req.Store
	}
	if req.Regional != nil {
		prof.Regional = req.Regional
	}

	if err := s.profiles.Update(ctx, prof); err != nil {
		return nil, err
	}

	return s.compose(ctx, prof)
}

func (s *Service) UpdateRole(
	ctx context.Context,
	id, rawRole string,
) (*UserResponse, error) {
	normalized := role.Normalize(rawRole)
	if !role.IsValid(normalized) {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			rawRole,
			core.ErrInvalidInput,
		)
	}

	if _, err := s.profiles.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.roles.Replace(ctx, id, normalized); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *Service) ResetPassword(ctx context.Context, id string) error {
	return s.provisioner.ResetPassword(ctx, id)
}

// SyncPasswords resets every user's password to the enrollment-derived
// credential and reports per-user failures.
func (s *Service) SyncPasswords(ctx context.Context) (*provision.SyncReport, error) {
	return s.provisioner.SyncPasswords(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.provisioner.Delete(ctx, id)
}

// compose joins the profile with its account, role, and latest metrics.
// Missing role defaults to user and missing metrics stay nil.
func (s *Service) compose(
	ctx context.Context,
	prof *profile.Profile,
) (*UserResponse, error) {
	acct, err := s.accounts.GetByID(ctx, prof.ID)
	if err != nil {
		return nil, err
	}

	held, err := s.roles.GetForUser(ctx, prof.ID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		held = role.User
	}

	resp := &UserResponse{
		ID:               prof.ID,
		Email:            acct.Email,
		FullName:         prof.FullName,
		EnrollmentNumber: prof.EnrollmentNumber,
		Role:             held,
		AvatarInitials:   prof.AvatarInitials,
		StoreID:          prof.StoreID,
		RegionalID:       prof.RegionalID,
		Store:            prof.Store,
		Regional:         prof.Regional,
		Confirmed:        acct.Confirmed,
		CreatedAt:        prof.CreatedAt,
	}

	latest, err := s.records.GetLatestForUser(ctx, prof.ID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		return resp, nil
	}

	recordResp := performance.ToRecordResponse(latest)
	resp.Performance = &recordResp

	return resp, nil
}
