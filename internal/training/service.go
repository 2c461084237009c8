// AngelaMos | 2026
// service.go

package training

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx/types"

	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/role"
)

// ScopeLister resolves which users fall inside a training's
// organizational scope. Satisfied by profile.Repository.
type ScopeLister interface {
	ListIDsByScope(ctx context.Context, scope, scopeID string) ([]string, error)
}

// RoleLister resolves which users hold any of a set of roles. Satisfied
// by role.Repository.
type RoleLister interface {
	ListUserIDsWithRoles(ctx context.Context, roles []string) ([]string, error)
}

type Service struct {
	repo     Repository
	profiles ScopeLister
	roles    RoleLister
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	profiles ScopeLister,
	roles RoleLister,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		roles:    roles,
		logger:   logger,
	}
}

func (s *Service) Create(
	ctx context.Context,
	req CreateTrainingRequest,
	createdBy string,
) (*Training, error) {
	normalizedRoles, err := normalizeRoles(req.Roles)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	quizzes := make([]Quiz, 0, len(req.Quizzes))
	for i, input := range req.Quizzes {
		if input.CorrectIndex >= len(input.Options) {
			return nil, fmt.Errorf(
				"create training: quiz %d correct_index out of range: %w",
				i,
				core.ErrInvalidInput,
			)
		}
		quizzes = append(quizzes, Quiz{
			Question:     input.Question,
			Options:      types.JSONText(encodeOptions(input.Options)),
			CorrectIndex: input.CorrectIndex,
			Position:     i,
		})
	}

	t := &Training{
		Title:       req.Title,
		Description: req.Description,
		Scope:       req.Scope,
		ScopeID:     req.ScopeID,
		Status:      status,
		CreatedBy:   createdBy,
		Quizzes:     quizzes,
		Roles:       normalizedRoles,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if t.Status == StatusActive {
		if err := s.materialize(ctx, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Training, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Training, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateTrainingRequest,
) (*Training, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// UpdateStatus moves a training through its lifecycle. Entering active
// materializes assignments for every currently eligible user.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Training, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	t.Status = status

	if status == StatusActive {
		if err := s.materialize(ctx, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// UpdateRoles replaces the role filter. An active training gets its
// assignment set rebuilt against the new filter.
func (s *Service) UpdateRoles(
	ctx context.Context,
	id string,
	rawRoles []string,
) (*Training, error) {
	normalized, err := normalizeRoles(rawRoles)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceRoles(ctx, id, normalized); err != nil {
		return nil, err
	}
	t.Roles = normalized

	if t.Status == StatusActive {
		if err := s.materialize(ctx, t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Assignments(ctx context.Context, trainingID string) ([]Assignment, error) {
	if _, err := s.repo.GetByID(ctx, trainingID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignments(ctx, trainingID)
}

func (s *Service) AssignmentsForUser(ctx context.Context, userID string) ([]Assignment, error) {
	return s.repo.ListAssignmentsForUser(ctx, userID)
}

func (s *Service) Complete(ctx context.Context, trainingID, userID string) error {
	return s.repo.CompleteAssignment(ctx, trainingID, userID)
}

// materialize computes the eligible user set as the scope cut filtered
// by the role filter, keeping scope order, and rebuilds assignments.
func (s *Service) materialize(ctx context.Context, t *Training) error {
	scopeID := ""
	if t.ScopeID != nil {
		scopeID = *t.ScopeID
	}

	scoped, err := s.profiles.ListIDsByScope(ctx, t.Scope, scopeID)
	if err != nil {
		return fmt.Errorf("materialize training %s: %w", t.ID, err)
	}

	eligible := scoped
	if len(t.Roles) > 0 {
		withRole, err := s.roles.ListUserIDsWithRoles(ctx, t.Roles)
		if err != nil {
			return fmt.Errorf("materialize training %s: %w", t.ID, err)
		}

		roleSet := make(map[string]bool, len(withRole))
		for _, userID := range withRole {
			roleSet[userID] = true
		}

		eligible = make([]string, 0, len(scoped))
		for _, userID := range scoped {
			if roleSet[userID] {
				eligible = append(eligible, userID)
			}
		}
	}

	if err := s.repo.ReplaceAssignments(ctx, t.ID, eligible); err != nil {
		return fmt.Errorf("materialize training %s: %w", t.ID, err)
	}

	s.logger.InfoContext(ctx, "training assignments materialized",
		slog.String("training_id", t.ID),
		slog.Int("eligible", len(eligible)),
	)

	return nil
}

func normalizeRoles(rawRoles []string) ([]string, error) {
	normalized := make([]string, 0, len(rawRoles))
	for _, raw := range rawRoles {
		canonical := role.Normalize(raw)
		if !role.IsValid(canonical) {
			return nil, fmt.Errorf(
				"invalid role %q: %w",
				raw,
				core.ErrInvalidInput,
			)
		}
		normalized = append(normalized, canonical)
	}
	return normalized, nil
}
