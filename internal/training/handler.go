// AngelaMos | 2026
// handler.go

package training

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/gerenciador/internal/core"
	"github.com/carterperez-dev/gerenciador/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/trainings", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.ListMyAssignments)
		r.Post("/{trainingID}/complete", h.CompleteMine)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/", h.ListTrainings)
			r.Post("/", h.CreateTraining)
			r.Get("/{trainingID}", h.GetTraining)
			r.Put("/{trainingID}", h.UpdateTraining)
			r.Put("/{trainingID}/status", h.UpdateStatus)
			r.Put("/{trainingID}/roles", h.UpdateRoles)
			r.Get("/{trainingID}/assignments", h.ListAssignments)
			r.Delete("/{trainingID}", h.DeleteTraining)
		})
	})
}

func (h *Handler) ListMyAssignments(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	assignments, err := h.service.AssignmentsForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, assignments)
}

func (h *Handler) CompleteMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	trainingID := chi.URLParam(r, "trainingID")

	if err := h.service.Complete(r.Context(), trainingID, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "assignment")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, trainings)
}

func (h *Handler) CreateTraining(w http.ResponseWriter, r *http.Request) {
	var req CreateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	createdBy := middleware.GetUserID(r.Context())

	t, err := h.service.Create(r.Context(), req, createdBy)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid training payload")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, t)
}

func (h *Handler) GetTraining(w http.ResponseWriter, r *http.Request) {
	trainingID := chi.URLParam(r, "trainingID")

	t, err := h.service.Get(r.Context(), trainingID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "training")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, t)
}

func (h *Handler) UpdateTraining(w http.ResponseWriter, r *http.Request) {
	trainingID := chi.URLParam(r, "trainingID")

	var req UpdateTrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.Update(r.Context(), trainingID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "training")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, t)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	trainingID := chi.URLParam(r, "trainingID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.UpdateStatus(r.Context(), trainingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "training")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid status")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, t)
}

func (h *Handler) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	trainingID := chi.URLParam(r, "trainingID")

	var req UpdateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	t, err := h.service.UpdateRoles(r.Context(), trainingID, req.Roles)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "training")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid roles")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, t)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	trainingID := chi.URLParam(r, "trainingID")

	assignments, err := h.service.Assignments(r.Context(), trainingID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "training")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, assignments)
}

func (h *Handler) DeleteTraining(w http.ResponseWriter, r *http.Request) {
	trainingID := chi.URLParam(r, "trainingID")

	if err := h.service.Delete(r.Context(), trainingID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "training")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
