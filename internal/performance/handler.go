// AngelaMos | 2026
// handler.go

package performance

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
	r.Route("/performance", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMyLatest)
		r.Get("/me/history", h.GetMyHistory)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Get("/users/{userID}", h.GetUserHistory)
			r.Get("/users/{userID}/latest", h.GetUserLatest)
			r.Put("/users/{userID}", h.UpsertUserRecord)
			r.Put("/records/{recordID}", h.UpdateRecord)
			r.Delete("/records/{recordID}", h.DeleteRecord)
		})
	})
}

func (h *Handler) GetMyLatest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	record, err := h.service.LatestForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "performance record")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponse(record))
}

func (h *Handler) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	records, err := h.service.HistoryForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponseList(records))
}

func (h *Handler) GetUserHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	records, err := h.service.HistoryForUser(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponseList(records))
}

func (h *Handler) GetUserLatest(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	record, err := h.service.LatestForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "performance record")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponse(record))
}

func (h *Handler) UpsertUserRecord(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	record, err := h.service.UpsertForUser(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid record date")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponse(record))
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	var req UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	record, err := h.service.UpdateRecord(r.Context(), recordID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "performance record")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecordResponse(record))
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	if err := h.service.DeleteRecord(r.Context(), recordID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "performance record")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
