// AngelaMos | 2026
// handler.go

package ingest

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/gerenciador/internal/core"
)

// maxImportBytes caps CSV upload size.
const maxImportBytes = 10 << 20

type Handler struct {
	users       *UserIngestor
	performance *PerformanceIngestor
}

func NewHandler(users *UserIngestor, performance *PerformanceIngestor) *Handler {
	return &Handler{
		users:       users,
		performance: performance,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/imports", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/users", h.ImportUsers)
		r.Post("/performance", h.ImportPerformance)
	})
}

// ImportUsers accepts a CSV body and provisions one user per data row.
func (h *Handler) ImportUsers(w http.ResponseWriter, r *http.Request) {
	csvText, ok := readCSVBody(w, r)
	if !ok {
		return
	}

	report, err := h.users.Import(r.Context(), csvText)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, structuralMessage(err))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, report)
}

// ImportPerformance accepts a CSV body and upserts one metric row per line.
func (h *Handler) ImportPerformance(w http.ResponseWriter, r *http.Request) {
	csvText, ok := readCSVBody(w, r)
	if !ok {
		return
	}

	report, err := h.performance.Import(r.Context(), csvText)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, structuralMessage(err))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, report)
}

func readCSVBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		core.BadRequest(w, "request body too large or unreadable")
		return "", false
	}

	if len(body) == 0 {
		core.BadRequest(w, "empty request body")
		return "", false
	}

	return string(body), true
}

// structuralMessage strips the sentinel suffix so the client sees only
// the localized message.
func structuralMessage(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+core.ErrInvalidInput.Error())
}
