// AngelaMos | 2026
// handler.go

package program

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/middleware"
	"github.com/coverdrive/academy/internal/rbac"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: core.NewValidator(),
	}
}

// RegisterRoutes exposes the catalog read endpoints publicly; mutations
// sit behind the permission gates.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/programs", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{programID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.With(middleware.RequirePermission(rbac.PermProgramsCreate)).
				Post("/", h.Create)
			r.With(middleware.RequirePermission(rbac.PermProgramsEdit)).
				Patch("/{programID}", h.Update)
			r.With(middleware.RequirePermission(rbac.PermProgramsDelete)).
				Delete("/{programID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, h.service.ToResponse(p))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "programID")

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "program")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, h.service.ToResponse(p))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListProgramsParams{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Level:    r.URL.Query().Get("level"),
	}
	params.Page = core.QueryInt(r, "page", 1)
	params.PerPage = core.QueryInt(r, "per_page", 20)

	resp, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "programID")

	var req UpdateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "program")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, h.service.ToResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "programID")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "program")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
