// AngelaMos | 2026
// handler.go

package coach

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

// RegisterRoutes exposes the coach roster publicly; reviews come from
// the public site as well. Mutations are staff-only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/coaches", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{coachID}", h.Get)
		r.Post("/{coachID}/reviews", h.AddReview)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.With(middleware.RequirePermission(rbac.PermCoachesCreate)).
				Post("/", h.Create)
			r.With(middleware.RequirePermission(rbac.PermCoachesEdit)).
				Patch("/{coachID}", h.Update)
			r.With(middleware.RequirePermission(rbac.PermCoachesDelete)).
				Delete("/{coachID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCoachResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "coachID")

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "coach")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCoachResponse(c))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListCoachesParams{
		Specialization: r.URL.Query().Get("specialization"),
		Employment:     r.URL.Query().Get("employment"),
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
	id := chi.URLParam(r, "coachID")

	var req UpdateCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	c, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "coach")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCoachResponse(c))
}

func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "coachID")

	var req AddReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	c, err := h.service.AddReview(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "coach")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCoachResponse(c))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "coachID")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "coach")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
