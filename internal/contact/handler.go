// AngelaMos | 2026
// handler.go

package contact

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

// RegisterRoutes keeps enquiry submission public; everything else is
// staff-facing.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", h.Create)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.With(middleware.RequirePermission(rbac.PermContactsView)).
				Get("/", h.List)
			r.With(middleware.RequirePermission(rbac.PermContactsView)).
				Get("/{contactID}", h.Get)
			r.With(middleware.RequirePermission(rbac.PermContactsEdit)).
				Patch("/{contactID}", h.Update)
			r.With(middleware.RequirePermission(rbac.PermContactsRespond)).
				Post("/{contactID}/responses", h.Respond)
			r.With(middleware.RequirePermission(rbac.PermContactsDelete)).
				Post("/{contactID}/archive", h.Archive)
			r.With(middleware.RequirePermission(rbac.PermContactsDelete)).
				Post("/{contactID}/unarchive", h.Unarchive)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
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
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToContactResponse(c))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contact")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(c))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListContactsParams{
		Status:          r.URL.Query().Get("status"),
		Category:        r.URL.Query().Get("category"),
		Priority:        r.URL.Query().Get("priority"),
		IncludeArchived: r.URL.Query().Get("include_archived") == "true",
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
	id := chi.URLParam(r, "contactID")

	var req UpdateContactRequest
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
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contact")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(c))
}

func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "contactID")

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	responderID := middleware.GetIdentityID(r.Context())

	c, err := h.service.Respond(r.Context(), id, responderID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contact")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToContactResponse(c))
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, true)
}

func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	h.setArchived(w, r, false)
}

func (h *Handler) setArchived(
	w http.ResponseWriter,
	r *http.Request,
	archived bool,
) {
	id := chi.URLParam(r, "contactID")

	var err error
	if archived {
		err = h.service.Archive(r.Context(), id)
	} else {
		err = h.service.Unarchive(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "contact")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
