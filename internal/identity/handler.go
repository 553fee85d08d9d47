// AngelaMos | 2026
// handler.go

package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/coverdrive/academy/internal/core"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	manageGate func(http.Handler) http.Handler,
) {
	r.Route("/identities", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(manageGate)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{identityID}", h.Get)
		r.Patch("/{identityID}", h.Update)
		r.Delete("/{identityID}", h.Deactivate)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	ident, err := h.service.Create(r.Context(), req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			core.JSONError(w, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToIdentityResponse(ident, time.Now()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "identityID")

	ident, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "identity")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToIdentityResponse(ident, time.Now()))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListIdentitiesParams{
		Search: r.URL.Query().Get("search"),
		Role:   r.URL.Query().Get("role"),
	}
	params.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	params.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	params.Normalize()

	idents, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	now := time.Now()
	responses := make([]IdentityResponse, 0, len(idents))
	for i := range idents {
		responses = append(responses, ToIdentityResponse(&idents[i], now))
	}

	core.OK(w, IdentityListResponse{
		Identities: responses,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "identityID")

	var req UpdateIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	ident, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "identity")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToIdentityResponse(ident, time.Now()))
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "identityID")

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "identity")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
