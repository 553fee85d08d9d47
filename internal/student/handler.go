// AngelaMos | 2026
// handler.go

package student

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/students", func(r chi.Router) {
		r.Use(authenticator)

		r.With(middleware.RequirePermission(rbac.PermStudentsView)).
			Get("/", h.List)
		r.With(middleware.RequirePermission(rbac.PermStudentsView)).
			Get("/{studentID}", h.Get)
		r.With(middleware.RequirePermission(rbac.PermStudentsCreate)).
			Post("/", h.Create)
		r.With(middleware.RequirePermission(rbac.PermStudentsEdit)).
			Patch("/{studentID}", h.Update)
		r.With(middleware.RequirePermission(rbac.PermStudentsEdit)).
			Post("/{studentID}/transfer", h.Transfer)
		r.With(middleware.RequirePermission(rbac.PermStudentsEdit)).
			Post("/{studentID}/payments", h.RecordPayment)
		r.With(middleware.RequirePermission(rbac.PermStudentsDelete)).
			Delete("/{studentID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	st, err := h.service.Create(r.Context(), req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToStudentResponse(st))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")

	st, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "student")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToStudentResponse(st))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListStudentsParams{
		Status:    r.URL.Query().Get("status"),
		ProgramID: r.URL.Query().Get("program_id"),
		Search:    r.URL.Query().Get("search"),
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
	id := chi.URLParam(r, "studentID")

	var req UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	st, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToStudentResponse(st))
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")

	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	st, err := h.service.Transfer(r.Context(), id, req.ProgramID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToStudentResponse(st))
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, core.FormatValidationErrors(err))
		return
	}

	st, err := h.service.RecordPayment(r.Context(), id, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToStudentResponse(st))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "studentID")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "student")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "student")
		return
	}
	core.InternalServerError(w, err)
}
