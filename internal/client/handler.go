// AngelaMos | 2026
// handler.go

package client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
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
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/clients", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{clientID}", h.Get)
		r.Put("/{clientID}", h.Update)
		r.Delete("/{clientID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "client")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Update(
		r.Context(),
		chi.URLParam(r, "clientID"),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "client")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "clientID"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "client")
			return
		}
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListClientsParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 50),
		Search:   r.URL.Query().Get("search"),
	}

	if active := r.URL.Query().Get("active"); active != "" {
		parsed, err := strconv.ParseBool(active)
		if err != nil {
			core.BadRequest(w, "active must be true or false")
			return
		}
		params.Active = &parsed
	}

	clients, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(
		w,
		ToClientResponseList(clients),
		params.Page,
		params.PageSize,
		total,
	)
}

func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}
