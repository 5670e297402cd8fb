// AngelaMos | 2026
// handler.go

package notification

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

type TestSendRequest struct {
	Recipient string `json:"recipient" validate:"required,email,max=255"`
}

type StatusResponse struct {
	Configured bool `json:"configured"`
}

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
	r.Route("/notifications", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.History)
		r.Get("/status", h.Status)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/test", h.SendTest)
		})
	})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, entries)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	core.OK(w, StatusResponse{Configured: h.service.Configured()})
}

func (h *Handler) SendTest(w http.ResponseWriter, r *http.Request) {
	if !h.service.Configured() {
		core.BadRequest(w, "notification provider is not configured")
		return
	}

	var req TestSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.SendTest(r.Context(), req.Recipient)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, entry)
}
