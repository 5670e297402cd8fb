// AngelaMos | 2026
// handler.go

package analytics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/dashboard", h.Dashboard)
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	if callerID == "" {
		core.Unauthorized(w, "")
		return
	}
	callerRole := middleware.GetUserRole(r.Context())

	params := DashboardParams{
		Year:        parseIntQuery(r, "year", 0),
		Month:       time.Month(parseIntQuery(r, "month", 0)),
		ClassTypeID: r.URL.Query().Get("class_type_id"),
	}
	if callerRole == middleware.RoleAdmin {
		params.InstructorID = r.URL.Query().Get("instructor_id")
	}

	if params.Month != 0 && params.Year == 0 {
		core.BadRequest(w, "month filter requires year")
		return
	}
	if params.Month < 0 || params.Month > 12 {
		core.BadRequest(w, "month must be between 1 and 12")
		return
	}

	resp, err := h.service.Dashboard(r.Context(), callerID, callerRole, params)
	if err != nil {
		if errors.Is(err, ErrDataLoad) {
			core.BadGateway(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
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
