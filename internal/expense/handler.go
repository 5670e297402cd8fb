// AngelaMos | 2026
// handler.go

package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

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
	r.Route("/expenses", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{expenseID}", h.Get)
		r.Put("/{expenseID}", h.Update)
		r.Delete("/{expenseID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req CreateExpenseRequest
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
	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	resp, err := h.service.Get(
		r.Context(),
		callerID,
		callerRole,
		chi.URLParam(r, "expenseID"),
	)
	if err != nil {
		writeRowError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	var req UpdateExpenseRequest
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
		callerID,
		callerRole,
		chi.URLParam(r, "expenseID"),
		req,
	)
	if err != nil {
		writeRowError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	err := h.service.Delete(
		r.Context(),
		callerID,
		callerRole,
		chi.URLParam(r, "expenseID"),
	)
	if err != nil {
		writeRowError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	params := ListExpensesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 50),
		Year:     parseIntQuery(r, "year", 0),
		Month:    time.Month(parseIntQuery(r, "month", 0)),
		Category: r.URL.Query().Get("category"),
		UserID:   r.URL.Query().Get("user_id"),
	}

	if params.Month != 0 && params.Year == 0 {
		core.BadRequest(w, "month filter requires year")
		return
	}
	if params.Month < 0 || params.Month > 12 {
		core.BadRequest(w, "month must be between 1 and 12")
		return
	}

	expenses, total, err := h.service.List(
		r.Context(),
		callerID,
		callerRole,
		params,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(
		w,
		ToExpenseResponseList(expenses),
		params.Page,
		params.PageSize,
		total,
	)
}

func writeRowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "expense")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	default:
		core.InternalServerError(w, err)
	}
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
