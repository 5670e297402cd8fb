// AngelaMos | 2026
// handler.go

package document

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atelierlabs/workshop-tracker/internal/core"
	"github.com/atelierlabs/workshop-tracker/internal/middleware"
)

// 25 MiB upload ceiling.
const maxUploadBytes = 25 << 20

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
	r.Route("/documents", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Upload)
		r.Get("/{documentID}", h.Get)
		r.Get("/{documentID}/download", h.DownloadURL)
		r.Delete("/{documentID}", h.Delete)
	})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		core.BadRequest(w, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		core.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	meta := UploadMeta{
		DocumentType: r.FormValue("document_type"),
		Description:  r.FormValue("description"),
	}
	meta.WorkshopID = optionalFormValue(r, "workshop_id")
	meta.IncomeID = optionalFormValue(r, "income_id")
	meta.ExpenseID = optionalFormValue(r, "expense_id")
	meta.ClientID = optionalFormValue(r, "client_id")

	if err := h.validator.Struct(meta); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.service.Upload(r.Context(), userID, UploadParams{
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
		Meta:        meta,
	})
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
		chi.URLParam(r, "documentID"),
	)
	if err != nil {
		writeDocError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	resp, err := h.service.DownloadURL(
		r.Context(),
		callerID,
		callerRole,
		chi.URLParam(r, "documentID"),
	)
	if err != nil {
		writeDocError(w, err)
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
		chi.URLParam(r, "documentID"),
	)
	if err != nil {
		writeDocError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())
	callerRole := middleware.GetUserRole(r.Context())

	docs, err := h.service.List(r.Context(), callerID, callerRole)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDocumentResponseList(docs))
}

func writeDocError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "document")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	default:
		core.InternalServerError(w, err)
	}
}

func optionalFormValue(r *http.Request, key string) *string {
	value := r.FormValue(key)
	if value == "" {
		return nil
	}
	return &value
}
