// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
	Meta    *pageMeta  `json:"meta,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type pageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(body)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

func Accepted(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusAccepted, envelope{Success: true, Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(w http.ResponseWriter, data any, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Meta: &pageMeta{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Code: "BAD_REQUEST", Message: message},
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	writeJSON(w, http.StatusUnauthorized, envelope{
		Success: false,
		Error:   &errorBody{Code: "UNAUTHORIZED", Message: message},
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "insufficient permissions"
	}
	writeJSON(w, http.StatusForbidden, envelope{
		Success: false,
		Error:   &errorBody{Code: "FORBIDDEN", Message: message},
	})
}

func NotFound(w http.ResponseWriter, resource string) {
	writeJSON(w, http.StatusNotFound, envelope{
		Success: false,
		Error: &errorBody{
			Code:    "NOT_FOUND",
			Message: resource + " not found",
		},
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	writeJSON(w, http.StatusInternalServerError, envelope{
		Success: false,
		Error: &errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "an unexpected error occurred",
		},
	})
}

// BadGateway reports an upstream dependency failure during a page data load.
func BadGateway(w http.ResponseWriter, err error) {
	slog.Error("upstream fetch failed", "error", err)
	writeJSON(w, http.StatusBadGateway, envelope{
		Success: false,
		Error: &errorBody{
			Code:    "UPSTREAM_ERROR",
			Message: "data load failed, retry the request",
		},
	})
}

func JSONError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status, envelope{
			Success: false,
			Error:   &errorBody{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	InternalServerError(w, err)
}
