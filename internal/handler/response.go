// Package handler provides the HTTP handlers and the router.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AchrafReyani/job-matching-platform/internal/middleware"
	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIErrorResponse writes apiErr in the unified error format.
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError converts an error returned by a service into an HTTP response.
// APIErrors map by kind; anything else is a 500 whose cause is only logged.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	slog.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.RequestIDFromContext(r.Context())),
		slog.String("error", err.Error()),
	)
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus maps the error kind to a status code.
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Kind {
	case model.ErrorKindNotFound:
		return http.StatusNotFound
	case model.ErrorKindBadRequest:
		return http.StatusBadRequest
	case model.ErrorKindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// userIDParam reads a user id path parameter. User ids are UUIDs.
func userIDParam(r *http.Request, key string) (string, *model.APIError) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", model.NewInvalidIDError("user", raw)
	}
	return id.String(), nil
}

// int64Param reads a positive integer path parameter.
func int64Param(r *http.Request, key, name string) (int64, *model.APIError) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, model.NewInvalidIDError(name, raw)
	}
	return id, nil
}

// actingUser returns the authenticated caller. The auth middleware guarantees one;
// a missing identity still answers 401 instead of panicking.
func actingUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return "", false
	}
	return userID, true
}
