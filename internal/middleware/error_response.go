package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// ErrorResponseBody is the unified JSON error body.
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// WriteErrorResponse writes apiErr with the given status code.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// WriteInternalServerError writes a generic 500. Details belong in the log only.
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "An internal error occurred.",
		Category: "system",
		Action:   "Please try again later.",
	})
}

// WriteUnauthorized writes the 401 returned for a missing or invalid token.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="jobmatch"`)
	WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
		Code:     "UNAUTHORIZED",
		Message:  "Authentication is required.",
		Category: "auth",
		Action:   "Sign in again and retry with a valid access token.",
	})
}

// WriteForbiddenRole writes the 403 returned when the caller's role may not use the route.
func WriteForbiddenRole(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusForbidden, &model.APIError{
		Code:     "FORBIDDEN_ROLE",
		Message:  "Your account is not allowed to perform this action.",
		Category: "auth",
		Action:   "Use an account with the required role.",
	})
}
