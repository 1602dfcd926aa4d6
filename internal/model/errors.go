package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an APIError for the caller.
type ErrorKind int

const (
	// ErrorKindNotFound: the target does not resolve to a live entity.
	ErrorKindNotFound ErrorKind = iota + 1
	// ErrorKindBadRequest: a precondition on the target does not hold.
	ErrorKindBadRequest
	// ErrorKindForbidden: the actor has no relation to the target.
	ErrorKindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNotFound:
		return "not_found"
	case ErrorKindBadRequest:
		return "bad_request"
	case ErrorKindForbidden:
		return "forbidden"
	}
	return "unknown"
}

// APIError is the unified error format.
// It carries the cause category and the action shown to the user.
type APIError struct {
	Kind     ErrorKind
	Code     string // error code
	Message  string // error message
	Category string // category: auth, validation, application, admin, system
	Action   string // what the user can do about it
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Predefined error codes.
const (
	ErrCodeUserNotFound            = "USER_NOT_FOUND"
	ErrCodeVacancyNotFound         = "VACANCY_NOT_FOUND"
	ErrCodeApplicationNotFound     = "APPLICATION_NOT_FOUND"
	ErrCodeMatchNotAccepted        = "MATCH_NOT_ACCEPTED"
	ErrCodeNotMatchParty           = "NOT_MATCH_PARTY"
	ErrCodeNotVacancyOwner         = "NOT_VACANCY_OWNER"
	ErrCodeCannotDeleteAdmin       = "CANNOT_DELETE_ADMIN"
	ErrCodeCannotDeleteSelf        = "CANNOT_DELETE_SELF"
	ErrCodeInvalidStatus           = "INVALID_STATUS"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidID               = "INVALID_ID"
	ErrCodeInvalidRequestBody      = "INVALID_REQUEST_BODY"
)

// IsNotFound reports whether err is an APIError of kind NotFound.
func IsNotFound(err error) bool { return hasKind(err, ErrorKindNotFound) }

// IsBadRequest reports whether err is an APIError of kind BadRequest.
func IsBadRequest(err error) bool { return hasKind(err, ErrorKindBadRequest) }

// IsForbidden reports whether err is an APIError of kind Forbidden.
func IsForbidden(err error) bool { return hasKind(err, ErrorKindForbidden) }

func hasKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// NewUserNotFoundError is returned when a user id does not resolve.
func NewUserNotFoundError() *APIError {
	return &APIError{
		Kind:     ErrorKindNotFound,
		Code:     ErrCodeUserNotFound,
		Message:  "User not found.",
		Category: "auth",
		Action:   "Sign in again.",
	}
}

// NewVacancyNotFoundError is returned when a vacancy id does not resolve.
func NewVacancyNotFoundError(vacancyID int64) *APIError {
	return &APIError{
		Kind:     ErrorKindNotFound,
		Code:     ErrCodeVacancyNotFound,
		Message:  fmt.Sprintf("Vacancy %d was not found.", vacancyID),
		Category: "application",
		Action:   "Check the vacancy id.",
	}
}

// NewApplicationNotFoundError is returned when an application id does not resolve.
func NewApplicationNotFoundError(applicationID int64) *APIError {
	return &APIError{
		Kind:     ErrorKindNotFound,
		Code:     ErrCodeApplicationNotFound,
		Message:  fmt.Sprintf("Application %d was not found.", applicationID),
		Category: "application",
		Action:   "Check the application id.",
	}
}

// NewMatchNotAcceptedError is returned when a non-accepted application is deleted as a match.
func NewMatchNotAcceptedError() *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeMatchNotAccepted,
		Message:  "Only accepted applications can be deleted as matches.",
		Category: "application",
		Action:   "Wait until the company has accepted the application.",
	}
}

// NewNotMatchPartyError is returned when the actor is neither party of the application.
func NewNotMatchPartyError() *APIError {
	return &APIError{
		Kind:     ErrorKindForbidden,
		Code:     ErrCodeNotMatchParty,
		Message:  "You are not part of this application.",
		Category: "auth",
		Action:   "Only the job seeker or the company of a match can end it.",
	}
}

// NewNotVacancyOwnerError is returned when a company acts on another company's vacancy.
func NewNotVacancyOwnerError() *APIError {
	return &APIError{
		Kind:     ErrorKindForbidden,
		Code:     ErrCodeNotVacancyOwner,
		Message:  "This application belongs to another company's vacancy.",
		Category: "auth",
		Action:   "Only the company that published the vacancy can change its applications.",
	}
}

// NewCannotDeleteAdminError is returned when an admin targets another admin account.
func NewCannotDeleteAdminError() *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeCannotDeleteAdmin,
		Message:  "Admin accounts cannot be deleted or modified from the admin console.",
		Category: "admin",
		Action:   "Select a job seeker or company account.",
	}
}

// NewCannotDeleteSelfError is returned when an admin targets their own account.
func NewCannotDeleteSelfError() *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeCannotDeleteSelf,
		Message:  "You cannot delete your own account.",
		Category: "admin",
		Action:   "Ask another administrator.",
	}
}

// NewInvalidStatusError is returned for an unknown application status.
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("Invalid application status: %q", status),
		Category: "validation",
		Action:   "Use one of APPLIED, ACCEPTED or REJECTED.",
	}
}

// NewInvalidStatusTransitionError is returned for a transition the state machine forbids.
func NewInvalidStatusTransitionError(from, to ApplicationStatus) *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeInvalidStatusTransition,
		Message:  fmt.Sprintf("Cannot change application status from %s to %s.", from, to),
		Category: "application",
		Action:   "Only APPLIED applications can be accepted or rejected.",
	}
}

// NewInvalidIDError is returned when a path id is malformed.
func NewInvalidIDError(name, raw string) *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeInvalidID,
		Message:  fmt.Sprintf("Invalid %s id: %q", name, raw),
		Category: "validation",
		Action:   "Check the id in the request path.",
	}
}

// NewInvalidRequestBodyError is returned when a request body cannot be decoded.
func NewInvalidRequestBodyError() *APIError {
	return &APIError{
		Kind:     ErrorKindBadRequest,
		Code:     ErrCodeInvalidRequestBody,
		Message:  "The request body is not valid JSON.",
		Category: "validation",
		Action:   "Send a JSON body of the documented shape.",
	}
}
