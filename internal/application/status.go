// Package application governs the status of job applications.
//
// An application starts as APPLIED and is decided once by the company that
// owns the vacancy, becoming ACCEPTED or REJECTED. Both decisions are final.
// An ACCEPTED application is a match: from then on either party may end it,
// which archives and deletes the application together with its messages.
// The deletion package asks IsMatch before allowing that.
package application

import (
	"strings"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// transitions lists the legal moves out of each status. ACCEPTED and REJECTED are final.
var transitions = map[model.ApplicationStatus][]model.ApplicationStatus{
	model.StatusApplied: {model.StatusAccepted, model.StatusRejected},
}

// ParseStatus converts raw request input to a known status.
// Matching ignores case and surrounding spaces, so " accepted " yields ACCEPTED.
// Any other value returns a BadRequest APIError naming the rejected input.
func ParseStatus(raw string) (model.ApplicationStatus, error) {
	s := model.ApplicationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case model.StatusApplied, model.StatusAccepted, model.StatusRejected:
		return s, nil
	}
	return "", model.NewInvalidStatusError(raw)
}

// CanTransition reports whether an application may move from one status to another.
// Only APPLIED has outgoing moves. Staying in the same status is not a transition,
// and unknown statuses never transition.
func CanTransition(from, to model.ApplicationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsMatch reports whether the status makes the application a match.
// A match is the only kind of application either party may delete;
// APPLIED and REJECTED applications are removed only as part of a user
// or vacancy deletion.
func IsMatch(s model.ApplicationStatus) bool {
	return s == model.StatusAccepted
}
