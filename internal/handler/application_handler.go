package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/AchrafReyani/job-matching-platform/internal/application"
	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// MatchServiceInterface ends accepted matches.
type MatchServiceInterface interface {
	DeleteMatch(ctx context.Context, requesterID string, applicationID int64) error
}

// ApplicationServiceInterface changes application status.
type ApplicationServiceInterface interface {
	UpdateStatus(ctx context.Context, companyUserID string, applicationID int64, status model.ApplicationStatus) (*model.Application, error)
}

// ApplicationHandler serves the application endpoints.
type ApplicationHandler struct {
	matches      MatchServiceInterface
	applications ApplicationServiceInterface
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(matches MatchServiceInterface, applications ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{matches: matches, applications: applications}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type applicationResponse struct {
	ID          int64     `json:"id"`
	JobSeekerID int64     `json:"jobSeekerId"`
	VacancyID   int64     `json:"vacancyId"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toApplicationResponse(a *model.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		JobSeekerID: a.JobSeekerID,
		VacancyID:   a.VacancyID,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// DeleteMatch ends an accepted match on behalf of either party.
// DELETE /applications/{id}/match
func (h *ApplicationHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	applicationID, apiErr := int64Param(r, "id", "application")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.matches.DeleteMatch(r.Context(), userID, applicationID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus accepts or rejects an application.
// PATCH /applications/{id}
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := actingUser(w, r)
	if !ok {
		return
	}
	applicationID, apiErr := int64Param(r, "id", "application")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestBodyError())
		return
	}
	status, err := application.ParseStatus(req.Status)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	updated, err := h.applications.UpdateStatus(r.Context(), userID, applicationID, status)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationResponse(updated))
}
