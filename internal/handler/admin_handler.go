package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// AdminServiceInterface is the deletion surface used by the admin console.
type AdminServiceInterface interface {
	DeleteUser(ctx context.Context, userID, performedBy string) error
	DeleteVacancy(ctx context.Context, vacancyID int64, performedBy string) error
	DeleteAllJobSeekers(ctx context.Context, performedBy string) (int, error)
	DeleteAllCompanies(ctx context.Context, performedBy string) (int, error)
	DeleteAllVacancies(ctx context.Context, performedBy string) (int, error)
}

// AdminHandler serves the admin deletion endpoints.
type AdminHandler struct {
	service AdminServiceInterface
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(service AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

type bulkDeleteResponse struct {
	DeletedCount int `json:"deletedCount"`
}

// DeleteUser archives and deletes one user.
// DELETE /admin/users/{id}
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := actingUser(w, r)
	if !ok {
		return
	}
	userID, apiErr := userIDParam(r, "id")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID, adminID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteVacancy archives and deletes one vacancy.
// DELETE /admin/vacancies/{id}
func (h *AdminHandler) DeleteVacancy(w http.ResponseWriter, r *http.Request) {
	adminID, ok := actingUser(w, r)
	if !ok {
		return
	}
	vacancyID, apiErr := int64Param(r, "id", "vacancy")
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	if err := h.service.DeleteVacancy(r.Context(), vacancyID, adminID); err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllJobSeekers deletes every job seeker account.
// DELETE /admin/users/bulk/job-seekers
func (h *AdminHandler) DeleteAllJobSeekers(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, "job_seekers", h.service.DeleteAllJobSeekers)
}

// DeleteAllCompanies deletes every company account.
// DELETE /admin/users/bulk/companies
func (h *AdminHandler) DeleteAllCompanies(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, "companies", h.service.DeleteAllCompanies)
}

// DeleteAllVacancies deletes every vacancy.
// DELETE /admin/vacancies/bulk/all
func (h *AdminHandler) DeleteAllVacancies(w http.ResponseWriter, r *http.Request) {
	h.bulk(w, r, "vacancies", h.service.DeleteAllVacancies)
}

// bulk runs a bulk deletion. A failure part way still reports how many
// entities were committed before it, in the log.
func (h *AdminHandler) bulk(w http.ResponseWriter, r *http.Request, target string, run func(context.Context, string) (int, error)) {
	adminID, ok := actingUser(w, r)
	if !ok {
		return
	}

	n, err := run(r.Context(), adminID)
	if err != nil {
		slog.Warn("bulk deletion stopped",
			slog.String("target", target),
			slog.String("performed_by", adminID),
			slog.Int("deleted_before_failure", n),
		)
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bulkDeleteResponse{DeletedCount: n})
}
