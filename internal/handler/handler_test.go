package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/AchrafReyani/job-matching-platform/internal/middleware"
	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

// --- mocks ---

type mockAdminService struct {
	deleteUserFn          func(ctx context.Context, userID, performedBy string) error
	deleteVacancyFn       func(ctx context.Context, vacancyID int64, performedBy string) error
	deleteAllJobSeekersFn func(ctx context.Context, performedBy string) (int, error)
	deleteAllCompaniesFn  func(ctx context.Context, performedBy string) (int, error)
	deleteAllVacanciesFn  func(ctx context.Context, performedBy string) (int, error)
}

func (m *mockAdminService) DeleteUser(ctx context.Context, userID, performedBy string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID, performedBy)
	}
	return nil
}

func (m *mockAdminService) DeleteVacancy(ctx context.Context, vacancyID int64, performedBy string) error {
	if m.deleteVacancyFn != nil {
		return m.deleteVacancyFn(ctx, vacancyID, performedBy)
	}
	return nil
}

func (m *mockAdminService) DeleteAllJobSeekers(ctx context.Context, performedBy string) (int, error) {
	if m.deleteAllJobSeekersFn != nil {
		return m.deleteAllJobSeekersFn(ctx, performedBy)
	}
	return 0, nil
}

func (m *mockAdminService) DeleteAllCompanies(ctx context.Context, performedBy string) (int, error) {
	if m.deleteAllCompaniesFn != nil {
		return m.deleteAllCompaniesFn(ctx, performedBy)
	}
	return 0, nil
}

func (m *mockAdminService) DeleteAllVacancies(ctx context.Context, performedBy string) (int, error) {
	if m.deleteAllVacanciesFn != nil {
		return m.deleteAllVacanciesFn(ctx, performedBy)
	}
	return 0, nil
}

type mockMatchService struct {
	deleteMatchFn func(ctx context.Context, requesterID string, applicationID int64) error
}

func (m *mockMatchService) DeleteMatch(ctx context.Context, requesterID string, applicationID int64) error {
	if m.deleteMatchFn != nil {
		return m.deleteMatchFn(ctx, requesterID, applicationID)
	}
	return nil
}

type mockApplicationService struct {
	updateStatusFn func(ctx context.Context, companyUserID string, applicationID int64, status model.ApplicationStatus) (*model.Application, error)
}

func (m *mockApplicationService) UpdateStatus(ctx context.Context, companyUserID string, applicationID int64, status model.ApplicationStatus) (*model.Application, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, companyUserID, applicationID, status)
	}
	return &model.Application{ID: applicationID, Status: status}, nil
}

// --- helpers ---

// withUserID injects an authenticated user into the request context.
func withUserID(r *http.Request, userID string, role model.Role) *http.Request {
	return r.WithContext(middleware.ContextWithIdentity(r.Context(), userID, role))
}

// withChiURLParam injects a chi URL parameter.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseAPIErrorResponse decodes the unified error body.
func parseAPIErrorResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var result map[string]string
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return result
}
