package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AchrafReyani/job-matching-platform/internal/model"
)

const (
	adminID  = "6f1c2b3a-0000-4000-8000-000000000001"
	targetID = "6f1c2b3a-0000-4000-8000-000000000002"
)

func TestAdminHandler_DeleteUser_Success(t *testing.T) {
	called := false
	svc := &mockAdminService{
		deleteUserFn: func(ctx context.Context, userID, performedBy string) error {
			called = true
			if userID != targetID {
				t.Errorf("userID = %q, want %q", userID, targetID)
			}
			if performedBy != adminID {
				t.Errorf("performedBy = %q, want %q", performedBy, adminID)
			}
			return nil
		},
	}
	h := NewAdminHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/"+targetID, nil)
	req = withChiURLParam(withUserID(req, adminID, model.RoleAdmin), "id", targetID)
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if !called {
		t.Error("expected DeleteUser to be called")
	}
}

func TestAdminHandler_DeleteUser_InvalidID(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		deleteUserFn: func(ctx context.Context, userID, performedBy string) error {
			t.Fatal("service must not be called")
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/abc", nil)
	req = withChiURLParam(withUserID(req, adminID, model.RoleAdmin), "id", "abc")
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != model.ErrCodeInvalidID {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeInvalidID)
	}
}

func TestAdminHandler_DeleteUser_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"self", model.NewCannotDeleteSelfError(), http.StatusBadRequest, model.ErrCodeCannotDeleteSelf},
		{"admin target", model.NewCannotDeleteAdminError(), http.StatusBadRequest, model.ErrCodeCannotDeleteAdmin},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminHandler(&mockAdminService{
				deleteUserFn: func(ctx context.Context, userID, performedBy string) error { return tt.err },
			})

			req := httptest.NewRequest(http.MethodDelete, "/admin/users/"+targetID, nil)
			req = withChiURLParam(withUserID(req, adminID, model.RoleAdmin), "id", targetID)
			w := httptest.NewRecorder()

			h.DeleteUser(w, req)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
			body := parseAPIErrorResponse(t, w)
			if body["code"] != tt.code {
				t.Errorf("code = %q, want %q", body["code"], tt.code)
			}
			if tt.want == http.StatusInternalServerError && body["message"] == "connection refused" {
				t.Error("internal error details must not leak into the response")
			}
		})
	}
}

func TestAdminHandler_DeleteUser_NoIdentity(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{})

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/"+targetID, nil)
	req = withChiURLParam(req, "id", targetID)
	w := httptest.NewRecorder()

	h.DeleteUser(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAdminHandler_DeleteVacancy(t *testing.T) {
	var gotID int64
	h := NewAdminHandler(&mockAdminService{
		deleteVacancyFn: func(ctx context.Context, vacancyID int64, performedBy string) error {
			gotID = vacancyID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/admin/vacancies/42", nil)
	req = withChiURLParam(withUserID(req, adminID, model.RoleAdmin), "id", "42")
	w := httptest.NewRecorder()

	h.DeleteVacancy(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if gotID != 42 {
		t.Errorf("vacancyID = %d, want 42", gotID)
	}
}

func TestAdminHandler_DeleteVacancy_InvalidID(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run(raw, func(t *testing.T) {
			h := NewAdminHandler(&mockAdminService{})

			req := httptest.NewRequest(http.MethodDelete, "/admin/vacancies/"+raw, nil)
			req = withChiURLParam(withUserID(req, adminID, model.RoleAdmin), "id", raw)
			w := httptest.NewRecorder()

			h.DeleteVacancy(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestAdminHandler_BulkDeletion_ReturnsCount(t *testing.T) {
	svc := &mockAdminService{
		deleteAllJobSeekersFn: func(ctx context.Context, performedBy string) (int, error) { return 7, nil },
		deleteAllCompaniesFn:  func(ctx context.Context, performedBy string) (int, error) { return 3, nil },
		deleteAllVacanciesFn:  func(ctx context.Context, performedBy string) (int, error) { return 0, nil },
	}
	h := NewAdminHandler(svc)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    int
	}{
		{"job seekers", h.DeleteAllJobSeekers, 7},
		{"companies", h.DeleteAllCompanies, 3},
		{"vacancies", h.DeleteAllVacancies, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withUserID(httptest.NewRequest(http.MethodDelete, "/", nil), adminID, model.RoleAdmin)
			w := httptest.NewRecorder()

			tt.handler(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			var body bulkDeleteResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.DeletedCount != tt.want {
				t.Errorf("deletedCount = %d, want %d", body.DeletedCount, tt.want)
			}
		})
	}
}

func TestAdminHandler_BulkDeletion_Failure(t *testing.T) {
	h := NewAdminHandler(&mockAdminService{
		deleteAllVacanciesFn: func(ctx context.Context, performedBy string) (int, error) {
			return 2, errors.New("failed to delete vacancy 3: deadlock detected")
		},
	})

	req := withUserID(httptest.NewRequest(http.MethodDelete, "/admin/vacancies/bulk/all", nil), adminID, model.RoleAdmin)
	w := httptest.NewRecorder()

	h.DeleteAllVacancies(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
