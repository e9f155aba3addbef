package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/Tamoora69/abdeen-barber-shop/pkg/middleware"
	"github.com/Tamoora69/abdeen-barber-shop/pkg/model"
)

func newAdminRouter(svc *mockAppointmentService, password string) http.Handler {
	router := httprouter.New()
	NewAdminHandler(svc, testLogger()).RegisterRoutes(router)
	return middleware.AdminAuth(password, testLogger())(router)
}

func TestAdminList_RequiresPassword(t *testing.T) {
	handler := newAdminRouter(&mockAppointmentService{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without password, got %d", rec.Code)
	}
}

func TestAdminList_WrongPassword(t *testing.T) {
	handler := newAdminRouter(&mockAppointmentService{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments", nil)
	req.Header.Set(middleware.AdminPasswordHeader, "guess")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 with wrong password, got %d", rec.Code)
	}
}

func TestAdminList_ReturnsAppointments(t *testing.T) {
	svc := &mockAppointmentService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Appointment, int64, error) {
			return []*model.Appointment{
				{ID: "1", CustomerName: "Ahmed", AppointmentDate: "2026-09-01", AppointmentTime: "14:00:00"},
			}, 1, nil
		},
	}
	handler := newAdminRouter(svc, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments?limit=10&offset=0", nil)
	req.Header.Set(middleware.AdminPasswordHeader, "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body struct {
		Data       []model.Appointment `json:"data"`
		TotalCount int64               `json:"total_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.TotalCount != 1 || len(body.Data) != 1 {
		t.Errorf("unexpected list response: %+v", body)
	}
}

func TestAdminList_InvalidLimit(t *testing.T) {
	handler := newAdminRouter(&mockAppointmentService{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/appointments?limit=abc", nil)
	req.Header.Set(middleware.AdminPasswordHeader, "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestAdminDelete(t *testing.T) {
	var deletedID string
	svc := &mockAppointmentService{
		deleteFunc: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	handler := newAdminRouter(svc, "secret")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/appointments/64f1ba2c9d3e8a0001234567", nil)
	req.Header.Set(middleware.AdminPasswordHeader, "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if deletedID != "64f1ba2c9d3e8a0001234567" {
		t.Errorf("unexpected deleted id: %q", deletedID)
	}
}

func TestAdminDelete_EmptyConfiguredPasswordRejectsAll(t *testing.T) {
	handler := newAdminRouter(&mockAppointmentService{}, "")

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/appointments/64f1ba2c9d3e8a0001234567", nil)
	req.Header.Set(middleware.AdminPasswordHeader, "")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 when no password is configured, got %d", rec.Code)
	}
}
