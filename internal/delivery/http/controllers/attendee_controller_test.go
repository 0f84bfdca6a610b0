package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

const testEventID = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
const testRegistrationID = "3f2504e0-4f89-41d3-9a0c-0305e82c3302"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeAttendeeService struct {
	reg           *domain.Registration
	registrations []*domain.RegistrationWithEvent
	snapshot      *domain.CapacitySnapshot
	attendees     []*domain.RegistrationWithUser
	err           error
}

func (f *fakeAttendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reg, nil
}

func (f *fakeAttendeeService) CancelRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reg, nil
}

func (f *fakeAttendeeService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.registrations, nil
}

func (f *fakeAttendeeService) GetCapacity(ctx context.Context, eventID string) (*domain.CapacitySnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func (f *fakeAttendeeService) ListAttendees(ctx context.Context, eventID, callerID string, callerRole domain.Role) ([]*domain.RegistrationWithUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attendees, nil
}

func (f *fakeAttendeeService) MarkAttendance(ctx context.Context, eventID, registrationID, callerID string, callerRole domain.Role) (*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reg, nil
}

func TestAttendeeController_Register(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		userID     string
		svc        *fakeAttendeeService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			eventID:    testEventID,
			userID:     "u1",
			svc:        &fakeAttendeeService{reg: &domain.Registration{ID: testRegistrationID, EventID: testEventID, UserID: "u1", Status: domain.StatusRegistered}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid event id",
			eventID:    "not-a-uuid",
			userID:     "u1",
			svc:        &fakeAttendeeService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "unauthenticated",
			eventID:    testEventID,
			svc:        &fakeAttendeeService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "event full maps to conflict",
			eventID:    testEventID,
			userID:     "u1",
			svc:        &fakeAttendeeService{err: domain.ErrEventFull},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "already registered maps to conflict",
			eventID:    testEventID,
			userID:     "u1",
			svc:        &fakeAttendeeService{err: domain.ErrAlreadyRegistered},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "deadline passed maps to conflict",
			eventID:    testEventID,
			userID:     "u1",
			svc:        &fakeAttendeeService{err: domain.ErrDeadlinePassed},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "unknown event maps to not found",
			eventID:    testEventID,
			userID:     "u1",
			svc:        &fakeAttendeeService{err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAttendeeController(testLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.eventID+"/registrations", nil)
			req.SetPathValue("eventID", tt.eventID)
			if tt.userID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.userID))
			}
			w := httptest.NewRecorder()

			ctrl.Register(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantCode != "" {
				var resp helpers.APIResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
				}
			}
		})
	}
}

func TestAttendeeController_GetCapacity(t *testing.T) {
	svc := &fakeAttendeeService{snapshot: &domain.CapacitySnapshot{Capacity: 100, Registered: 42}}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/capacity", nil)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.GetCapacity(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data  domain.CapacitySnapshot `json:"data"`
		Error *helpers.APIError       `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Capacity != 100 || resp.Data.Registered != 42 {
		t.Fatalf("unexpected snapshot: %+v", resp.Data)
	}
}

func TestAttendeeController_Cancel_NotRegistered(t *testing.T) {
	svc := &fakeAttendeeService{err: domain.ErrNotRegistered}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/events/"+testEventID+"/registrations", nil)
	req.SetPathValue("eventID", testEventID)
	req = req.WithContext(middleware.SetUserID(req.Context(), "u1"))
	w := httptest.NewRecorder()

	ctrl.Cancel(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
	}
}

func TestAttendeeController_MarkAttendance_Forbidden(t *testing.T) {
	svc := &fakeAttendeeService{err: domain.ErrForbidden}
	ctrl := NewAttendeeController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/attendees/"+testRegistrationID+"/attendance", nil)
	req.SetPathValue("eventID", testEventID)
	req.SetPathValue("registrationID", testRegistrationID)
	ctx := middleware.SetRole(middleware.SetUserID(req.Context(), "org2"), domain.RoleOrganizer)
	req = req.WithContext(ctx)
	w := httptest.NewRecorder()

	ctrl.MarkAttendance(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}
