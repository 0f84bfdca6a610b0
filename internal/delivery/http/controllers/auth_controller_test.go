package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/domain"
)

type fakeAuthService struct {
	user  *domain.User
	token string
	err   error
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.token, f.user, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"email":"alice@campus.edu","password":"correcthorse","full_name":"Alice"}`,
			svc:        &fakeAuthService{user: &domain.User{ID: "u1", Email: "alice@campus.edu"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "organizer role accepted",
			body:       `{"email":"bob@campus.edu","password":"correcthorse","full_name":"Bob","role":"organizer"}`,
			svc:        &fakeAuthService{user: &domain.User{ID: "u2", Email: "bob@campus.edu"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing email",
			body:       `{"password":"correcthorse","full_name":"Alice"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"alice@campus.edu","password":"short","full_name":"Alice"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown role",
			body:       `{"email":"alice@campus.edu","password":"correcthorse","full_name":"Alice","role":"admin"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field rejected",
			body:       `{"email":"alice@campus.edu","password":"correcthorse","full_name":"Alice","admin":true}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"taken@campus.edu","password":"correcthorse","full_name":"Alice"}`,
			svc:        &fakeAuthService{err: domain.ErrDuplicateEmail},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.SignUp(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"email":"alice@campus.edu","password":"correcthorse"}`,
			svc:        &fakeAuthService{token: "jwt-token", user: &domain.User{ID: "u1"}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad credentials",
			body:       `{"email":"alice@campus.edu","password":"wrong-pass"}`,
			svc:        &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "disabled account",
			body:       `{"email":"gone@campus.edu","password":"correcthorse"}`,
			svc:        &fakeAuthService{err: domain.ErrAccountDisabled},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"alice@campus.edu"}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.Login(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %q, got %+v", tt.wantCode, resp.Error)
				}
			} else if resp.Error != nil {
				t.Fatalf("expected no error, got %+v", resp.Error)
			}
		})
	}
}
