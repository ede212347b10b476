package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/handler"
)

// stubAuthService accepts a single token and rejects everything else.
type stubAuthService struct {
	validToken string
	userID     string
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	return nil, "", domain.ErrUserExists
}

func (s *stubAuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	return nil, "", domain.ErrInvalidCredentials
}

func (s *stubAuthService) VerifyToken(tokenString string) (string, error) {
	if tokenString == s.validToken {
		return s.userID, nil
	}
	return "", domain.ErrInvalidCredentials
}

func (s *stubAuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func TestAuthMiddleware(t *testing.T) {
	authSvc := &stubAuthService{validToken: "good-token", userID: "user-42"}
	middleware := AuthMiddleware(authSvc, nil, NewSuspiciousActivityDetector())

	tests := []struct {
		name         string
		authHeader   string
		path         string
		expectedCode int
	}{
		{
			name:         "Valid Token",
			authHeader:   "Bearer good-token",
			path:         "/api/v1/quests",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid Token",
			authHeader:   "Bearer wrong-token",
			path:         "/api/v1/quests",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Missing Header",
			authHeader:   "",
			path:         "/api/v1/quests",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Wrong Scheme",
			authHeader:   "Basic good-token",
			path:         "/api/v1/quests",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "Public Path - Healthz",
			authHeader:   "",
			path:         "/healthz",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Public Path - Metrics",
			authHeader:   "",
			path:         "/metrics",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Public Path - Register",
			authHeader:   "",
			path:         "/api/v1/auth/register",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Public Path - Login",
			authHeader:   "",
			path:         "/api/v1/auth/login",
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set(HeaderAuthorization, tt.authHeader)
			}
			rec := httptest.NewRecorder()

			h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			h.ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_SetsUserIDInContext(t *testing.T) {
	authSvc := &stubAuthService{validToken: "good-token", userID: "user-42"}
	middleware := AuthMiddleware(authSvc, nil, NewSuspiciousActivityDetector())

	var gotUserID string
	var gotOK bool
	h := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = handler.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/characters", nil)
	req.Header.Set(HeaderAuthorization, "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !gotOK {
		t.Fatal("expected user ID in request context")
	}
	if gotUserID != "user-42" {
		t.Errorf("expected user-42, got %q", gotUserID)
	}
}
