package handler

import (
	"net/http"

	"github.com/finquest/finquest/internal/auth"
	"github.com/finquest/finquest/internal/domain"
)

// RegisterRequest represents the request to create an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,excludesall= "`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest represents a login attempt. Identifier accepts either a
// username or an email address.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required,max=128"`
}

// AuthResponse is the response for successful register and login calls
type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// HandleRegister creates a new account and issues a session token
func HandleRegister(authSvc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		user, token, err := authSvc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, "Register", err)
			return
		}

		respondJSON(w, http.StatusCreated, AuthResponse{
			Message: MsgRegisteredSuccess,
			Token:   token,
			User:    user,
		})
	}
}

// HandleLogin verifies credentials and issues a session token
func HandleLogin(authSvc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		user, token, err := authSvc.Login(r.Context(), req.Identifier, req.Password)
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		respondJSON(w, http.StatusOK, AuthResponse{
			Token: token,
			User:  user,
		})
	}
}

// HandleGetMe returns the authenticated user's account
func HandleGetMe(authSvc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		user, err := authSvc.GetUser(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get current user", err)
			return
		}

		respondJSON(w, http.StatusOK, user)
	}
}
