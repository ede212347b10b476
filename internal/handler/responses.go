package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/finquest/finquest/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; nothing left to do but log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError     = "User not found"
	ErrMsgUserExistsError       = "Username or email is already taken"
	ErrMsgInvalidCredsError     = "Invalid username or password"
	ErrMsgCharNotFoundError     = "Create a character first"
	ErrMsgCharExistsError       = "You already have a character"
	ErrMsgQuestNotFoundError    = "Quest not found"
	ErrMsgQuestNotAcceptedError = "Accept the quest before submitting answers"
	ErrMsgQuestAcceptedError    = "Quest already accepted"
	ErrMsgLevelTooLowError      = "Your level is too low for this quest"
	ErrMsgAchievementMissing    = "Achievement not found"
	ErrMsgFriendExistsError     = "Friend request already exists"
	ErrMsgFriendNotFoundError   = "Friend request not found"
	ErrMsgSelfFriendError       = "You cannot add yourself as a friend"
	ErrMsgInvalidInputError     = "Invalid request. Please check your inputs."
	ErrMsgInvalidGameError      = "Unknown mini-game"
	ErrMsgBadScoreError         = "Score must be between 0 and 100"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Not-found answers stay 404, conflicts 409, level gates 403, and
// anything unrecognized collapses to a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgInvalidCredsError
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, ErrMsgUserExistsError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrCharacterExists):
		return http.StatusConflict, ErrMsgCharExistsError
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrQuestAlreadyAccepted):
		return http.StatusConflict, ErrMsgQuestAcceptedError
	case errors.Is(err, domain.ErrQuestNotAccepted):
		return http.StatusBadRequest, ErrMsgQuestNotAcceptedError
	case errors.Is(err, domain.ErrLevelRequirement):
		return http.StatusForbidden, ErrMsgLevelTooLowError
	case errors.Is(err, domain.ErrAchievementNotFound):
		return http.StatusNotFound, ErrMsgAchievementMissing
	case errors.Is(err, domain.ErrFriendshipExists):
		return http.StatusConflict, ErrMsgFriendExistsError
	case errors.Is(err, domain.ErrFriendshipNotFound):
		return http.StatusNotFound, ErrMsgFriendNotFoundError
	case errors.Is(err, domain.ErrSelfFriendship):
		return http.StatusBadRequest, ErrMsgSelfFriendError
	case errors.Is(err, domain.ErrInvalidGameType):
		return http.StatusBadRequest, ErrMsgInvalidGameError
	case errors.Is(err, domain.ErrScoreOutOfRange):
		return http.StatusBadRequest, ErrMsgBadScoreError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	if statusCode >= http.StatusInternalServerError {
		slog.Error(opName+" failed", "error", err)
	}
	respondError(w, statusCode, userMsg)
}
