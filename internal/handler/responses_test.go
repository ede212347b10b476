package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finquest/finquest/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"character exists", domain.ErrCharacterExists, http.StatusConflict},
		{"character not found", domain.ErrCharacterNotFound, http.StatusNotFound},
		{"quest not found", domain.ErrQuestNotFound, http.StatusNotFound},
		{"quest already accepted", domain.ErrQuestAlreadyAccepted, http.StatusConflict},
		{"quest not accepted", domain.ErrQuestNotAccepted, http.StatusBadRequest},
		{"level requirement", domain.ErrLevelRequirement, http.StatusForbidden},
		{"friendship exists", domain.ErrFriendshipExists, http.StatusConflict},
		{"self friendship", domain.ErrSelfFriendship, http.StatusBadRequest},
		{"invalid game type", domain.ErrInvalidGameType, http.StatusBadRequest},
		{"score out of range", domain.ErrScoreOutOfRange, http.StatusBadRequest},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapServiceErrorToUserMessage_Wrapped(t *testing.T) {
	err := fmt.Errorf("quest requires level 10: %w", domain.ErrLevelRequirement)

	status, msg := mapServiceErrorToUserMessage(err)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, ErrMsgLevelTooLowError, msg)
}

func TestMapServiceErrorToUserMessage_DoesNotLeakInternals(t *testing.T) {
	status, msg := mapServiceErrorToUserMessage(fmt.Errorf("pq: connection refused on 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrMsgGenericServerError, msg)
}
