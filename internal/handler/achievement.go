package handler

import (
	"net/http"

	"github.com/finquest/finquest/internal/achievement"
	"github.com/finquest/finquest/internal/character"
)

// AchievementHandler handles achievement HTTP requests
type AchievementHandler struct {
	achSvc  achievement.Service
	charSvc character.Service
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(achSvc achievement.Service, charSvc character.Service) *AchievementHandler {
	return &AchievementHandler{achSvc: achSvc, charSvc: charSvc}
}

// List returns every achievement definition flagged with the character's
// unlock state
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	char, err := h.charSvc.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List achievements", err)
		return
	}

	statuses, err := h.achSvc.ListWithStatus(r.Context(), char.ID)
	if err != nil {
		respondServiceError(w, r, "List achievements", err)
		return
	}

	respondJSON(w, http.StatusOK, statuses)
}

// ListUnlocked returns only the achievements the character has earned
func (h *AchievementHandler) ListUnlocked(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	char, err := h.charSvc.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List unlocked achievements", err)
		return
	}

	unlocked, err := h.achSvc.ListUnlocked(r.Context(), char.ID)
	if err != nil {
		respondServiceError(w, r, "List unlocked achievements", err)
		return
	}

	respondJSON(w, http.StatusOK, unlocked)
}
