package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/finquest/finquest/internal/minigame"
)

// RecordPlayRequest represents one finished mini-game play.
type RecordPlayRequest struct {
	GameType string         `json:"game_type" validate:"required,gametype"`
	Score    int            `json:"score" validate:"gte=0,lte=100"`
	Data     map[string]any `json:"data,omitempty"`
}

// MiniGameHandler handles mini-game HTTP requests
type MiniGameHandler struct {
	gameSvc minigame.Service
}

// NewMiniGameHandler creates a new mini-game handler
func NewMiniGameHandler(gameSvc minigame.Service) *MiniGameHandler {
	return &MiniGameHandler{gameSvc: gameSvc}
}

// RecordPlay records a play and applies its rewards
func (h *MiniGameHandler) RecordPlay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RecordPlayRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record play"); err != nil {
		return
	}

	result, err := h.gameSvc.RecordPlay(r.Context(), userID, strings.ToLower(req.GameType), req.Score, req.Data)
	if err != nil {
		respondServiceError(w, r, "Record play", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// History returns the character's recent plays
func (h *MiniGameHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := GetOptionalQueryParam(r, "limit", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		limit = parsed
	}

	scores, err := h.gameSvc.History(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "Get play history", err)
		return
	}

	respondJSON(w, http.StatusOK, scores)
}

// BestScores returns per-game aggregates
func (h *MiniGameHandler) BestScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summaries, err := h.gameSvc.BestScores(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get best scores", err)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}
